package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/common"
	"github.com/dancavallaro/kubectl-unused-secrets/pkg/plugin"

	// Import cloud auth providers
	_ "k8s.io/client-go/plugin/pkg/client/auth"
)

var (
	config *plugin.ConfigFlags

	// Injected by goreleaser via ldflags at build-time
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := RootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kubectl unused-secrets",
		Short: "Find Secrets not referenced by any workload",
		Long: "Scans each namespace for Secret objects that no Pod, Deployment, StatefulSet, " +
			"DaemonSet, or ReplicaSet references via env, envFrom, volumes, imagePullSecrets, " +
			"or service-account token mounts. System-managed secrets are excluded from the report.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return plugin.RunPlugin(config)
		},
		Version: fmt.Sprintf("kubectl-unused-secrets v%s, commit %s, built at %s", version, commit, date),
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current version of kubectl-unused-secrets",
		Run: func(cmd *cobra.Command, args []string) {
			root := cmd.Root()
			root.SetArgs([]string{"--version"})
			_ = root.Execute()
		},
	}
	cmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
	config = &plugin.ConfigFlags{
		ConfigFlags:     *genericclioptions.NewConfigFlags(false),
		ExcludePrefixes: &[]string{},
		ShowAll:         common.BoolP(false),
		Workers:         common.IntP(4),
	}

	cmd.Flags().StringSliceVar(config.ExcludePrefixes, "exclude-prefix", nil,
		"Additional secret name prefixes to treat as system-managed and never report")
	cmd.Flags().BoolVarP(config.ShowAll, "show-all", "a", false,
		"Also print per-namespace secret and workload counts")
	cmd.Flags().IntVar(config.Workers, "workers", 4, "Number of namespaces to scan concurrently")
	config.AddFlags(cmd.Flags())

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return cmd
}

func initConfig() {
	viper.AutomaticEnv()
}
