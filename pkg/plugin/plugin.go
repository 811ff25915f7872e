package plugin

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/kubernetes"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/audit"
	"github.com/dancavallaro/kubectl-unused-secrets/pkg/logger"
	"github.com/dancavallaro/kubectl-unused-secrets/pkg/snapshot"
	"github.com/dancavallaro/kubectl-unused-secrets/pkg/spinner"
)

type ConfigFlags struct {
	genericclioptions.ConfigFlags
	ExcludePrefixes *[]string
	ShowAll         *bool
	Workers         *int

	logger *logger.Logger
	out    io.Writer
}

func RunPlugin(flags *ConfigFlags) error {
	// Only the real CLI path leaves these unset; tests inject buffers and
	// don't get a spinner.
	interactive := flags.logger == nil && flags.out == nil
	if flags.logger == nil {
		flags.logger = logger.NewLogger(os.Stderr)
	}
	if flags.out == nil {
		flags.out = os.Stdout
	}

	config, err := flags.ToRESTConfig()
	if err != nil {
		return fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create clientset: %w", err)
	}

	return run(context.Background(), flags, clientset, interactive)
}

func run(ctx context.Context, flags *ConfigFlags, clientset kubernetes.Interface, interactive bool) error {
	log := flags.logger
	fetcher := snapshot.New(clientset)

	var namespaces []string
	if *flags.Namespace != "" {
		namespaces = []string{*flags.Namespace}
	} else {
		var err error
		namespaces, err = fetcher.Namespaces(ctx)
		if err != nil {
			return err
		}
	}

	log.Info("Scanning %d namespaces for unused secrets...", len(namespaces))
	policy := audit.DefaultPolicy(*flags.ExcludePrefixes...)

	var reports []audit.NamespaceReport
	scan := func() error {
		var err error
		reports, err = scanNamespaces(ctx, fetcher, namespaces, policy, *flags.Workers)
		return err
	}
	if interactive {
		if err := spinner.Run("Scanning namespaces... ", os.Stderr, scan); err != nil {
			return err
		}
	} else if err := scan(); err != nil {
		return err
	}

	for _, report := range reports {
		if report.Err != nil {
			log.Warn("Failed to scan namespace %s: %v", report.Namespace, report.Err)
		}
	}

	renderReports(flags.out, reports, *flags.ShowAll)
	return nil
}

// scanNamespaces runs one independent scan unit per namespace, bounded by
// workers. Each unit owns its snapshot and report slot, so no locking is
// needed. A fetch failure is recorded in that namespace's report and does
// not stop the rest; the whole run fails only when no namespace could be
// scanned at all.
func scanNamespaces(ctx context.Context, fetcher snapshot.Fetcher, namespaces []string, policy audit.ExclusionPolicy, workers int) ([]audit.NamespaceReport, error) {
	if workers < 1 {
		workers = 1
	}

	reports := make([]audit.NamespaceReport, len(namespaces))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ns := range namespaces {
		g.Go(func() error {
			snap, err := fetcher.Fetch(ctx, ns)
			if err != nil {
				reports[i] = audit.NamespaceReport{Namespace: ns, Err: err}
				return nil
			}
			reports[i] = audit.Scan(snap, policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, report := range reports {
		if report.Err != nil {
			failed++
		}
	}
	if len(reports) > 0 && failed == len(reports) {
		return nil, fmt.Errorf("failed to scan any namespace: %w", reports[0].Err)
	}

	return reports, nil
}
