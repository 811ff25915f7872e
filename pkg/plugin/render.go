package plugin

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/audit"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// renderReports prints one block per namespace, in the order the namespaces
// were scanned. The resolution pipeline has fully completed by the time this
// runs; rendering never feeds back into it.
func renderReports(out io.Writer, reports []audit.NamespaceReport, showAll bool) {
	for _, report := range reports {
		renderNamespace(out, report, showAll)
	}
}

func renderNamespace(out io.Writer, report audit.NamespaceReport, showAll bool) {
	_, _ = fmt.Fprint(out, "+ Namespace : ")
	_, _ = green.Fprintln(out, report.Namespace)

	if report.Err != nil {
		_, _ = red.Fprintf(out, "  - scan failed: %v\n", report.Err)
		return
	}

	if showAll {
		_, _ = fmt.Fprintf(out, "  %d secrets scanned across %d workloads\n",
			report.TotalSecrets, report.TotalWorkloads)
	}

	if len(report.Unused) == 0 {
		_, _ = yellow.Fprintln(out, "  - No unused secrets found")
	}
	for _, secret := range report.Unused {
		_, _ = red.Fprintf(out, "  - %s (%s)\n", secret.Name, secret.Type)
	}

	if n := report.Diagnostics.SkippedWorkloads; n > 0 {
		_, _ = yellow.Fprintf(out, "  ! %d workloads skipped (no pod spec)\n", n)
	}
	if n := report.Diagnostics.UnresolvedServiceAccounts; n > 0 {
		_, _ = yellow.Fprintf(out, "  ! %d workloads use a service account with no resolvable token secret; their reachability may be incomplete\n", n)
	}
}
