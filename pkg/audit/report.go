package audit

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/snapshot"
)

// UnusedSecret is one reported secret with its type for display.
type UnusedSecret struct {
	Name string
	Type corev1.SecretType
}

// NamespaceReport is the result of scanning one namespace. Err is set when
// the snapshot fetch failed; the other fields are zero in that case.
type NamespaceReport struct {
	Namespace      string
	TotalSecrets   int
	TotalWorkloads int
	Unused         []UnusedSecret
	Diagnostics    Diagnostics
	Err            error
}

// Scan runs the full resolution pipeline on one snapshot: normalize
// workloads, resolve the reachable secret set, and filter against the policy.
// It is pure over its inputs, so scans of different namespaces can run
// concurrently without coordination.
func Scan(snap *snapshot.Snapshot, policy ExclusionPolicy) NamespaceReport {
	workloads, skipped := Normalize(snap)

	resolver := Resolver{
		Extractor: Extractor{TokenSecrets: snap.TokenSecretsByServiceAccount()},
	}
	reachable, unresolved := resolver.Resolve(workloads)

	return NamespaceReport{
		Namespace:      snap.Namespace,
		TotalSecrets:   len(snap.Secrets),
		TotalWorkloads: snap.WorkloadCount(),
		Unused:         Unused(snap.Secrets, reachable, policy),
		Diagnostics: Diagnostics{
			SkippedWorkloads:          skipped,
			UnresolvedServiceAccounts: unresolved,
		},
	}
}
