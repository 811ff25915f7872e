package audit

// Diagnostics records per-namespace conditions that reduce confidence in the
// scan without failing it.
type Diagnostics struct {
	// SkippedWorkloads counts workloads dropped during normalization for
	// having no usable pod spec.
	SkippedWorkloads int
	// UnresolvedServiceAccounts counts workloads whose service account could
	// not be mapped to a token secret. Those workloads may reach secrets the
	// scan cannot see.
	UnresolvedServiceAccounts int
}

// Incomplete reports whether any diagnostic fired.
func (d Diagnostics) Incomplete() bool {
	return d.SkippedWorkloads > 0 || d.UnresolvedServiceAccounts > 0
}

// Resolver aggregates extracted references into the namespace reachable-set.
type Resolver struct {
	Extractor Extractor
}

// Resolve returns the set of secret names reachable from any of the given
// workloads, plus the count of workloads with unresolved service accounts.
// Set union is commutative, so the result does not depend on workload order.
func (r Resolver) Resolve(workloads []Workload) (map[string]struct{}, int) {
	reachable := make(map[string]struct{})
	unresolved := 0

	for _, w := range workloads {
		refs, resolved := r.Extractor.Extract(w)
		if !resolved {
			unresolved++
		}
		for _, ref := range refs {
			reachable[ref.Name] = struct{}{}
		}
	}

	return reachable, unresolved
}
