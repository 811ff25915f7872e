package audit

import (
	corev1 "k8s.io/api/core/v1"
)

// RefKind describes how a workload references a secret. Kept for diagnostic
// output only; reachability treats all kinds the same.
type RefKind string

const (
	RefEnvVar         RefKind = "envVar"
	RefEnvFrom        RefKind = "envFromSource"
	RefVolume         RefKind = "volumeMount"
	RefImagePull      RefKind = "imagePullSecret"
	RefServiceAccount RefKind = "serviceAccountMount"
)

// SecretReference is a single (secret name, reference kind) fact extracted
// from a workload spec.
type SecretReference struct {
	Name string
	Kind RefKind
}

// Extractor maps workload specs to the secrets they reference.
type Extractor struct {
	// TokenSecrets maps service account names to their declared token secret
	// names, as recorded in the namespace snapshot. The mapping may be
	// incomplete (on recent clusters token secrets are not auto-generated).
	TokenSecrets map[string][]string
}

// Extract returns the set of secret references in w's pod spec, covering env
// secretKeyRefs, envFrom secretRefs, secret volume sources, imagePullSecrets,
// and service-account token secrets. Duplicate references collapse to one
// entry per (name, kind) pair.
//
// A secret volume counts as a reference even when no container mounts it:
// the volume is part of the declared spec.
//
// The second return value is false when w names a service account whose
// token secrets are not in TokenSecrets. No reference is emitted for it in
// that case (missing data must not mask a secret as used), so callers should
// surface the gap to the operator.
func (e Extractor) Extract(w Workload) ([]SecretReference, bool) {
	seen := make(map[SecretReference]struct{})
	refs := make([]SecretReference, 0)
	add := func(name string, kind RefKind) {
		if name == "" {
			return
		}
		ref := SecretReference{Name: name, Kind: kind}
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	for _, vol := range w.Spec.Volumes {
		if vol.Secret != nil {
			add(vol.Secret.SecretName, RefVolume)
		}
	}

	containers := make([]corev1.Container, 0, len(w.Spec.Containers)+len(w.Spec.InitContainers))
	containers = append(containers, w.Spec.Containers...)
	containers = append(containers, w.Spec.InitContainers...)
	for _, container := range containers {
		for _, env := range container.Env {
			if env.ValueFrom != nil && env.ValueFrom.SecretKeyRef != nil {
				add(env.ValueFrom.SecretKeyRef.Name, RefEnvVar)
			}
		}
		for _, envFrom := range container.EnvFrom {
			if envFrom.SecretRef != nil {
				add(envFrom.SecretRef.Name, RefEnvFrom)
			}
		}
	}

	for _, pullSecret := range w.Spec.ImagePullSecrets {
		add(pullSecret.Name, RefImagePull)
	}

	resolved := true
	if sa := w.Spec.ServiceAccountName; sa != "" {
		tokens, ok := e.TokenSecrets[sa]
		if !ok {
			resolved = false
		}
		for _, token := range tokens {
			add(token, RefServiceAccount)
		}
	}

	return refs, resolved
}
