package audit

import (
	"slices"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// ExclusionRule reports whether a secret is system-managed and should never
// be reported as unused.
type ExclusionRule func(corev1.Secret) bool

// ExclusionPolicy is an ordered list of rules. The first rule that matches a
// secret excludes it before reachability is even considered, so system
// secrets never surface as noise even when extraction has gaps.
type ExclusionPolicy struct {
	Rules []ExclusionRule
}

// DefaultSystemPrefixes are the secret name prefixes the platform and common
// tooling generate: legacy service-account tokens and Helm release storage.
var DefaultSystemPrefixes = []string{
	"default-token-",
	"sh.helm.release.v1",
	"kubernetes.io/service-account",
}

// DefaultPolicy excludes service-account tokens owned by a ServiceAccount and
// secrets matching the default system prefixes plus any extras.
func DefaultPolicy(extraPrefixes ...string) ExclusionPolicy {
	prefixes := append(slices.Clone(DefaultSystemPrefixes), extraPrefixes...)
	return ExclusionPolicy{
		Rules: []ExclusionRule{
			OwnedServiceAccountToken,
			NamePrefix(prefixes...),
		},
	}
}

// OwnedServiceAccountToken matches token secrets that a ServiceAccount owns,
// i.e. auto-generated by the platform.
func OwnedServiceAccountToken(s corev1.Secret) bool {
	if s.Type != corev1.SecretTypeServiceAccountToken {
		return false
	}
	for _, owner := range s.OwnerReferences {
		if owner.Kind == "ServiceAccount" {
			return true
		}
	}
	return false
}

// NamePrefix matches secrets whose name starts with any of the prefixes.
func NamePrefix(prefixes ...string) ExclusionRule {
	return func(s corev1.Secret) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(s.Name, prefix) {
				return true
			}
		}
		return false
	}
}

// Excludes reports whether any rule matches s.
func (p ExclusionPolicy) Excludes(s corev1.Secret) bool {
	for _, rule := range p.Rules {
		if rule(s) {
			return true
		}
	}
	return false
}

// Unused returns the secrets that are neither excluded by policy nor present
// in the reachable set, sorted by name for deterministic reporting.
func Unused(secrets []corev1.Secret, reachable map[string]struct{}, policy ExclusionPolicy) []UnusedSecret {
	unused := make([]UnusedSecret, 0)
	for _, secret := range secrets {
		if policy.Excludes(secret) {
			continue
		}
		if _, ok := reachable[secret.Name]; ok {
			continue
		}
		unused = append(unused, UnusedSecret{
			Name: secret.Name,
			Type: secret.Type,
		})
	}

	slices.SortFunc(unused, func(a, b UnusedSecret) int {
		return strings.Compare(a.Name, b.Name)
	})
	return unused
}
