package snapshot

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// Snapshot is an immutable point-in-time read of a single namespace: every
// Secret, every workload of the supported kinds, and every ServiceAccount
// (kept so service-account token secrets can be resolved). It is materialized
// once per namespace and never mutated afterwards.
type Snapshot struct {
	Namespace       string
	Secrets         []corev1.Secret
	Pods            []corev1.Pod
	Deployments     []appsv1.Deployment
	StatefulSets    []appsv1.StatefulSet
	DaemonSets      []appsv1.DaemonSet
	ReplicaSets     []appsv1.ReplicaSet
	ServiceAccounts []corev1.ServiceAccount
}

// WorkloadCount returns the number of workload objects in the snapshot,
// across all supported kinds.
func (s *Snapshot) WorkloadCount() int {
	return len(s.Pods) + len(s.Deployments) + len(s.StatefulSets) +
		len(s.DaemonSets) + len(s.ReplicaSets)
}

// TokenSecretsByServiceAccount maps each ServiceAccount name to the token
// secret names it declares. Service accounts with no declared token secrets
// are omitted, so a missing key means the account could not be resolved.
func (s *Snapshot) TokenSecretsByServiceAccount() map[string][]string {
	tokens := make(map[string][]string)
	for _, sa := range s.ServiceAccounts {
		for _, ref := range sa.Secrets {
			if ref.Name != "" {
				tokens[sa.Name] = append(tokens[sa.Name], ref.Name)
			}
		}
	}
	return tokens
}
