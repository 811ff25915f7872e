package snapshot

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Fetcher materializes namespace snapshots from the cluster.
type Fetcher struct {
	clientset kubernetes.Interface
}

// New creates a new Fetcher instance.
func New(clientset kubernetes.Interface) Fetcher {
	return Fetcher{
		clientset: clientset,
	}
}

// Namespaces lists the names of all namespaces in the cluster.
func (f Fetcher) Namespaces(ctx context.Context) ([]string, error) {
	nsList, err := f.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(nsList.Items))
	for _, ns := range nsList.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// Fetch reads all secrets, workloads, and service accounts in the namespace
// into a Snapshot. Each resource kind is fetched with a single List call; any
// failure aborts the fetch for this namespace only.
func (f Fetcher) Fetch(ctx context.Context, namespace string) (*Snapshot, error) {
	snap := &Snapshot{Namespace: namespace}

	secretList, err := f.clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}
	snap.Secrets = secretList.Items

	podList, err := f.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	snap.Pods = podList.Items

	deployList, err := f.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	snap.Deployments = deployList.Items

	stsList, err := f.clientset.AppsV1().StatefulSets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list statefulsets: %w", err)
	}
	snap.StatefulSets = stsList.Items

	dsList, err := f.clientset.AppsV1().DaemonSets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list daemonsets: %w", err)
	}
	snap.DaemonSets = dsList.Items

	rsList, err := f.clientset.AppsV1().ReplicaSets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list replicasets: %w", err)
	}
	snap.ReplicaSets = rsList.Items

	saList, err := f.clientset.CoreV1().ServiceAccounts(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list service accounts: %w", err)
	}
	snap.ServiceAccounts = saList.Items

	return snap, nil
}
