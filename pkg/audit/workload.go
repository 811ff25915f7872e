package audit

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/common"
	"github.com/dancavallaro/kubectl-unused-secrets/pkg/snapshot"
)

// Workload is a kind-tagged workload normalized to its pod spec. Controller
// kinds (Deployment, StatefulSet, DaemonSet, ReplicaSet) carry their template
// spec; bare Pods carry their own spec. After normalization every kind is
// handled identically.
type Workload struct {
	Kind      string
	Namespace string
	Name      string
	Spec      corev1.PodSpec
}

func (w Workload) String() string {
	return fmt.Sprintf("%s/%s/%s", w.Kind, w.Namespace, w.Name)
}

// Normalize flattens all workloads in the snapshot to Workload values.
// A workload whose pod spec declares no containers is malformed; it is
// skipped and counted in the second return value rather than aborting the
// namespace scan.
func Normalize(snap *snapshot.Snapshot) ([]Workload, int) {
	workloads := make([]Workload, 0, snap.WorkloadCount())
	skipped := 0

	appendWorkload := func(kind, name string, spec corev1.PodSpec) {
		if len(spec.Containers) == 0 {
			skipped++
			return
		}
		workloads = append(workloads, Workload{
			Kind:      kind,
			Namespace: snap.Namespace,
			Name:      name,
			Spec:      spec,
		})
	}

	for _, pod := range snap.Pods {
		appendWorkload(common.KindPod, pod.Name, pod.Spec)
	}
	for _, d := range snap.Deployments {
		appendWorkload(common.KindDeployment, d.Name, d.Spec.Template.Spec)
	}
	for _, sts := range snap.StatefulSets {
		appendWorkload(common.KindStatefulSet, sts.Name, sts.Spec.Template.Spec)
	}
	for _, ds := range snap.DaemonSets {
		appendWorkload(common.KindDaemonSet, ds.Name, ds.Spec.Template.Spec)
	}
	for _, rs := range snap.ReplicaSets {
		appendWorkload(common.KindReplicaSet, rs.Name, rs.Spec.Template.Spec)
	}

	return workloads, skipped
}
