package common

// Kubernetes workload kinds supported by the scanner.
const (
	KindPod         = "Pod"
	KindDeployment  = "Deployment"
	KindStatefulSet = "StatefulSet"
	KindDaemonSet   = "DaemonSet"
	KindReplicaSet  = "ReplicaSet"
)

func BoolP(val bool) *bool {
	return &val
}

func IntP(val int) *int {
	return &val
}
