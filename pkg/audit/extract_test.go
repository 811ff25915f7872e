package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"

	"github.com/dancavallaro/kubectl-unused-secrets/pkg/common"
)

func workload(spec corev1.PodSpec) Workload {
	return Workload{Kind: common.KindPod, Namespace: "test-ns", Name: "test-pod", Spec: spec}
}

func envRef(secretName string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: "SECRET_VALUE",
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
				Key:                  "value",
			},
		},
	}
}

func envFromRef(secretName string) corev1.EnvFromSource {
	return corev1.EnvFromSource{
		SecretRef: &corev1.SecretEnvSource{
			LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
		},
	}
}

func secretVolume(volName, secretName string) corev1.Volume {
	return corev1.Volume{
		Name: volName,
		VolumeSource: corev1.VolumeSource{
			Secret: &corev1.SecretVolumeSource{SecretName: secretName},
		},
	}
}

func TestExtractEnvVar(t *testing.T) {
	refs, resolved := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{{Name: "app", Env: []corev1.EnvVar{envRef("db-pass")}}},
	}))

	require.True(t, resolved)
	assert.ElementsMatch(t, []SecretReference{{Name: "db-pass", Kind: RefEnvVar}}, refs)
}

func TestExtractInitContainerEnvVar(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers:     []corev1.Container{{Name: "app"}},
		InitContainers: []corev1.Container{{Name: "init", Env: []corev1.EnvVar{envRef("migrate-cred")}}},
	}))

	assert.ElementsMatch(t, []SecretReference{{Name: "migrate-cred", Kind: RefEnvVar}}, refs)
}

func TestExtractEnvFrom(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{{Name: "app", EnvFrom: []corev1.EnvFromSource{envFromRef("app-config")}}},
	}))

	assert.ElementsMatch(t, []SecretReference{{Name: "app-config", Kind: RefEnvFrom}}, refs)
}

// A secret volume counts even when no container mounts it: the volume is
// still part of the declared spec.
func TestExtractUnmountedSecretVolume(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{{Name: "app"}},
		Volumes:    []corev1.Volume{secretVolume("certs", "tls-cert")},
	}))

	assert.ElementsMatch(t, []SecretReference{{Name: "tls-cert", Kind: RefVolume}}, refs)
}

func TestExtractImagePullSecrets(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers:       []corev1.Container{{Name: "app"}},
		ImagePullSecrets: []corev1.LocalObjectReference{{Name: "registry-cred"}},
	}))

	assert.ElementsMatch(t, []SecretReference{{Name: "registry-cred", Kind: RefImagePull}}, refs)
}

func TestExtractServiceAccountToken(t *testing.T) {
	e := Extractor{TokenSecrets: map[string][]string{
		"builder": {"builder-token-abc12"},
	}}

	refs, resolved := e.Extract(workload(corev1.PodSpec{
		Containers:         []corev1.Container{{Name: "app"}},
		ServiceAccountName: "builder",
	}))

	require.True(t, resolved)
	assert.ElementsMatch(t, []SecretReference{{Name: "builder-token-abc12", Kind: RefServiceAccount}}, refs)
}

// When the service account's token secrets are unknown the extractor fails
// open: no reference, but the workload is flagged as unresolved.
func TestExtractUnresolvedServiceAccount(t *testing.T) {
	refs, resolved := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers:         []corev1.Container{{Name: "app"}},
		ServiceAccountName: "builder",
	}))

	assert.False(t, resolved)
	assert.Empty(t, refs)
}

func TestExtractCollapsesDuplicates(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{
			{Name: "app", Env: []corev1.EnvVar{envRef("db-pass"), envRef("db-pass")}},
			{Name: "sidecar", Env: []corev1.EnvVar{envRef("db-pass")}},
		},
	}))

	assert.Equal(t, []SecretReference{{Name: "db-pass", Kind: RefEnvVar}}, refs)
}

func TestExtractEmptySpec(t *testing.T) {
	refs, resolved := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{{Name: "app"}},
	}))

	assert.True(t, resolved)
	assert.Empty(t, refs)
}

// The same secret referenced through different shapes yields one entry per
// reference kind, all with the same name.
func TestExtractMultipleKindsSameSecret(t *testing.T) {
	refs, _ := Extractor{}.Extract(workload(corev1.PodSpec{
		Containers: []corev1.Container{{
			Name:    "app",
			Env:     []corev1.EnvVar{envRef("shared")},
			EnvFrom: []corev1.EnvFromSource{envFromRef("shared")},
		}},
		Volumes: []corev1.Volume{secretVolume("data", "shared")},
	}))

	assert.ElementsMatch(t, []SecretReference{
		{Name: "shared", Kind: RefEnvVar},
		{Name: "shared", Kind: RefEnvFrom},
		{Name: "shared", Kind: RefVolume},
	}, refs)
}
