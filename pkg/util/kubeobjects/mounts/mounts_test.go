package mounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
)

func TestIsPathIn(t *testing.T) {
	mounts := []corev1.VolumeMount{
		{Name: "files", MountPath: "/home/vllm/my_method.py", SubPath: "my_method.py"},
	}

	assert.True(t, IsPathIn(mounts, "/home/vllm/my_method.py"))
	assert.False(t, IsPathIn(mounts, "/home/vllm"))
	assert.False(t, IsPathIn(nil, "/home/vllm/my_method.py"))
}
