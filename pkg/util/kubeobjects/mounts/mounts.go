package mounts

import corev1 "k8s.io/api/core/v1"

func IsPathIn(mounts []corev1.VolumeMount, path string) bool {
	for _, vm := range mounts {
		if vm.MountPath == path {
			return true
		}
	}

	return false
}
