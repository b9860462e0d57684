package env

import corev1 "k8s.io/api/core/v1"

func FindEnvVar(envVars []corev1.EnvVar, name string) *corev1.EnvVar {
	if i := IndexOf(envVars, name); i >= 0 {
		// returning reference to env var to ease later manipulation of it
		return &envVars[i]
	}

	return nil
}

// IndexOf returns the position of the first env var with the given name, or -1.
func IndexOf(envVars []corev1.EnvVar, name string) int {
	for i, envVar := range envVars {
		if envVar.Name == name {
			return i
		}
	}

	return -1
}

func IsIn(envVars []corev1.EnvVar, name string) bool {
	return IndexOf(envVars, name) >= 0
}
