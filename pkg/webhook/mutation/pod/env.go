package pod

import (
	"github.com/vllm-profiler/env-injector/pkg/util/kubeobjects/env"
	"github.com/vllm-profiler/env-injector/pkg/webhook/mutation/pod/patch"
	"gomodules.xyz/jsonpatch/v2"
	corev1 "k8s.io/api/core/v1"
)

// envPatch sets every env var in every container, replacing values of existing entries and appending the rest.
func envPatch(containers []corev1.Container, envVars []corev1.EnvVar) []jsonpatch.JsonPatchOperation {
	b := patch.NewBuilder()

	for i := range containers {
		addContainerEnvPatch(b, i, &containers[i], envVars)
	}

	return b.Operations()
}

func addContainerEnvPatch(b *patch.Builder, index int, container *corev1.Container, envVars []corev1.EnvVar) {
	envPath := patch.Path(containersPath, patch.Index(index), "env")

	var toAppend []corev1.EnvVar

	for _, envVar := range envVars {
		i := env.IndexOf(container.Env, envVar.Name)
		if i < 0 {
			toAppend = append(toAppend, envVar)

			continue
		}

		existing := container.Env[i]

		switch {
		case existing.ValueFrom == nil && existing.Value == envVar.Value:
			log.Trace("env var already set", "container", container.Name, "env", envVar.Name)
		case existing.ValueFrom == nil && existing.Value != "":
			log.Debug("replacing env var value", "container", container.Name, "env", envVar.Name, "index", i)
			b.Replace(patch.Path(envPath, patch.Index(i), "value"), envVar.Value)
		default:
			// an empty value is omitted from the pod json, so there is no value field to replace
			log.Debug("replacing env var", "container", container.Name, "env", envVar.Name, "index", i)
			b.Replace(patch.Path(envPath, patch.Index(i)), envVar)
		}
	}

	if len(toAppend) > 0 {
		log.Debug("adding env vars", "container", container.Name, "count", len(toAppend), "createList", len(container.Env) == 0)
	}

	patch.AddToList(b, envPath, len(container.Env) > 0, toAppend...)
}

// mergeEnvVars drops repeated names, a repeated name keeps its first position and takes the last value.
func mergeEnvVars(envVars []corev1.EnvVar) []corev1.EnvVar {
	merged := make([]corev1.EnvVar, 0, len(envVars))

	for _, envVar := range envVars {
		if existing := env.FindEnvVar(merged, envVar.Name); existing != nil {
			existing.Value = envVar.Value

			continue
		}

		merged = append(merged, envVar)
	}

	return merged
}
