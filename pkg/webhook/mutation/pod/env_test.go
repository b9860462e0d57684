package pod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vllm-profiler/env-injector/pkg/webhook/mutation/pod/patch"
	"gomodules.xyz/jsonpatch/v2"
	corev1 "k8s.io/api/core/v1"
)

func TestEnvPatch(t *testing.T) {
	injected := []corev1.EnvVar{
		{Name: "PYTHONPATH", Value: "/home/vllm/hotreload"},
		{Name: "RANGES", Value: "50-100"},
	}

	t.Run("create env list if container has none", func(t *testing.T) {
		containers := []corev1.Container{{Name: "main"}}

		operations := envPatch(containers, injected)

		require.Len(t, operations, 1)
		assert.Equal(t, jsonpatch.NewOperation(patch.OpAdd, "/spec/containers/0/env", injected), operations[0])
	})

	t.Run("append to existing env list", func(t *testing.T) {
		containers := []corev1.Container{{Name: "main", Env: []corev1.EnvVar{{Name: "HOME", Value: "/home/vllm"}}}}

		operations := envPatch(containers, injected)

		assert.Equal(t, []jsonpatch.JsonPatchOperation{
			jsonpatch.NewOperation(patch.OpAdd, "/spec/containers/0/env/-", injected[0]),
			jsonpatch.NewOperation(patch.OpAdd, "/spec/containers/0/env/-", injected[1]),
		}, operations)
	})

	t.Run("replace stale value in place", func(t *testing.T) {
		containers := []corev1.Container{{Name: "main", Env: []corev1.EnvVar{
			{Name: "HOME", Value: "/home/vllm"},
			{Name: "PYTHONPATH", Value: "/old"},
		}}}

		operations := envPatch(containers, injected[:1])

		require.Len(t, operations, 1)
		assert.Equal(t, jsonpatch.NewOperation(patch.OpReplace, "/spec/containers/0/env/1/value", "/home/vllm/hotreload"), operations[0])
	})

	t.Run("nothing to do if value is already set", func(t *testing.T) {
		containers := []corev1.Container{{Name: "main", Env: injected}}

		assert.Empty(t, envPatch(containers, injected))
	})

	t.Run("replace whole entry if it has no literal value", func(t *testing.T) {
		fromField := corev1.EnvVar{Name: "PYTHONPATH", ValueFrom: &corev1.EnvVarSource{
			FieldRef: &corev1.ObjectFieldSelector{FieldPath: "metadata.name"},
		}}
		containers := []corev1.Container{
			{Name: "from-field", Env: []corev1.EnvVar{fromField}},
			{Name: "empty", Env: []corev1.EnvVar{{Name: "PYTHONPATH"}}},
		}

		operations := envPatch(containers, injected[:1])

		assert.Equal(t, []jsonpatch.JsonPatchOperation{
			jsonpatch.NewOperation(patch.OpReplace, "/spec/containers/0/env/0", injected[0]),
			jsonpatch.NewOperation(patch.OpReplace, "/spec/containers/1/env/0", injected[0]),
		}, operations)
	})

	t.Run("every container is patched", func(t *testing.T) {
		containers := []corev1.Container{{Name: "main"}, {Name: "sidecar", Env: []corev1.EnvVar{{Name: "A", Value: "b"}}}}

		operations := envPatch(containers, injected[:1])

		assert.Equal(t, []jsonpatch.JsonPatchOperation{
			jsonpatch.NewOperation(patch.OpAdd, "/spec/containers/0/env", injected[:1]),
			jsonpatch.NewOperation(patch.OpAdd, "/spec/containers/1/env/-", injected[0]),
		}, operations)
	})

	t.Run("no containers, no operations", func(t *testing.T) {
		assert.Empty(t, envPatch(nil, injected))
	})
}

func TestMergeEnvVars(t *testing.T) {
	t.Run("repeated name keeps first position and last value", func(t *testing.T) {
		merged := mergeEnvVars([]corev1.EnvVar{
			{Name: "DEBUG", Value: "0"},
			{Name: "RANGES", Value: "1-2"},
			{Name: "DEBUG", Value: "1"},
		})

		assert.Equal(t, []corev1.EnvVar{
			{Name: "DEBUG", Value: "1"},
			{Name: "RANGES", Value: "1-2"},
		}, merged)
	})

	t.Run("input is not modified", func(t *testing.T) {
		input := []corev1.EnvVar{{Name: "A", Value: "1"}, {Name: "A", Value: "2"}}

		_ = mergeEnvVars(input)

		assert.Equal(t, "1", input[0].Value)
	})
}
