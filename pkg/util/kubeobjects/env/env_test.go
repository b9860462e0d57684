package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
)

const (
	testKey1   = "TEST_KEY_1"
	testKey2   = "TEST_KEY_2"
	testValue1 = "test-value-1"
	testValue2 = "test-value-2"
)

func TestFindEnvVar(t *testing.T) {
	envVars := []corev1.EnvVar{
		{Name: testKey1, Value: testValue1},
		{Name: testKey2, Value: testValue2},
	}

	envVar := FindEnvVar(envVars, testKey1)
	assert.NotNil(t, envVar)
	assert.Equal(t, testKey1, envVar.Name)
	assert.Equal(t, testValue1, envVar.Value)

	envVar = FindEnvVar(envVars, testKey2)
	assert.NotNil(t, envVar)
	assert.Equal(t, testValue2, envVar.Value)

	envVar = FindEnvVar(envVars, "invalid-key")
	assert.Nil(t, envVar)
}

func TestIndexOf(t *testing.T) {
	envVars := []corev1.EnvVar{
		{Name: testKey1, Value: testValue1},
		{Name: testKey2, Value: testValue2},
		{Name: testKey1, Value: "duplicate"},
	}

	assert.Equal(t, 0, IndexOf(envVars, testKey1))
	assert.Equal(t, 1, IndexOf(envVars, testKey2))
	assert.Equal(t, -1, IndexOf(envVars, "invalid-key"))
	assert.Equal(t, -1, IndexOf(nil, testKey1))
}

func TestEnvVarIsIn(t *testing.T) {
	envVars := []corev1.EnvVar{
		{Name: testKey1, Value: testValue1},
	}

	assert.True(t, IsIn(envVars, testKey1))
	assert.False(t, IsIn(envVars, testKey2))
}
