package version

import (
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/vllm-profiler/env-injector/pkg/logd"
)

func TestLogVersionToLogger(t *testing.T) {
	var output string

	logger := logd.Logger{Logger: funcr.New(func(prefix, args string) {
		output = args
	}, funcr.Options{})}

	previousVersion, previousCommit := Version, Commit
	t.Cleanup(func() {
		Version, Commit = previousVersion, previousCommit
	})

	Version = "1.2.3"
	Commit = "abc123"

	LogVersionToLogger(logger)

	assert.Contains(t, output, `"version"="1.2.3"`)
	assert.Contains(t, output, `"gitCommit"="abc123"`)
	assert.Contains(t, output, AppName)
}
