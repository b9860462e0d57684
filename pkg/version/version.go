package version

import (
	"fmt"
	"runtime"

	"github.com/vllm-profiler/env-injector/pkg/logd"
)

var (

	// AppName contains the name of the application
	AppName = "env-injector"

	// Version contains the version of the webhook. Assigned externally.
	Version = "snapshot"

	// Commit indicates the Git commit hash the binary was build from. Assigned externally.
	Commit = ""

	// BuildDate is the date when the binary was build. Assigned externally.
	BuildDate = ""

	log = logd.Get().WithName("version")
)

// LogVersion logs metadata about the webhook.
func LogVersion() {
	LogVersionToLogger(log)
}

func LogVersionToLogger(log logd.Logger) {
	log.Info(AppName,
		"version", Version,
		"gitCommit", Commit,
		"buildDate", BuildDate,
		"goVersion", runtime.Version(),
		"platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
}
