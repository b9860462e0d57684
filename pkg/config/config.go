package config

import (
	"github.com/vllm-profiler/env-injector/pkg/injection/selector"
)

const (
	DefaultFilesVolumeName    = "env-injector-files"
	DefaultFilesConfigMapName = "env-injector-files"

	DefaultPort               = 8443
	DefaultCertFile           = "/tls/tls.crt"
	DefaultKeyFile            = "/tls/tls.key"
	DefaultMetricsBindAddress = ":8383"
)

// FileEntry is one key of the files ConfigMap, mounted via subPath at MountPath.
type FileEntry struct {
	Key       string `json:"key"`
	MountPath string `json:"mountPath"`
}

func defaultFiles() []FileEntry {
	return []FileEntry{
		{Key: "my_method.py", MountPath: "/home/vllm/my_method.py"},
		{Key: "hotreload.py", MountPath: "/home/vllm/hotreload/hotreload.py"},
		{Key: "sitecustomize.py", MountPath: "/home/vllm/hotreload/sitecustomize.py"},
	}
}

// Config is the immutable snapshot every admission request is evaluated against.
type Config struct {
	Namespace string
	Selector  selector.LabelSelector

	InjectEnvName       string
	InjectEnvValue      string
	AnnotationEnvPrefix string

	FilesVolumeName    string
	FilesConfigMapName string
	Files              []FileEntry
}

func (c Config) PodSelector() selector.PodSelector {
	return selector.PodSelector{Namespace: c.Namespace, Labels: c.Selector}
}

func (c Config) IsInjectionConfigured() bool {
	return c.InjectEnvName != ""
}
