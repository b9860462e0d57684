package config

import (
	"os"
	"path"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vllm-profiler/env-injector/pkg/injection/selector"
	"sigs.k8s.io/yaml"
)

const (
	TargetNamespaceEnv     = "TARGET_NAMESPACE"
	TargetLabelKeyEnv      = "TARGET_LABEL_KEY"
	TargetLabelValueEnv    = "TARGET_LABEL_VALUE"
	TargetLabelsEnv        = "TARGET_LABELS"
	InjectEnvNameEnv       = "INJECT_ENV_NAME"
	InjectEnvValueEnv      = "INJECT_ENV_VALUE"
	AnnotationEnvPrefixEnv = "ANNOTATION_ENV_PREFIX"
	FilesVolumeNameEnv     = "FILES_VOLUME_NAME"
	FilesConfigMapNameEnv  = "FILES_CONFIGMAP_NAME"
	PortEnv                = "WEBHOOK_PORT"
	CertFileEnv            = "TLS_CERT_FILE"
	KeyFileEnv             = "TLS_KEY_FILE"
	MetricsBindAddressEnv  = "METRICS_BIND_ADDRESS"
)

// Settings is the process configuration as read from the config file and the environment.
type Settings struct {
	TargetNamespace     string      `json:"targetNamespace,omitempty"`
	TargetLabelKey      string      `json:"targetLabelKey,omitempty"`
	TargetLabelValue    string      `json:"targetLabelValue,omitempty"`
	TargetLabels        string      `json:"targetLabels,omitempty"`
	InjectEnvName       string      `json:"injectEnvName,omitempty"`
	InjectEnvValue      string      `json:"injectEnvValue,omitempty"`
	AnnotationEnvPrefix string      `json:"annotationEnvPrefix,omitempty"`
	FilesVolumeName     string      `json:"filesVolumeName,omitempty"`
	FilesConfigMapName  string      `json:"filesConfigMapName,omitempty"`
	Files               []FileEntry `json:"files,omitempty"`

	Port               int    `json:"port,omitempty"`
	CertFile           string `json:"certFile,omitempty"`
	KeyFile            string `json:"keyFile,omitempty"`
	MetricsBindAddress string `json:"metricsBindAddress,omitempty"`
}

func Defaults() Settings {
	return Settings{
		FilesVolumeName:    DefaultFilesVolumeName,
		FilesConfigMapName: DefaultFilesConfigMapName,
		Files:              defaultFiles(),
		Port:               DefaultPort,
		CertFile:           DefaultCertFile,
		KeyFile:            DefaultKeyFile,
		MetricsBindAddress: DefaultMetricsBindAddress,
	}
}

// Load starts from the defaults, applies the config file at configPath if one is given and lets environment variables override both.
func Load(fs afero.Fs, configPath string) (Settings, error) {
	settings := Defaults()

	if configPath != "" {
		err := settings.readFile(fs, configPath)
		if err != nil {
			return Settings{}, err
		}
	}

	err := settings.applyEnv()
	if err != nil {
		return Settings{}, err
	}

	return settings, settings.Validate()
}

func (s *Settings) readFile(fs afero.Fs, configPath string) error {
	raw, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	err = yaml.UnmarshalStrict(raw, s)
	if err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", configPath)
	}

	return nil
}

func (s *Settings) applyEnv() error {
	stringEnvs := map[string]*string{
		TargetNamespaceEnv:     &s.TargetNamespace,
		TargetLabelKeyEnv:      &s.TargetLabelKey,
		TargetLabelValueEnv:    &s.TargetLabelValue,
		TargetLabelsEnv:        &s.TargetLabels,
		InjectEnvNameEnv:       &s.InjectEnvName,
		InjectEnvValueEnv:      &s.InjectEnvValue,
		AnnotationEnvPrefixEnv: &s.AnnotationEnvPrefix,
		FilesVolumeNameEnv:     &s.FilesVolumeName,
		FilesConfigMapNameEnv:  &s.FilesConfigMapName,
		CertFileEnv:            &s.CertFile,
		KeyFileEnv:             &s.KeyFile,
		MetricsBindAddressEnv:  &s.MetricsBindAddress,
	}

	for envName, field := range stringEnvs {
		if value, ok := os.LookupEnv(envName); ok {
			*field = value
		}
	}

	if value, ok := os.LookupEnv(PortEnv); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", PortEnv)
		}

		s.Port = port
	}

	return nil
}

func (s Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.Errorf("port %d is out of range", s.Port)
	}

	if s.CertFile == "" || s.KeyFile == "" {
		return errors.New("TLS certificate and key file must be set")
	}

	if s.FilesVolumeName == "" || s.FilesConfigMapName == "" {
		return errors.New("files volume and ConfigMap name must be set")
	}

	for i, file := range s.Files {
		if file.Key == "" {
			return errors.Errorf("files[%d]: key must be set", i)
		}

		if !path.IsAbs(file.MountPath) {
			return errors.Errorf("files[%d]: mountPath %q must be absolute", i, file.MountPath)
		}
	}

	return nil
}

// Static resolves the selector and returns the snapshot used for admission requests.
func (s Settings) Static() Config {
	return Config{
		Namespace:           s.TargetNamespace,
		Selector:            selector.New(s.TargetLabelKey, s.TargetLabelValue, s.TargetLabels),
		InjectEnvName:       s.InjectEnvName,
		InjectEnvValue:      s.InjectEnvValue,
		AnnotationEnvPrefix: s.AnnotationEnvPrefix,
		FilesVolumeName:     s.FilesVolumeName,
		FilesConfigMapName:  s.FilesConfigMapName,
		Files:               append([]FileEntry(nil), s.Files...),
	}
}
