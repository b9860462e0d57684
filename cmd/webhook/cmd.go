package webhook

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vllm-profiler/env-injector/pkg/config"
	"github.com/vllm-profiler/env-injector/pkg/logd"
	"github.com/vllm-profiler/env-injector/pkg/version"
	ctrl "sigs.k8s.io/controller-runtime"
)

const (
	use                        = "webhook-server"
	FlagConfigFile             = "config"
	FlagCertificateFileName    = "cert"
	FlagCertificateKeyFileName = "cert-key"
	FlagPort                   = "port"
)

var (
	configFile             string
	certificateFileName    string
	certificateKeyFileName string
	port                   int
)

func addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configFile, FlagConfigFile, "", "Path to a YAML config file, environment variables take precedence over it.")
	cmd.PersistentFlags().StringVar(&certificateFileName, FlagCertificateFileName, config.DefaultCertFile, "Path to the TLS certificate.")
	cmd.PersistentFlags().StringVar(&certificateKeyFileName, FlagCertificateKeyFileName, config.DefaultKeyFile, "Path to the TLS private key.")
	cmd.PersistentFlags().IntVar(&port, FlagPort, config.DefaultPort, "Port the webhook server listens on.")
}

func New() *cobra.Command {
	return newCommand(afero.NewOsFs())
}

func newCommand(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          use,
		RunE:         run(fs),
		SilenceUsage: true,
	}

	addFlags(cmd)

	return cmd
}

func run(fs afero.Fs) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		version.LogVersion()
		logd.LogBaseLoggerSettings()

		settings, err := loadSettings(cmd, fs)
		if err != nil {
			return err
		}

		err = checkCertificates(fs, settings.CertFile, settings.KeyFile)
		if err != nil {
			return err
		}

		return runServers(ctrl.SetupSignalHandler(), settings)
	}
}

// loadSettings reads config file and environment, explicitly set flags override both.
func loadSettings(cmd *cobra.Command, fs afero.Fs) (config.Settings, error) {
	settings, err := config.Load(fs, configFile)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()

	if flags.Changed(FlagCertificateFileName) {
		settings.CertFile = certificateFileName
	}

	if flags.Changed(FlagCertificateKeyFileName) {
		settings.KeyFile = certificateKeyFileName
	}

	if flags.Changed(FlagPort) {
		settings.Port = port
	}

	return settings, settings.Validate()
}
