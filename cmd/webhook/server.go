package webhook

import (
	"context"
	"crypto/tls"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vllm-profiler/env-injector/pkg/config"
	"github.com/vllm-profiler/env-injector/pkg/logd"
	"github.com/vllm-profiler/env-injector/pkg/webhook/mutation/pod"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/controller-runtime/pkg/certwatcher"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
)

const metricsDisabled = "0"

var log = logd.Get().WithName("webhook-server")

type getCertificateFunc func(*tls.ClientHelloInfo) (*tls.Certificate, error)

// checkCertificates fails if the certificate or key file is missing, the server must not start without them.
func checkCertificates(fs afero.Fs, certFile, keyFile string) error {
	for _, file := range []string{certFile, keyFile} {
		exists, err := afero.Exists(fs, file)
		if err != nil {
			return errors.Wrapf(err, "failed to check TLS file %s", file)
		}

		if !exists {
			return errors.Errorf("TLS file %s not found", file)
		}
	}

	return nil
}

func newWebhookServer(port int, getCertificate getCertificateFunc) webhook.Server {
	tlsConfig := func(cfg *tls.Config) {
		cfg.MinVersion = tls.VersionTLS13
		cfg.GetCertificate = getCertificate
	}

	return webhook.NewServer(webhook.Options{
		Port:    port,
		TLSOpts: []func(*tls.Config){tlsConfig},
	})
}

func newMetricsServer(bindAddress string) (metricsserver.Server, error) {
	server, err := metricsserver.NewServer(metricsserver.Options{BindAddress: bindAddress}, nil, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return server, nil
}

// runServers blocks until ctx is done or one of the servers fails.
func runServers(ctx context.Context, settings config.Settings) error {
	watcher, err := certwatcher.New(settings.CertFile, settings.KeyFile)
	if err != nil {
		return errors.WithStack(err)
	}

	webhookServer := newWebhookServer(settings.Port, watcher.GetCertificate)
	pod.AddWebhookToServer(webhookServer, settings.Static())

	var metricsServer metricsserver.Server

	if settings.MetricsBindAddress == metricsDisabled {
		log.Info("metrics server disabled")
	} else {
		metricsServer, err = newMetricsServer(settings.MetricsBindAddress)
		if err != nil {
			return err
		}
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return errors.WithStack(watcher.Start(ctx))
	})

	group.Go(func() error {
		log.Info("starting webhook server", "port", settings.Port)

		return errors.WithStack(webhookServer.Start(ctx))
	})

	if metricsServer != nil {
		group.Go(func() error {
			log.Info("starting metrics server", "address", settings.MetricsBindAddress)

			return errors.WithStack(metricsServer.Start(ctx))
		})
	}

	return group.Wait()
}
