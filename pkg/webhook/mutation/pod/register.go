package pod

import (
	"net/http"

	"github.com/vllm-profiler/env-injector/pkg/api/scheme"
	"github.com/vllm-profiler/env-injector/pkg/config"
	"github.com/vllm-profiler/env-injector/pkg/injection/annotations"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// AddWebhookToServer registers the mutation and liveness endpoints on the webhook server.
func AddWebhookToServer(server webhook.Server, cfg config.Config) {
	logEffectiveConfig(cfg)

	mutator := NewMutator(cfg, admission.NewDecoder(scheme.Scheme))

	server.Register(MutatePath, newMutateHandler(mutator, scheme.Scheme))
	log.Info("registered " + MutatePath + " endpoint")

	registerHealthzEndpoint(server)
}

func registerHealthzEndpoint(server webhook.Server) {
	server.Register(HealthzPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	log.Info("registered " + HealthzPath + " endpoint")
}

func logEffectiveConfig(cfg config.Config) {
	if cfg.Namespace == "" {
		log.Info("no target namespace configured, no pod will be mutated")
	}

	if !cfg.IsInjectionConfigured() {
		log.Info("no env var to inject configured, no pod will be mutated")
	}

	recognized := make([]string, 0, len(annotations.EnvMappings()))
	for _, mapping := range annotations.EnvMappings() {
		recognized = append(recognized, mapping.Annotation)
	}

	log.Info("effective config",
		"targetNamespace", cfg.Namespace,
		"selector", cfg.Selector.String(),
		"injectEnvName", cfg.InjectEnvName,
		"annotationEnvPrefix", cfg.AnnotationEnvPrefix,
		"filesVolume", cfg.FilesVolumeName,
		"filesConfigMap", cfg.FilesConfigMapName,
		"files", len(cfg.Files),
		"annotations", recognized,
	)
}
