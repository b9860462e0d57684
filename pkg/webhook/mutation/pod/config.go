package pod

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vllm-profiler/env-injector/pkg/logd"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	MutatePath  = "/mutate"
	HealthzPath = "/healthz"

	podKind        = "Pod"
	containersPath = "/spec/containers"
	volumesPath    = "/spec/volumes"

	// same limit the controller-runtime admission handler applies
	maxRequestBodyBytes = 7 * 1024 * 1024
)

const (
	reasonInvalidRequest    = "invalid_request"
	reasonNotPod            = "not_pod"
	reasonNamespaceMismatch = "namespace_mismatch"
	reasonLabelMismatch     = "label_mismatch"
	reasonOptedOut          = "opted_out"
	reasonNotConfigured     = "not_configured"
	reasonAlreadyInjected   = "already_injected"
	reasonPatched           = "patched"
)

var (
	log = logd.Get().WithName("pod-mutation")

	admissionRequestsMetric = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "env_injector",
		Subsystem: "webhook",
		Name:      "admission_requests_total",
		Help:      "Number of admission requests handled, by outcome",
	}, []string{"reason"})

	patchOperationsMetric = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "env_injector",
		Subsystem: "webhook",
		Name:      "patch_operations_total",
		Help:      "Number of JSON Patch operations returned to the API server",
	})
)

func init() {
	metrics.Registry.MustRegister(admissionRequestsMetric)
	metrics.Registry.MustRegister(patchOperationsMetric)
}
