package pod

import (
	"context"

	"github.com/vllm-profiler/env-injector/pkg/config"
	"github.com/vllm-profiler/env-injector/pkg/injection/annotations"
	"github.com/vllm-profiler/env-injector/pkg/injection/selector"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Mutator decides whether a pod gets the profiler env vars and files, and returns the JSON Patch doing so.
// It only reads its config, so a single Mutator can serve concurrent requests.
type Mutator struct {
	decoder   admission.Decoder
	selector  selector.PodSelector
	extractor annotations.Extractor
	config    config.Config
}

var _ admission.Handler = &Mutator{}

func NewMutator(cfg config.Config, decoder admission.Decoder) *Mutator {
	return &Mutator{
		config:    cfg,
		selector:  cfg.PodSelector(),
		extractor: annotations.NewExtractor(cfg.AnnotationEnvPrefix),
		decoder:   decoder,
	}
}

// Handle always allows the pod; it is only patched if it is in scope and not injected yet.
func (m *Mutator) Handle(_ context.Context, request admission.Request) admission.Response {
	if request.Kind.Kind != podKind {
		log.Debug("skipping non-Pod kind", "kind", request.Kind.Kind, "uid", request.UID)

		return allowUnmodified(reasonNotPod)
	}

	pod, err := m.decodePod(request)
	if err != nil {
		log.Info("unable to decode pod, allowing without patch", "uid", request.UID, "error", err.Error())

		return allowUnmodified(reasonInvalidRequest)
	}

	podLog := log.WithValues("uid", request.UID, "namespace", request.Namespace, "podName", podName(pod))

	if !m.selector.InNamespace(request.Namespace) {
		podLog.Debug("namespace not targeted, allowing without patch", "targetNamespace", m.config.Namespace)

		return allowUnmodified(reasonNamespaceMismatch)
	}

	if !m.selector.Labels.MatchesLabels(pod.Labels) {
		podLog.Debug("labels not matching, allowing without patch", "selector", m.selector.Labels.String(), "labels", pod.Labels)

		return allowUnmodified(reasonLabelMismatch)
	}

	if m.selector.OptedOut(pod.Annotations) {
		podLog.Debug("injection disabled by annotation, allowing without patch", "annotation", annotations.AnnotationInject)

		return allowUnmodified(reasonOptedOut)
	}

	if !m.config.IsInjectionConfigured() {
		podLog.Debug("no env var to inject configured, allowing without patch")

		return allowUnmodified(reasonNotConfigured)
	}

	envVars := m.envVarsToInject(pod)

	operations := envPatch(pod.Spec.Containers, envVars)
	operations = append(operations, filesPatch(pod, m.config)...)

	if len(operations) == 0 {
		podLog.Debug("pod already injected, allowing without patch")

		return allowUnmodified(reasonAlreadyInjected)
	}

	podLog.Info("injecting into pod", "envVars", len(envVars), "operations", len(operations))
	admissionRequestsMetric.WithLabelValues(reasonPatched).Inc()
	patchOperationsMetric.Add(float64(len(operations)))

	return admission.Patched("", operations...)
}

func (m *Mutator) decodePod(request admission.Request) (*corev1.Pod, error) {
	pod := &corev1.Pod{}

	err := m.decoder.Decode(request, pod)
	if err != nil {
		return nil, err
	}

	return pod, nil
}

// envVarsToInject puts the configured env var first, followed by the ones requested via annotations.
func (m *Mutator) envVarsToInject(pod *corev1.Pod) []corev1.EnvVar {
	envVars := []corev1.EnvVar{{Name: m.config.InjectEnvName, Value: m.config.InjectEnvValue}}
	envVars = append(envVars, m.extractor.Extract(pod.Annotations)...)

	return mergeEnvVars(envVars)
}

func allowUnmodified(reason string) admission.Response {
	admissionRequestsMetric.WithLabelValues(reason).Inc()

	return admission.Patched(reason)
}

func podName(pod *corev1.Pod) string {
	if pod.Name != "" {
		return pod.Name
	}

	return pod.GenerateName
}
