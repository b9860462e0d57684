package annotations

import (
	"github.com/vllm-profiler/env-injector/pkg/logd"
	corev1 "k8s.io/api/core/v1"
)

const (
	Prefix = "vllm.profiler/"

	// AnnotationInject set to "false" excludes a pod that would otherwise match the selector.
	AnnotationInject = Prefix + "inject"

	AnnotationRanges       = Prefix + "ranges"
	AnnotationActivities   = Prefix + "activities"
	AnnotationRecordShapes = Prefix + "record-shapes"
	AnnotationWithStack    = Prefix + "with-stack"
	AnnotationMemory       = Prefix + "memory"
	AnnotationOutput       = Prefix + "output"
	AnnotationExportTrace  = Prefix + "export-trace"
	AnnotationDebug        = Prefix + "debug"
)

var log = logd.Get().WithName("annotations")

// EnvMapping ties a profiler annotation to the env var it is injected as.
type EnvMapping struct {
	Annotation string
	EnvName    string
}

// envMappings is ordered, extracted env vars follow this order.
var envMappings = []EnvMapping{
	{Annotation: AnnotationRanges, EnvName: "RANGES"},
	{Annotation: AnnotationActivities, EnvName: "ACTIVITIES"},
	{Annotation: AnnotationRecordShapes, EnvName: "RECORD_SHAPES"},
	{Annotation: AnnotationWithStack, EnvName: "WITH_STACK"},
	{Annotation: AnnotationMemory, EnvName: "MEMORY"},
	{Annotation: AnnotationOutput, EnvName: "OUTPUT"},
	{Annotation: AnnotationExportTrace, EnvName: "EXPORT_TRACE"},
	{Annotation: AnnotationDebug, EnvName: "DEBUG"},
}

func EnvMappings() []EnvMapping {
	return append([]EnvMapping(nil), envMappings...)
}

type Extractor struct {
	envPrefix string
}

// NewExtractor returns an Extractor that prepends envPrefix to every extracted env var name.
func NewExtractor(envPrefix string) Extractor {
	return Extractor{envPrefix: envPrefix}
}

// Extract returns one env var per recognized annotation present on the pod, using the annotation value as is.
func (e Extractor) Extract(annotations map[string]string) []corev1.EnvVar {
	var envVars []corev1.EnvVar

	for _, mapping := range envMappings {
		value, ok := annotations[mapping.Annotation]
		if !ok {
			continue
		}

		if mapping.Annotation == AnnotationRanges {
			for _, invalid := range InvalidRanges(value) {
				log.Warn("profiling range is not of the form start-end, the profiler will skip it", "annotation", mapping.Annotation, "range", invalid)
			}
		}

		envVars = append(envVars, corev1.EnvVar{Name: e.envPrefix + mapping.EnvName, Value: value})
	}

	return envVars
}
