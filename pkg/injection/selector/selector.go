package selector

import (
	"fmt"
	"strings"

	"github.com/vllm-profiler/env-injector/pkg/injection/annotations"
	"github.com/vllm-profiler/env-injector/pkg/logd"
	maputil "github.com/vllm-profiler/env-injector/pkg/util/map"
)

const (
	pairSeparator     = ","
	keyValueSeparator = "="
)

var log = logd.Get().WithName("selector")

type Mode string

const (
	ModeNone   Mode = "none"
	ModeLegacy Mode = "legacy"
	ModeAnyOf  Mode = "any-of"
)

type LabelPair struct {
	Key   string
	Value string
}

func (pair LabelPair) String() string {
	return pair.Key + keyValueSeparator + pair.Value
}

// LabelSelector is resolved once from the configuration; its Mode decides how labels are matched.
type LabelSelector struct {
	mode  Mode
	pairs []LabelPair
}

func None() LabelSelector {
	return LabelSelector{mode: ModeNone}
}

func Legacy(key, value string) LabelSelector {
	return LabelSelector{mode: ModeLegacy, pairs: []LabelPair{{Key: key, Value: value}}}
}

func AnyOf(pairs ...LabelPair) LabelSelector {
	return LabelSelector{mode: ModeAnyOf, pairs: pairs}
}

// New resolves the configured selector. A non-empty multi-label string always wins over the legacy pair,
// even if none of its pairs can be parsed. A legacy pair needs both key and value.
func New(legacyKey, legacyValue, multiLabels string) LabelSelector {
	if strings.TrimSpace(multiLabels) != "" {
		pairs := ParsePairs(multiLabels)
		if len(pairs) == 0 {
			log.Warn("no valid label pair configured, no pod will match", "labels", multiLabels)
		}

		return AnyOf(pairs...)
	}

	if legacyKey != "" && legacyValue != "" {
		return Legacy(legacyKey, legacyValue)
	}

	return None()
}

// ParsePairs parses "key1=value1,key2=value2"; the first "=" of each entry separates key and value.
// Entries without "=" or with an empty key are skipped.
func ParsePairs(raw string) []LabelPair {
	var pairs []LabelPair

	for _, entry := range strings.Split(raw, pairSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, value, found := strings.Cut(entry, keyValueSeparator)
		key = strings.TrimSpace(key)

		if !found || key == "" {
			log.Warn("skipping malformed label pair, expected key=value", "pair", entry)

			continue
		}

		pairs = append(pairs, LabelPair{Key: key, Value: strings.TrimSpace(value)})
	}

	return pairs
}

func (s LabelSelector) Mode() Mode {
	if s.mode == "" {
		return ModeNone
	}

	return s.mode
}

func (s LabelSelector) Pairs() []LabelPair {
	return append([]LabelPair(nil), s.pairs...)
}

// MatchesLabels is true if any configured pair is present on the labels. ModeNone never matches.
func (s LabelSelector) MatchesLabels(labels map[string]string) bool {
	if s.Mode() == ModeNone {
		return false
	}

	for _, pair := range s.pairs {
		if value, ok := labels[pair.Key]; ok && value == pair.Value {
			return true
		}
	}

	return false
}

func (s LabelSelector) String() string {
	pairs := make([]string, 0, len(s.pairs))
	for _, pair := range s.pairs {
		pairs = append(pairs, pair.String())
	}

	return fmt.Sprintf("%s(%s)", s.Mode(), strings.Join(pairs, pairSeparator))
}

// PodSelector decides whether a pod is in scope for injection.
type PodSelector struct {
	Namespace string
	Labels    LabelSelector
}

func (s PodSelector) InNamespace(namespace string) bool {
	return s.Namespace != "" && s.Namespace == namespace
}

func (s PodSelector) OptedOut(podAnnotations map[string]string) bool {
	return !maputil.GetFieldBool(podAnnotations, annotations.AnnotationInject, true)
}

func (s PodSelector) Matches(namespace string, labels, podAnnotations map[string]string) bool {
	return s.InNamespace(namespace) && s.Labels.MatchesLabels(labels) && !s.OptedOut(podAnnotations)
}
