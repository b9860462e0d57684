package logd

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	stacktraceKey   = "stacktrace"
	errorVerboseKey = "errorVerbose"
)

type PrettyLogWriter struct {
	out io.Writer
}

type PrettyLogWriterOption func(*PrettyLogWriter)

func WithWriter(out io.Writer) PrettyLogWriterOption {
	return func(w *PrettyLogWriter) {
		w.out = out
	}
}

// NewPrettyLogWriter returns a writer that moves pkg/errors' "errorVerbose" into "stacktrace" and unescapes it, so stack traces stay readable.
func NewPrettyLogWriter(opts ...PrettyLogWriterOption) *PrettyLogWriter {
	w := &PrettyLogWriter{out: os.Stderr}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *PrettyLogWriter) Write(payload []byte) (int, error) {
	document, err := replaceDuplicatedStacktrace(payload)
	if err != nil {
		// not json, write without modification
		return w.out.Write(payload)
	}

	message := prettify(document)
	if strings.HasSuffix(string(payload), "\n") {
		message += "\n"
	}

	_, err = io.WriteString(w.out, message)
	if err != nil {
		return 0, err
	}

	return len(payload), nil
}

func prettify(payload []byte) string {
	message := string(payload)
	message = strings.ReplaceAll(message, "\\n", "\n")
	message = strings.ReplaceAll(message, "\\t", "\t")

	return message
}

func replaceDuplicatedStacktrace(payload []byte) ([]byte, error) {
	var document map[string]any

	err := json.Unmarshal(payload, &document)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if errorVerbose, ok := document[errorVerboseKey]; ok {
		document[stacktraceKey] = errorVerbose
		delete(document, errorVerboseKey)
	}

	return json.Marshal(document)
}
