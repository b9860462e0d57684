package pod

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	admissionv1 "k8s.io/api/admission/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// mutateHandler serves AdmissionReviews. Unlike the controller-runtime admission webhook it never answers
// with an error: a body that can't be read or decoded is handled as an empty request, which is allowed unmodified.
type mutateHandler struct {
	handler      admission.Handler
	deserializer runtime.Decoder
}

func newMutateHandler(handler admission.Handler, scheme *runtime.Scheme) *mutateHandler {
	return &mutateHandler{
		handler:      handler,
		deserializer: serializer.NewCodecFactory(scheme).UniversalDeserializer(),
	}
}

func (h *mutateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

		return
	}

	request := admission.Request{}

	review, err := h.readReview(r)
	if err != nil {
		log.Info("unable to read admission review, handling it as empty request", "error", err.Error())
	} else if review.Request != nil {
		request.AdmissionRequest = *review.Request
	}

	response := h.handler.Handle(r.Context(), request)

	err = response.Complete(request)
	if err != nil {
		log.Error(err, "unable to encode patch, allowing without patch", "uid", request.UID)

		response = admission.Patched(reasonInvalidRequest)
		_ = response.Complete(request)
	}

	writeReview(w, &admissionv1.AdmissionReview{
		TypeMeta: metav1.TypeMeta{
			APIVersion: admissionv1.SchemeGroupVersion.String(),
			Kind:       "AdmissionReview",
		},
		Response: &response.AdmissionResponse,
	})
}

func (h *mutateHandler) readReview(r *http.Request) (*admissionv1.AdmissionReview, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	review := &admissionv1.AdmissionReview{}

	_, _, err = h.deserializer.Decode(body, nil, review)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return review, nil
}

func writeReview(w http.ResponseWriter, review *admissionv1.AdmissionReview) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(review)
	if err != nil {
		log.Error(err, "unable to write admission response")
	}
}
