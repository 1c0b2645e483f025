package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/ctcpredict/internal/domain/candidate"
)

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewPredictHandler creates a new predict handler. A non-positive limit
// falls back to DefaultMaxBodyBytes.
func NewPredictHandler(deps Dependencies, maxBodyBytes int64) *PredictHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &PredictHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	form, err := decodeForm(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := form.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if !h.deps.Ready() {
		writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
		return
	}

	p, err := h.deps.Predict(r.Context(), form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "prediction_failed", WrapKind(op, ErrPrediction, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func decodeForm(body io.Reader) (candidate.Form, error) {
	var form candidate.Form
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		return candidate.Form{}, fmt.Errorf("decode form: %w", err)
	}
	if dec.More() {
		return candidate.Form{}, errors.New("decode form: trailing data after JSON object")
	}
	return form, nil
}
