package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/chordline/backend/internal/apperr"
)

func decodeJSON(body io.ReadCloser, dst any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: "internal error", Code: string(apperr.CodeInternal)}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body.Error = ae.Message
		body.Code = string(ae.Code)
		body.Details = ae.Details
	}
	writeJSON(w, apperr.Status(err), body)
}
