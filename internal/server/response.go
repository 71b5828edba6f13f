package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emrgen/bookpost/internal/ocr"
	"github.com/emrgen/bookpost/internal/service"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: message, Code: code})
}

// writeServiceError maps classified service and ocr errors onto HTTP
// statuses with machine-readable codes. Internal details never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrIdeaNotFound),
		errors.Is(err, service.ErrUnderlineNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrParagraphNotInPost):
		writeError(w, http.StatusBadRequest, "invalid_paragraph", err.Error())
	case errors.Is(err, ocr.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, "invalid_image", err.Error())
	case errors.Is(err, ocr.ErrTimeout):
		writeError(w, http.StatusBadGateway, "ocr_timeout", "ocr request timed out")
	case errors.Is(err, ocr.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "ocr_unavailable", "ocr service unavailable")
	case errors.Is(err, ocr.ErrQuotaExceeded):
		writeError(w, http.StatusServiceUnavailable, "ocr_quota_exceeded", "ocr quota exceeded")
	default:
		logrus.Errorf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
