package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"credimoto/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Campo string `json:"campo,omitempty"`
}

// writeJSON codifica en un buffer primero para no escribir el header si falla.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, errorResponse{Error: message})
}

// writeServiceError traduce errores de servicio: validación → 400, cotización
// inexistente → 404, el resto → 500 sin exponer el detalle.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case domain.IsValidationError(err):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{
			Error: err.Error(),
			Campo: domain.Field(err),
		})
	case errors.Is(err, domain.ErrQuoteNotFound):
		writeError(w, logger, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}
