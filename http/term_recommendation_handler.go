package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"credimoto/domain"
	"credimoto/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  *zap.Logger
}

func NewTermRecommendationHandler(
	service *service.TermRecommendationService,
	logger *zap.Logger,
) *TermRecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermRecommendationHandler{service: service, logger: logger}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, h.logger, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var input domain.TermRecommendationInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		h.logger.Info("term recommendation rejected", zap.Error(err))
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
