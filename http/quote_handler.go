package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"credimoto/domain"
	"credimoto/service"
)

// QuoteHandler gestiona las rutas de cotizaciones.
type QuoteHandler struct {
	service *service.QuoteService
	logger  *zap.Logger
}

func NewQuoteHandler(service *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{service: service, logger: logger}
}

// Create trata POST /cotizaciones
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.QuoteInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if usuario := UsuarioFromContext(r.Context()); usuario != "" {
		h.logger.Info("quote created by user", zap.String("id", quote.ID), zap.String("usuario", usuario))
	}

	w.Header().Set("Location", "/cotizaciones/"+quote.ID)
	writeJSON(w, h.logger, http.StatusCreated, quote)
}

// Get trata GET /cotizaciones/{id}
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, quote)
}

// List trata GET /cotizaciones. Acepta ?limite=N.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limite"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, h.logger, http.StatusBadRequest, "límite inválido")
			return
		}
		limit = n
	}

	quotes, err := h.service.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, quotes)
}
