package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"credimoto/domain"
	"credimoto/service"
)

const maxBodyBytes = 1 << 20

type LoanHandler struct {
	service *service.LoanService
	logger  *zap.Logger
}

func NewLoanHandler(service *service.LoanService, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{service: service, logger: logger}
}

// CalculateLoan trata POST /financiamiento/calcular. Con ?redondear=true los
// montos se devuelven redondeados a centavos.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	rounded, err := parseBoolQuery(r, "redondear")
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "parámetro redondear inválido")
		return
	}

	var req domain.LoanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := req.Parameters()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	result, err := h.service.Calculate(r.Context(), params)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if rounded {
		result = service.RoundResult(result, service.DisplayDecimals)
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func parseBoolQuery(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
