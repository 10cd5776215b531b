package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credimoto/domain"
	"credimoto/repository"
	"credimoto/service"
)

const testSecret = "secreto-de-prueba"

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()

	loans := service.NewLoanService(repository.NewMemoryCache(), time.Minute, nil)
	terms := service.NewTermRecommendationService(service.NewExplanationService(service.ExplanationConfig{}, nil), nil)
	quotes := service.NewQuoteService(loans, repository.NewQuoteRepositoryMemory(), nil)

	rl := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(rl.Stop)

	return NewRouter(RouterConfig{
		Loans:          NewLoanHandler(loans, nil),
		Terms:          NewTermRecommendationHandler(terms, nil),
		Quotes:         NewQuoteHandler(quotes, nil),
		RateLimiter:    rl,
		JWTSecret:      testSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func do(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func bearer(t *testing.T, method jwt.SigningMethod, secret string) map[string]string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		Usuario: "vendedor1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + signed}
}

func TestCalculateLoan_OK(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/financiamiento/calcular",
		`{"monto": 500000, "inicial": 0, "tasa": 12, "plazo": 12}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.TablaAmortizacion, 12)
	assert.InDelta(t, 44424.39, result.CuotaMensual, 0.005)
	assert.Equal(t, 0.0, result.TablaAmortizacion[11].Saldo)
	assert.Equal(t, 500000.0, result.Resumen.MontoFinanciar)
}

func TestCalculateLoan_TinyRate(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/financiamiento/calcular",
		`{"monto": 100000, "inicial": 0, "tasa": 1e-15, "plazo": 12}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 100000.0/12, result.CuotaMensual, 1e-6)
	assert.Equal(t, 0.0, result.TablaAmortizacion[11].Saldo)
}

func TestCalculateLoan_Rounded(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodPost, "/financiamiento/calcular?redondear=true",
		`{"monto": 500000, "inicial": 0, "tasa": 12, "plazo": 12}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.LoanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 44424.39, result.CuotaMensual)
	assert.Equal(t, 5000.0, result.TablaAmortizacion[0].Interes)
	assert.Equal(t, 39424.39, result.TablaAmortizacion[0].Capital)

	w = do(router, http.MethodPost, "/financiamiento/calcular?redondear=quizas",
		`{"monto": 500000, "inicial": 0, "tasa": 12, "plazo": 12}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateLoan_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodGet, "/financiamiento/calcular", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method not allowed", decodeError(t, w).Error)
}

func TestCalculateLoan_BadRequest(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, tc := range []struct {
		name  string
		body  string
		campo string
	}{
		{"malformed json", `{"monto": `, ""},
		{"zero price", `{"monto": 0, "inicial": 0, "tasa": 12, "plazo": 12}`, "monto"},
		{"down payment equal to price", `{"monto": 100000, "inicial": 100000, "tasa": 12, "plazo": 12}`, "inicial"},
		{"fractional term", `{"monto": 100000, "inicial": 0, "tasa": 12, "plazo": 12.5}`, "plazo"},
		{"term too long", `{"monto": 100000, "inicial": 0, "tasa": 12, "plazo": 601}`, "plazo"},
		{"negative rate", `{"monto": 100000, "inicial": 0, "tasa": -1, "plazo": 12}`, "tasa"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/financiamiento/calcular", tc.body, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decodeError(t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tc.campo, resp.Campo)
		})
	}
}

func TestCalculateLoan_RateLimited(t *testing.T) {
	router := newTestRouter(t, 2)
	body := `{"monto": 1000, "inicial": 0, "tasa": 0, "plazo": 10}`

	for i := 0; i < 2; i++ {
		w := do(router, http.MethodPost, "/financiamiento/calcular", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(router, http.MethodPost, "/financiamiento/calcular", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// healthz queda fuera del límite
	w = do(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecommendTerm_Handler(t *testing.T) {
	router := newTestRouter(t, 100)
	body := `{"monto": 100000, "inicial": 10000, "tasa": 24, "plazo_minimo": 12, "plazo_maximo": 36, "cuota_maxima": 6000, "preferencia": "minimize_interest"}`

	r := httptest.NewRequest(http.MethodPost, "/financiamiento/recomendar-plazo", strings.NewReader(body))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = do(router, http.MethodPost, "/financiamiento/recomendar-plazo", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.TermRecommendationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 19, result.PlazoRecomendado)
	assert.NotEmpty(t, result.Recomendaciones[0].Razon)

	w = do(router, http.MethodPost, "/financiamiento/recomendar-plazo",
		`{"monto": 100000, "inicial": 10000, "tasa": 24, "plazo_minimo": 12, "plazo_maximo": 36, "cuota_maxima": 10, "preferencia": "balanced"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotes_RequireToken(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodGet, "/cotizaciones", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token ausente", decodeError(t, w).Error)

	w = do(router, http.MethodGet, "/cotizaciones", "", bearer(t, jwt.SigningMethodHS256, "otro-secreto"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/cotizaciones", "", bearer(t, jwt.SigningMethodHS384, testSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token inválido", decodeError(t, w).Error)
}

func TestQuotes_CreateGetList(t *testing.T) {
	router := newTestRouter(t, 100)
	auth := bearer(t, jwt.SigningMethodHS256, testSecret)

	w := do(router, http.MethodPost, "/cotizaciones",
		`{"cliente": "Ana Pérez", "vehiculo": "Honda CB190R", "monto": 95000, "inicial": 20000, "tasa": 16, "plazo": 36}`, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "/cotizaciones/"+created.ID, w.Header().Get("Location"))
	assert.Len(t, created.Resultado.TablaAmortizacion, 36)

	w = do(router, http.MethodGet, "/cotizaciones/"+created.ID, "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Ana Pérez", fetched.Cliente)

	w = do(router, http.MethodGet, "/cotizaciones?limite=10", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(router, http.MethodGet, "/cotizaciones?limite=-1", "", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/cotizaciones/6b1f0a52-51c1-4c7e-9d3e-0c8f3f0f1a11", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/cotizaciones",
		`{"cliente": "", "vehiculo": "Honda CB190R", "monto": 95000, "inicial": 20000, "tasa": 16, "plazo": 36}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_HealthAndNotFound(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(router, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(router, http.MethodOptions, "/cotizaciones", "", map[string]string{
		"Origin":                         "http://localhost:5173",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Authorization",
	})

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(router, http.MethodOptions, "/cotizaciones", "", map[string]string{
		"Origin":                        "http://evil.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
