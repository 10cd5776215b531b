package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Loans          *LoanHandler
	Terms          *TermRecommendationHandler
	Quotes         *QuoteHandler
	RateLimiter    *RateLimiter
	JWTSecret      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter monta las rutas de la API. Las rutas de cálculo tienen límite de
// solicitudes por IP; las de cotizaciones exigen token si hay JWTSecret.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger))
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, logger, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, logger, http.StatusNotFound, "not found")
	})

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Rutas de financiamiento
	fin := r.PathPrefix("/financiamiento").Subrouter()
	if cfg.RateLimiter != nil {
		fin.Use(RateLimitMiddleware(cfg.RateLimiter, logger))
	}
	fin.HandleFunc("/calcular", cfg.Loans.CalculateLoan).Methods(http.MethodPost)
	fin.HandleFunc("/recomendar-plazo", cfg.Terms.RecommendTerm).Methods(http.MethodPost)

	// Rutas de cotizaciones
	if cfg.Quotes != nil {
		cot := r.PathPrefix("/cotizaciones").Subrouter()
		if cfg.JWTSecret != "" {
			cot.Use(AuthMiddleware([]byte(cfg.JWTSecret), logger))
		}
		cot.HandleFunc("", cfg.Quotes.Create).Methods(http.MethodPost)
		cot.HandleFunc("", cfg.Quotes.List).Methods(http.MethodGet)
		cot.HandleFunc("/{id}", cfg.Quotes.Get).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}
