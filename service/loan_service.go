package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"credimoto/domain"
	"credimoto/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct {
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewLoanService crea el servicio de cálculo. cache puede ser nil, en cuyo caso
// cada solicitud se calcula de nuevo.
func NewLoanService(
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *LoanService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{cache: cache, ttl: ttl, logger: logger}
}

type cachedCalculation struct {
	Parametros domain.LoanParameters `json:"p"`
	Resultado  domain.LoanResult     `json:"r"`
}

// Calculate valida y calcula el financiamiento, consultando primero la caché.
// Los errores de caché no son críticos: se registran y se calcula igual.
func (s *LoanService) Calculate(
	ctx context.Context,
	params domain.LoanParameters,
) (domain.LoanResult, error) {
	if err := Validate(params); err != nil {
		return domain.LoanResult{}, err
	}

	key := cacheKey(params)

	if s.cache != nil {
		if result, ok := s.fromCache(ctx, key, params); ok {
			return result, nil
		}
	}

	result, err := Calculate(params)
	if err != nil {
		return domain.LoanResult{}, err
	}

	if s.cache != nil {
		s.toCache(ctx, key, params, result)
	}

	return result, nil
}

func (s *LoanService) fromCache(
	ctx context.Context,
	key string,
	params domain.LoanParameters,
) (domain.LoanResult, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read calculation from cache", zap.String("key", key), zap.Error(err))
		return domain.LoanResult{}, false
	}
	if !ok {
		return domain.LoanResult{}, false
	}

	var cached cachedCalculation
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return domain.LoanResult{}, false
	}
	// Una colisión de hash no debe devolver el resultado de otros parámetros.
	if cached.Parametros != params {
		return domain.LoanResult{}, false
	}

	s.logger.Debug("calculation served from cache", zap.String("key", key))
	return cached.Resultado, true
}

func (s *LoanService) toCache(
	ctx context.Context,
	key string,
	params domain.LoanParameters,
	result domain.LoanResult,
) {
	data, err := json.Marshal(cachedCalculation{Parametros: params, Resultado: result})
	if err != nil {
		s.logger.Warn("failed to encode calculation for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.logger.Warn("failed to save calculation to cache", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(params domain.LoanParameters) string {
	canonical := strings.Join([]string{
		strconv.FormatFloat(params.Monto, 'g', -1, 64),
		strconv.FormatFloat(params.Inicial, 'g', -1, 64),
		strconv.FormatFloat(params.Tasa, 'g', -1, 64),
		strconv.Itoa(params.Plazo),
	}, "|")
	return fmt.Sprintf("calculo:v1:%016x", xxhash.Sum64String(canonical))
}
