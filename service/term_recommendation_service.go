package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"credimoto/domain"
)

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"

	maxAlternatives = 3
)

var preferences = map[string]bool{
	PreferenceMinimizeInterest: true,
	PreferenceMinimizePayment:  true,
	PreferenceBalanced:         true,
}

type TermRecommendationService struct {
	explainer *ExplanationService
	logger    *zap.Logger
}

func NewTermRecommendationService(
	explainer *ExplanationService,
	logger *zap.Logger,
) *TermRecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermRecommendationService{
		explainer: explainer,
		logger:    logger,
	}
}

// RecommendTerm analiza diferentes plazos y recomienda el óptimo
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := Validate(domain.LoanParameters{
		Monto:   input.Monto,
		Inicial: input.Inicial,
		Tasa:    input.Tasa,
		Plazo:   input.PlazoMinimo,
	}); err != nil {
		return domain.TermRecommendationResult{}, err
	}
	if input.PlazoMaximo <= 0 {
		return domain.TermRecommendationResult{}, &domain.InvalidTermError{Plazo: float64(input.PlazoMaximo)}
	}
	if input.PlazoMaximo > MaxTermMonths {
		return domain.TermRecommendationResult{}, &domain.InvalidTermError{Plazo: float64(input.PlazoMaximo), Limite: MaxTermMonths}
	}
	if input.PlazoMinimo > input.PlazoMaximo {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: plazo mínimo mayor que máximo", domain.ErrInvalidInput)
	}
	// Validar que el rango no sea demasiado grande para evitar cálculos costosos
	if input.PlazoMaximo-input.PlazoMinimo > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: rango de plazos excede el máximo de %d meses", domain.ErrInvalidInput, MaxTermRangeMonths)
	}
	if input.CuotaMaxima <= 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: cuota máxima inválida", domain.ErrInvalidInput)
	}
	if !preferences[input.Preferencia] {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: preferencia inválida", domain.ErrInvalidInput)
	}

	recommendations := []domain.TermRecommendation{}

	for term := input.PlazoMinimo; term <= input.PlazoMaximo; term++ {
		result, err := Calculate(domain.LoanParameters{
			Monto:   input.Monto,
			Inicial: input.Inicial,
			Tasa:    input.Tasa,
			Plazo:   term,
		})
		if err != nil {
			s.logger.Warn("failed to calculate loan for term", zap.Int("plazo", term), zap.Error(err))
			continue
		}

		if result.CuotaMensual > input.CuotaMaxima {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			Plazo:          term,
			CuotaMensual:   roundTo2Decimals(result.CuotaMensual),
			TotalIntereses: roundTo2Decimals(result.TotalIntereses),
			Puntaje:        calculateScore(result, input, term),
			Razon:          generateReason(input.Preferencia),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: no se encontraron plazos válidos con la cuota máxima especificada", domain.ErrInvalidInput)
	}

	// Ordenar por puntaje descendente; a igual puntaje, el plazo más corto
	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Puntaje == recommendations[j].Puntaje {
			return recommendations[i].Plazo < recommendations[j].Plazo
		}
		return recommendations[i].Puntaje > recommendations[j].Puntaje
	})

	end := len(recommendations)
	if end > maxAlternatives+1 {
		end = maxAlternatives + 1
	}
	if s.explainer != nil {
		recommendations[0].Razon = s.explainer.ExplainTermRecommendation(
			ctx,
			input,
			recommendations[0],
			recommendations[1:end],
		)
	}

	return domain.TermRecommendationResult{
		PlazoRecomendado: recommendations[0].Plazo,
		Recomendaciones:  recommendations,
	}, nil
}

// calculateScore normaliza interés, cuota y plazo a 0-10 y los pondera según la
// preferencia.
func calculateScore(
	result domain.LoanResult,
	input domain.TermRecommendationInput,
	term int,
) float64 {
	financed := input.Monto - input.Inicial

	maxPossibleInterest := financed * (input.Tasa / 100) * float64(input.PlazoMaximo) / 12
	minPossibleInterest := financed * (input.Tasa / 100) * float64(input.PlazoMinimo) / 12
	minPayment := financed / float64(input.PlazoMaximo)

	interestRange := maxPossibleInterest - minPossibleInterest
	paymentRange := input.CuotaMaxima - minPayment
	termRange := input.PlazoMaximo - input.PlazoMinimo

	interestScore := 10.0
	paymentScore := 10.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalIntereses-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.CuotaMensual-minPayment)/paymentRange)
	}
	if termRange > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.PlazoMinimo)/float64(termRange))
	}

	var score float64
	switch input.Preferencia {
	case PreferenceMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case PreferenceMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	default:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(score)
}

func generateReason(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Plazo optimizado para minimizar el costo total de intereses"
	case PreferenceMinimizePayment:
		return "Plazo optimizado para minimizar la cuota mensual"
	case PreferenceBalanced:
		return "Balance óptimo entre cuota mensual y costo total"
	}
	return "Recomendación basada en los parámetros proporcionados"
}
