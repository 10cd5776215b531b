package service

import (
	"math"

	"credimoto/domain"
)

// MonthlyPayment calcula la cuota fija con la fórmula de anualidad. Con tasa cero
// la cuota es el monto dividido entre el plazo.
func MonthlyPayment(financed, monthlyRate float64, termMonths int) (float64, error) {
	if financed <= 0 {
		return 0, &domain.InvalidParameterError{Parametro: "monto_financiar", Valor: financed}
	}
	if termMonths <= 0 {
		return 0, &domain.InvalidParameterError{Parametro: "plazo", Valor: float64(termMonths)}
	}
	if monthlyRate < 0 {
		return 0, &domain.InvalidParameterError{Parametro: "tasa_mensual", Valor: monthlyRate}
	}

	if monthlyRate == 0 {
		return financed / float64(termMonths), nil
	}

	// growth = (1+r)^n - 1, exacto aun cuando 1+r se redondea a 1
	growth := math.Expm1(float64(termMonths) * math.Log1p(monthlyRate))
	if growth == 0 {
		return financed / float64(termMonths), nil
	}
	return financed * (monthlyRate / growth) * (1 + growth), nil
}
