package service

import (
	"math"

	"credimoto/domain"
)

// Validate revisa los parámetros en orden: monto e inicial, plazo y tasa. Devuelve
// el primer error encontrado.
func Validate(params domain.LoanParameters) error {
	if math.IsNaN(params.Monto) || params.Monto <= 0 {
		return &domain.InvalidPrincipalError{Monto: params.Monto, Inicial: params.Inicial}
	}
	if params.Monto > MaxLoanAmount {
		return &domain.InvalidPrincipalError{Monto: params.Monto, Inicial: params.Inicial, Limite: MaxLoanAmount}
	}
	if math.IsNaN(params.Inicial) || params.Inicial < 0 || params.Inicial >= params.Monto {
		return &domain.InvalidPrincipalError{Monto: params.Monto, Inicial: params.Inicial}
	}

	if params.Plazo < MinTermMonths {
		return &domain.InvalidTermError{Plazo: float64(params.Plazo)}
	}
	if params.Plazo > MaxTermMonths {
		return &domain.InvalidTermError{Plazo: float64(params.Plazo), Limite: MaxTermMonths}
	}

	if math.IsNaN(params.Tasa) || params.Tasa < 0 {
		return &domain.InvalidRateError{Tasa: params.Tasa}
	}
	if params.Tasa > MaxInterestRate {
		return &domain.InvalidRateError{Tasa: params.Tasa, Limite: MaxInterestRate}
	}

	return nil
}

// Calculate produce la cuota mensual, la tabla de amortización y el resumen del
// financiamiento. No tiene estado: dos llamadas con los mismos parámetros
// devuelven resultados idénticos.
func Calculate(params domain.LoanParameters) (domain.LoanResult, error) {
	if err := Validate(params); err != nil {
		return domain.LoanResult{}, err
	}

	financed := params.MontoFinanciar()
	rate := MonthlyRate(params.Tasa)

	payment, err := MonthlyPayment(financed, rate, params.Plazo)
	if err != nil {
		return domain.LoanResult{}, err
	}

	schedule := BuildSchedule(financed, rate, params.Plazo, payment)

	return Summarize(params, rate, payment, schedule), nil
}
