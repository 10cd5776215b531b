package service

import (
	"github.com/shopspring/decimal"

	"credimoto/domain"
)

// RoundResult devuelve una copia del resultado con todos los montos redondeados a
// places decimales, mitad alejándose de cero. Cada cuota intermedia es la cuota
// mensual redondeada y el interés se redondea por fila; el capital es la
// diferencia. La última fila absorbe el centavo sobrante para que la suma del
// capital sea exactamente el monto financiado y el saldo final sea cero.
func RoundResult(result domain.LoanResult, places int32) domain.LoanResult {
	if places < 0 {
		places = DisplayDecimals
	}
	round := func(v float64) decimal.Decimal {
		return decimal.NewFromFloat(v).Round(places)
	}

	inicial := round(result.Resumen.Inicial)
	financed := round(result.Resumen.MontoFinanciar)
	payment := round(result.CuotaMensual)

	rows := make([]domain.AmortizationRow, 0, len(result.TablaAmortizacion))
	balance := financed
	totalInterest := decimal.Zero
	totalInstallments := decimal.Zero

	for i, row := range result.TablaAmortizacion {
		interest := round(row.Interes)
		cuota := payment
		principal := cuota.Sub(interest)

		if i == len(result.TablaAmortizacion)-1 || principal.GreaterThan(balance) {
			principal = balance
			cuota = principal.Add(interest)
		}

		balance = balance.Sub(principal)
		totalInterest = totalInterest.Add(interest)
		totalInstallments = totalInstallments.Add(cuota)

		rows = append(rows, domain.AmortizationRow{
			Mes:     row.Mes,
			Cuota:   cuota.InexactFloat64(),
			Capital: principal.InexactFloat64(),
			Interes: interest.InexactFloat64(),
			Saldo:   balance.InexactFloat64(),
		})
	}

	summary := result.Resumen
	summary.MontoVehiculo = round(summary.MontoVehiculo).InexactFloat64()
	summary.Inicial = inicial.InexactFloat64()
	summary.MontoFinanciar = financed.InexactFloat64()

	return domain.LoanResult{
		CuotaMensual:      payment.InexactFloat64(),
		TotalIntereses:    totalInterest.InexactFloat64(),
		TotalPagar:        inicial.Add(totalInstallments).InexactFloat64(),
		Resumen:           summary,
		TablaAmortizacion: rows,
	}
}
