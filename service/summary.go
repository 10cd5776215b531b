package service

import "credimoto/domain"

// Summarize totaliza la tabla y arma el resultado. El total a pagar incluye el
// inicial, que se paga aparte al momento de la compra.
func Summarize(
	params domain.LoanParameters,
	monthlyRate float64,
	payment float64,
	schedule []domain.AmortizationRow,
) domain.LoanResult {
	var totalInterest, totalInstallments float64
	for _, row := range schedule {
		totalInterest += row.Interes
		totalInstallments += row.Cuota
	}

	return domain.LoanResult{
		CuotaMensual:   payment,
		TotalIntereses: totalInterest,
		TotalPagar:     params.Inicial + totalInstallments,
		Resumen: domain.LoanSummary{
			MontoVehiculo:  params.Monto,
			Inicial:        params.Inicial,
			MontoFinanciar: params.MontoFinanciar(),
			PlazoMeses:     params.Plazo,
			TasaAnual:      params.Tasa,
			TasaMensual:    monthlyRate * 100,
		},
		TablaAmortizacion: schedule,
	}
}
