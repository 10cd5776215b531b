package service

// MonthlyRate convierte una tasa nominal anual en porcentaje a la tasa mensual
// como fracción decimal: 12 → 0.01.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}
