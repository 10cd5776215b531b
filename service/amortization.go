package service

import "credimoto/domain"

// BuildSchedule genera la tabla de amortización mes a mes. El último mes toma
// todo el saldo restante como capital, de modo que el saldo final es exactamente
// cero y la deriva de redondeo queda solo en esa fila.
func BuildSchedule(
	financed float64,
	monthlyRate float64,
	termMonths int,
	payment float64,
) []domain.AmortizationRow {
	if termMonths <= 0 {
		return nil
	}

	schedule := make([]domain.AmortizationRow, 0, termMonths)
	balance := financed

	for month := 1; month <= termMonths; month++ {
		interest := 0.0
		if monthlyRate != 0 {
			interest = balance * monthlyRate
		}

		principal := payment - interest
		cuota := payment

		if month == termMonths {
			principal = balance
			cuota = principal + interest
		}

		balance -= principal

		schedule = append(schedule, domain.AmortizationRow{
			Mes:     month,
			Cuota:   cuota,
			Capital: principal,
			Interes: interest,
			Saldo:   balance,
		})
	}

	return schedule
}
