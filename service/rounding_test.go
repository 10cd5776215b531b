package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credimoto/domain"
)

func TestRoundResult_LastRowTakesRemainder(t *testing.T) {
	result, err := Calculate(domain.LoanParameters{Monto: 1000, Inicial: 0, Tasa: 0, Plazo: 3})
	require.NoError(t, err)

	rounded := RoundResult(result, DisplayDecimals)

	assert.Equal(t, 333.33, rounded.CuotaMensual)
	require.Len(t, rounded.TablaAmortizacion, 3)
	assert.Equal(t, 333.33, rounded.TablaAmortizacion[0].Capital)
	assert.Equal(t, 333.33, rounded.TablaAmortizacion[1].Capital)
	assert.Equal(t, 333.34, rounded.TablaAmortizacion[2].Capital)
	assert.Equal(t, 333.34, rounded.TablaAmortizacion[2].Cuota)
	assert.Equal(t, 0.0, rounded.TablaAmortizacion[2].Saldo)
	assert.Equal(t, 1000.0, rounded.TotalPagar)
}

func TestRoundResult_Invariants(t *testing.T) {
	for _, params := range []domain.LoanParameters{
		{Monto: 500000, Inicial: 0, Tasa: 12, Plazo: 12},
		{Monto: 300000, Inicial: 50000, Tasa: 15, Plazo: 48},
		{Monto: 45999.99, Inicial: 4599.99, Tasa: 36.9, Plazo: 60},
		{Monto: 100000, Inicial: 0, Tasa: 18, Plazo: 1},
	} {
		result, err := Calculate(params)
		require.NoError(t, err)

		firstRow := result.TablaAmortizacion[0]
		rounded := RoundResult(result, DisplayDecimals)
		financed := decimal.NewFromFloat(params.MontoFinanciar()).Round(2)

		sumPrincipal := decimal.Zero
		sumInterest := decimal.Zero
		sumCuota := decimal.Zero
		for _, row := range rounded.TablaAmortizacion {
			capital := decimal.NewFromFloat(row.Capital)
			interes := decimal.NewFromFloat(row.Interes)
			cuota := decimal.NewFromFloat(row.Cuota)

			assert.True(t, capital.Equal(capital.Round(2)), "capital %v has more than 2 decimals", row.Capital)
			assert.True(t, cuota.Equal(capital.Add(interes)), "mes %d: cuota %v != capital %v + interes %v", row.Mes, row.Cuota, row.Capital, row.Interes)

			sumPrincipal = sumPrincipal.Add(capital)
			sumInterest = sumInterest.Add(interes)
			sumCuota = sumCuota.Add(cuota)
		}

		assert.True(t, financed.Equal(sumPrincipal), "%+v: principal %s != financed %s", params, sumPrincipal, financed)
		assert.Equal(t, 0.0, rounded.TablaAmortizacion[len(rounded.TablaAmortizacion)-1].Saldo)
		assert.Equal(t, sumInterest.InexactFloat64(), rounded.TotalIntereses)
		assert.Equal(t, decimal.NewFromFloat(params.Inicial).Add(sumCuota).InexactFloat64(), rounded.TotalPagar)

		// the unrounded result is left untouched
		assert.Equal(t, firstRow, result.TablaAmortizacion[0])
	}
}

func TestRoundResult_HalfAwayFromZero(t *testing.T) {
	result := domain.LoanResult{
		CuotaMensual: 10.005,
		Resumen:      domain.LoanSummary{MontoVehiculo: 20.01, MontoFinanciar: 20.01},
		TablaAmortizacion: []domain.AmortizationRow{
			{Mes: 1, Cuota: 10.005, Capital: 10.005, Interes: 0, Saldo: 10.005},
			{Mes: 2, Cuota: 10.005, Capital: 10.005, Interes: 0, Saldo: 0},
		},
	}

	rounded := RoundResult(result, 2)

	assert.Equal(t, 10.01, rounded.CuotaMensual)
	assert.Equal(t, 10.01, rounded.TablaAmortizacion[0].Capital)
	assert.Equal(t, 10.0, rounded.TablaAmortizacion[1].Capital)
	assert.Equal(t, 0.0, rounded.TablaAmortizacion[1].Saldo)
}
