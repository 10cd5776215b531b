package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRequest_Parameters(t *testing.T) {
	params, err := LoanRequest{Monto: 1000, Inicial: 100, Tasa: 12, Plazo: 24}.Parameters()
	require.NoError(t, err)
	assert.Equal(t, LoanParameters{Monto: 1000, Inicial: 100, Tasa: 12, Plazo: 24}, params)
	assert.Equal(t, 900.0, params.MontoFinanciar())

	for _, plazo := range []float64{12.5, math.NaN(), math.Inf(1), 1e12} {
		_, err := LoanRequest{Monto: 1000, Tasa: 12, Plazo: plazo}.Parameters()
		var termErr *InvalidTermError
		assert.True(t, errors.As(err, &termErr), "plazo %v", plazo)
	}

	// negative whole terms are left to validation
	params, err = LoanRequest{Monto: 1000, Tasa: 12, Plazo: -3}.Parameters()
	require.NoError(t, err)
	assert.Equal(t, -3, params.Plazo)
}

func TestField(t *testing.T) {
	for _, tc := range []struct {
		err   error
		field string
	}{
		{&InvalidPrincipalError{Monto: 0}, "monto"},
		{&InvalidPrincipalError{Monto: 2e9, Limite: 1e9}, "monto"},
		{&InvalidPrincipalError{Monto: 1000, Inicial: 1000}, "inicial"},
		{&InvalidTermError{Plazo: 0}, "plazo"},
		{&InvalidRateError{Tasa: -1}, "tasa"},
		{fmt.Errorf("wrapped: %w", &InvalidRateError{Tasa: -1}), "tasa"},
		{&InvalidParameterError{Parametro: "plazo"}, ""},
		{ErrQuoteNotFound, ""},
	} {
		assert.Equal(t, tc.field, Field(tc.err), "%v", tc.err)
	}
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&InvalidTermError{}))
	assert.True(t, IsValidationError(&InvalidParameterError{Parametro: "monto_financiar"}))
	assert.True(t, IsValidationError(fmt.Errorf("%w: preferencia inválida", ErrInvalidInput)))
	assert.False(t, IsValidationError(ErrQuoteNotFound))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.False(t, IsValidationError(nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "monto inválido", (&InvalidPrincipalError{Monto: -5}).Error())
	assert.Equal(t, "inicial inválido", (&InvalidPrincipalError{Monto: 5, Inicial: -1}).Error())
	assert.Equal(t, "el inicial (100.00) debe ser menor que el monto (100.00)", (&InvalidPrincipalError{Monto: 100, Inicial: 100}).Error())
	assert.Equal(t, "plazo excede el máximo permitido de 600 meses", (&InvalidTermError{Plazo: 700, Limite: 600}).Error())
	assert.Equal(t, "tasa inválida", (&InvalidRateError{Tasa: -1}).Error())
}
