package domain

import (
	"errors"
	"fmt"
)

var (
	ErrQuoteNotFound = errors.New("cotización no encontrada")
	ErrInvalidInput  = errors.New("datos inválidos")
)

// InvalidPrincipalError se devuelve cuando el monto no es positivo o el inicial
// no deja un monto a financiar positivo.
type InvalidPrincipalError struct {
	Monto   float64
	Inicial float64
	Limite  float64 // distinto de cero cuando se excede el máximo permitido
}

func (e *InvalidPrincipalError) Error() string {
	switch {
	case e.Limite > 0:
		return fmt.Sprintf("monto excede el máximo permitido de $%.2f", e.Limite)
	case e.Monto <= 0:
		return "monto inválido"
	case e.Inicial < 0:
		return "inicial inválido"
	default:
		return fmt.Sprintf("el inicial (%.2f) debe ser menor que el monto (%.2f)", e.Inicial, e.Monto)
	}
}

type InvalidTermError struct {
	Plazo  float64
	Limite int
}

func (e *InvalidTermError) Error() string {
	if e.Limite > 0 {
		return fmt.Sprintf("plazo excede el máximo permitido de %d meses", e.Limite)
	}
	return "plazo inválido"
}

type InvalidRateError struct {
	Tasa   float64
	Limite float64
}

func (e *InvalidRateError) Error() string {
	if e.Limite > 0 {
		return fmt.Sprintf("tasa de interés excede el máximo permitido de %.2f%%", e.Limite)
	}
	return "tasa inválida"
}

// InvalidParameterError lo devuelve la fórmula de la cuota cuando se invoca con un
// monto financiado o un plazo no positivos.
type InvalidParameterError struct {
	Parametro string
	Valor     float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parámetro inválido %s: %v", e.Parametro, e.Valor)
}

// Field devuelve el nombre del campo de la solicitud asociado a un error de
// validación, o "" si err no es uno de ellos.
func Field(err error) string {
	var (
		principalErr *InvalidPrincipalError
		termErr      *InvalidTermError
		rateErr      *InvalidRateError
	)
	switch {
	case errors.As(err, &principalErr):
		if principalErr.Monto > 0 && principalErr.Limite == 0 {
			return "inicial"
		}
		return "monto"
	case errors.As(err, &termErr):
		return "plazo"
	case errors.As(err, &rateErr):
		return "tasa"
	}
	return ""
}

// IsValidationError reporta si err proviene de la validación de parámetros.
func IsValidationError(err error) bool {
	var paramErr *InvalidParameterError
	return Field(err) != "" || errors.As(err, &paramErr) || errors.Is(err, ErrInvalidInput)
}
