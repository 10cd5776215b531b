package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billón
	MaxInterestRate = 1000.0          // 1000% anual
	MaxTermMonths   = 600             // 50 años
	MinTermMonths   = 1

	// Límites de términos para recomendación
	MaxTermRangeMonths = 120 // máximo rango de términos a evaluar (10 años)

	// Decimales usados al redondear para presentación
	DisplayDecimals = 2

	// Tolerancia para comparar sumas de capital contra el monto financiado
	PrincipalTolerance = 1e-6

	DefaultCacheTTL = 24 * time.Hour

	DefaultQuoteListLimit = 50
	MaxQuoteListLimit     = 500
)
