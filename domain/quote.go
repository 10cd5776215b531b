package domain

import "time"

// Quote es una cotización de financiamiento guardada para un cliente.
type Quote struct {
	ID         string         `json:"id"`
	Cliente    string         `json:"cliente"`
	Vehiculo   string         `json:"vehiculo"`
	Parametros LoanParameters `json:"parametros"`
	Resultado  LoanResult     `json:"resultado"`
	CreadoEn   time.Time      `json:"creado_en"`
}

type QuoteInput struct {
	Cliente  string `json:"cliente"`
	Vehiculo string `json:"vehiculo"`
	LoanRequest
}
