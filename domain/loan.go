package domain

import "math"

// LoanParameters son los datos de entrada de un cálculo de financiamiento.
type LoanParameters struct {
	Monto   float64 `json:"monto"`   // precio del vehículo
	Inicial float64 `json:"inicial"` // pago inicial
	Tasa    float64 `json:"tasa"`    // tasa anual en porcentaje, 12 = 12%
	Plazo   int     `json:"plazo"`   // meses
}

// MontoFinanciar devuelve el monto realmente prestado.
func (p LoanParameters) MontoFinanciar() float64 {
	return p.Monto - p.Inicial
}

// LoanRequest es la forma en que llega el cálculo por la red. El plazo se recibe
// como número JSON para poder rechazar plazos no enteros con InvalidTermError.
type LoanRequest struct {
	Monto   float64 `json:"monto"`
	Inicial float64 `json:"inicial"`
	Tasa    float64 `json:"tasa"`
	Plazo   float64 `json:"plazo"`
}

// Parameters convierte la solicitud en LoanParameters.
func (r LoanRequest) Parameters() (LoanParameters, error) {
	if r.Plazo != math.Trunc(r.Plazo) || math.IsInf(r.Plazo, 0) || math.IsNaN(r.Plazo) {
		return LoanParameters{}, &InvalidTermError{Plazo: r.Plazo}
	}
	if r.Plazo > math.MaxInt32 || r.Plazo < math.MinInt32 {
		return LoanParameters{}, &InvalidTermError{Plazo: r.Plazo}
	}
	return LoanParameters{
		Monto:   r.Monto,
		Inicial: r.Inicial,
		Tasa:    r.Tasa,
		Plazo:   int(r.Plazo),
	}, nil
}

type AmortizationRow struct {
	Mes     int     `json:"mes"`
	Cuota   float64 `json:"cuota"`
	Capital float64 `json:"capital"`
	Interes float64 `json:"interes"`
	Saldo   float64 `json:"saldo"`
}

type LoanSummary struct {
	MontoVehiculo  float64 `json:"monto_vehiculo"`
	Inicial        float64 `json:"inicial"`
	MontoFinanciar float64 `json:"monto_financiar"`
	PlazoMeses     int     `json:"plazo_meses"`
	TasaAnual      float64 `json:"tasa_anual"`
	TasaMensual    float64 `json:"tasa_mensual"` // porcentaje
}

type LoanResult struct {
	CuotaMensual      float64           `json:"cuota_mensual"`
	TotalIntereses    float64           `json:"total_intereses"`
	TotalPagar        float64           `json:"total_pagar"`
	Resumen           LoanSummary       `json:"resumen"`
	TablaAmortizacion []AmortizationRow `json:"tabla_amortizacion"`
}
