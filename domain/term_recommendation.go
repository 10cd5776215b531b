package domain

type TermRecommendationInput struct {
	Monto       float64 `json:"monto"`
	Inicial     float64 `json:"inicial"`
	Tasa        float64 `json:"tasa"`
	PlazoMinimo int     `json:"plazo_minimo"`
	PlazoMaximo int     `json:"plazo_maximo"`
	CuotaMaxima float64 `json:"cuota_maxima"`
	Preferencia string  `json:"preferencia"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	Plazo          int     `json:"plazo"`
	CuotaMensual   float64 `json:"cuota_mensual"`
	TotalIntereses float64 `json:"total_intereses"`
	Puntaje        float64 `json:"puntaje"`
	Razon          string  `json:"razon"`
}

type TermRecommendationResult struct {
	PlazoRecomendado int                  `json:"plazo_recomendado"`
	Recomendaciones  []TermRecommendation `json:"recomendaciones"`
}
