package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"credimoto/domain"
)

const (
	defaultLLMURL   = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel = "gpt-4o-mini"
)

type ExplanationConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// ExplanationService genera explicaciones en lenguaje natural de los planes de
// financiamiento. Sin API key devuelve siempre el texto de respaldo.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewExplanationService(cfg ExplanationConfig, logger *zap.Logger) *ExplanationService {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultLLMURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultLLMModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplanationService{
		apiKey:  cfg.APIKey,
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ExplainTermRecommendation explica por qué el plazo recomendado es la mejor
// opción para la preferencia del cliente.
func (s *ExplanationService) ExplainTermRecommendation(
	ctx context.Context,
	input domain.TermRecommendationInput,
	top domain.TermRecommendation,
	alternatives []domain.TermRecommendation,
) string {
	if !s.enabled {
		return fallbackExplanation(top, input.Preferencia)
	}

	var alt strings.Builder
	for _, a := range alternatives {
		fmt.Fprintf(&alt, "- %d meses: cuota $%.2f, intereses $%.2f\n", a.Plazo, a.CuotaMensual, a.TotalIntereses)
	}

	prompt := fmt.Sprintf(`Analiza este financiamiento de una motocicleta y genera una explicación clara para el cliente.

DATOS DEL FINANCIAMIENTO:
- Precio de la motocicleta: $%.2f
- Inicial: $%.2f
- Monto a financiar: $%.2f
- Tasa de interés anual: %.2f%%
- Plazo recomendado: %d meses (%.1f años)
- Cuota mensual: $%.2f
- Total de intereses: $%.2f
- Preferencia del cliente: %s

ALTERNATIVAS:
%s
Explica en 3-4 oraciones por qué este plazo es la mejor opción según la preferencia y el balance entre cuota y costo total.`,
		input.Monto, input.Inicial, input.Monto-input.Inicial, input.Tasa,
		top.Plazo, float64(top.Plazo)/12.0, top.CuotaMensual, top.TotalIntereses,
		preferenceDescription(input.Preferencia), alt.String())

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn("failed to generate term explanation", zap.Error(err))
		return fallbackExplanation(top, input.Preferencia)
	}

	return explanation
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "Eres un asesor de financiamiento de un concesionario de motocicletas. Explicas en español, con números concretos y sin tecnicismos innecesarios.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func preferenceDescription(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "minimizar el costo total de intereses"
	case PreferenceMinimizePayment:
		return "minimizar la cuota mensual"
	case PreferenceBalanced:
		return "balance entre cuota mensual y costo total"
	}
	return preference
}

func fallbackExplanation(top domain.TermRecommendation, preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return fmt.Sprintf("Con %d meses el costo total de intereses es de $%.2f, el menor posible dentro de su presupuesto, con una cuota de $%.2f.",
			top.Plazo, top.TotalIntereses, top.CuotaMensual)
	case PreferenceMinimizePayment:
		return fmt.Sprintf("Con %d meses la cuota baja a $%.2f, dejando más margen en su presupuesto mensual; los intereses totales suman $%.2f.",
			top.Plazo, top.CuotaMensual, top.TotalIntereses)
	default:
		return fmt.Sprintf("Con %d meses se logra un balance entre la cuota ($%.2f) y el costo total de intereses ($%.2f).",
			top.Plazo, top.CuotaMensual, top.TotalIntereses)
	}
}
