package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"credimoto/domain"
	"credimoto/repository"
)

// QuoteService guarda cálculos de financiamiento como cotizaciones para un
// cliente y un modelo de motocicleta.
type QuoteService struct {
	loans  *LoanService
	repo   repository.QuoteRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewQuoteService(
	loans *LoanService,
	repo repository.QuoteRepository,
	logger *zap.Logger,
) *QuoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteService{
		loans:  loans,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *QuoteService) Create(ctx context.Context, input domain.QuoteInput) (domain.Quote, error) {
	cliente := strings.TrimSpace(input.Cliente)
	if cliente == "" {
		return domain.Quote{}, fmt.Errorf("%w: el cliente es obligatorio", domain.ErrInvalidInput)
	}
	vehiculo := strings.TrimSpace(input.Vehiculo)
	if vehiculo == "" {
		return domain.Quote{}, fmt.Errorf("%w: el vehículo es obligatorio", domain.ErrInvalidInput)
	}

	params, err := input.Parameters()
	if err != nil {
		return domain.Quote{}, err
	}

	result, err := s.loans.Calculate(ctx, params)
	if err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Quote{
		ID:         uuid.NewString(),
		Cliente:    cliente,
		Vehiculo:   vehiculo,
		Parametros: params,
		Resultado:  result,
		CreadoEn:   s.now().UTC(),
	}

	if err := s.repo.Save(ctx, quote); err != nil {
		return domain.Quote{}, fmt.Errorf("guardar cotización: %w", err)
	}

	s.logger.Info("quote created",
		zap.String("id", quote.ID),
		zap.String("vehiculo", quote.Vehiculo),
		zap.Float64("monto_financiar", params.MontoFinanciar()),
		zap.Int("plazo", params.Plazo),
	)

	return quote, nil
}

func (s *QuoteService) Get(ctx context.Context, id string) (domain.Quote, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// List devuelve las cotizaciones más recientes. limit fuera de rango se ajusta a
// los valores por defecto.
func (s *QuoteService) List(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit <= 0 {
		limit = DefaultQuoteListLimit
	}
	if limit > MaxQuoteListLimit {
		limit = MaxQuoteListLimit
	}
	return s.repo.List(ctx, limit)
}
