package repository

import (
	"context"

	"credimoto/domain"
)

// QuoteRepository persiste cotizaciones. FindByID devuelve domain.ErrQuoteNotFound
// cuando el id no existe. List devuelve las más recientes primero.
type QuoteRepository interface {
	Save(ctx context.Context, quote domain.Quote) error
	FindByID(ctx context.Context, id string) (domain.Quote, error)
	List(ctx context.Context, limit int) ([]domain.Quote, error)
}
