package repository

import (
	"context"
	"sort"
	"sync"

	"credimoto/domain"
)

// QuoteRepositoryMemory is an in-memory implementation of QuoteRepository.
type QuoteRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Quote
}

// NewQuoteRepositoryMemory creates a new in-memory quote repository.
func NewQuoteRepositoryMemory() *QuoteRepositoryMemory {
	return &QuoteRepositoryMemory{
		data: make(map[string]domain.Quote),
	}
}

// Save stores the quote in memory, replacing any quote with the same ID.
func (r *QuoteRepositoryMemory) Save(_ context.Context, quote domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[quote.ID] = quote
	return nil
}

func (r *QuoteRepositoryMemory) FindByID(_ context.Context, id string) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quote, ok := r.data[id]
	if !ok {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	return quote, nil
}

func (r *QuoteRepositoryMemory) List(_ context.Context, limit int) ([]domain.Quote, error) {
	r.mu.RLock()
	quotes := make([]domain.Quote, 0, len(r.data))
	for _, q := range r.data {
		quotes = append(quotes, q)
	}
	r.mu.RUnlock()

	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].CreadoEn.Equal(quotes[j].CreadoEn) {
			return quotes[i].ID < quotes[j].ID
		}
		return quotes[i].CreadoEn.After(quotes[j].CreadoEn)
	})

	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}
