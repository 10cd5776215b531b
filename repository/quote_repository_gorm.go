package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"credimoto/domain"
)

// cotizacionRecord es la fila de la tabla cotizaciones.
type cotizacionRecord struct {
	ID        string            `gorm:"primaryKey;size:36"`
	Cliente   string            `gorm:"size:255;not null;index"`
	Vehiculo  string            `gorm:"size:255;not null"`
	Monto     float64           `gorm:"not null"`
	Inicial   float64           `gorm:"not null;default:0"`
	Tasa      float64           `gorm:"not null;default:0"`
	Plazo     int               `gorm:"not null"`
	Cuota     float64           `gorm:"not null"`
	Resultado domain.LoanResult `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt time.Time         `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (cotizacionRecord) TableName() string {
	return "cotizaciones"
}

func newCotizacionRecord(q domain.Quote) cotizacionRecord {
	return cotizacionRecord{
		ID:        q.ID,
		Cliente:   q.Cliente,
		Vehiculo:  q.Vehiculo,
		Monto:     q.Parametros.Monto,
		Inicial:   q.Parametros.Inicial,
		Tasa:      q.Parametros.Tasa,
		Plazo:     q.Parametros.Plazo,
		Cuota:     q.Resultado.CuotaMensual,
		Resultado: q.Resultado,
		CreatedAt: q.CreadoEn,
	}
}

func (r cotizacionRecord) toDomain() domain.Quote {
	return domain.Quote{
		ID:       r.ID,
		Cliente:  r.Cliente,
		Vehiculo: r.Vehiculo,
		Parametros: domain.LoanParameters{
			Monto:   r.Monto,
			Inicial: r.Inicial,
			Tasa:    r.Tasa,
			Plazo:   r.Plazo,
		},
		Resultado: r.Resultado,
		CreadoEn:  r.CreatedAt,
	}
}

// QuoteRepositoryGorm guarda cotizaciones en PostgreSQL.
type QuoteRepositoryGorm struct {
	DB *gorm.DB
}

func NewQuoteRepositoryGorm(db *gorm.DB) *QuoteRepositoryGorm {
	return &QuoteRepositoryGorm{DB: db}
}

// Migrate crea o actualiza la tabla de cotizaciones.
func (r *QuoteRepositoryGorm) Migrate() error {
	return r.DB.AutoMigrate(&cotizacionRecord{})
}

func (r *QuoteRepositoryGorm) Save(ctx context.Context, quote domain.Quote) error {
	record := newCotizacionRecord(quote)
	return r.DB.WithContext(ctx).Save(&record).Error
}

func (r *QuoteRepositoryGorm) FindByID(ctx context.Context, id string) (domain.Quote, error) {
	var record cotizacionRecord
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Quote{}, domain.ErrQuoteNotFound
	}
	if err != nil {
		return domain.Quote{}, err
	}
	return record.toDomain(), nil
}

func (r *QuoteRepositoryGorm) List(ctx context.Context, limit int) ([]domain.Quote, error) {
	var records []cotizacionRecord
	query := r.DB.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	quotes := make([]domain.Quote, 0, len(records))
	for _, rec := range records {
		quotes = append(quotes, rec.toDomain())
	}
	return quotes, nil
}
