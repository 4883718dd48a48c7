package country

import (
	"context"
	"time"

	"crew-service/internal/metrics"
	"crew-service/internal/model"

	"github.com/uptrace/bun"
)

type Repository interface {
	GetAll(ctx context.Context) ([]model.Country, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) GetAll(ctx context.Context) ([]model.Country, error) {
	start := time.Now()
	countries := make([]model.Country, 0)
	err := r.db.NewSelect().Model(&countries).Order("co.id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "countries", time.Since(start), err)

	return countries, err
}
