package expedition

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crew-service/internal/metrics"
	"crew-service/internal/model"

	"github.com/uptrace/bun"
)

type Repository interface {
	// GetAll returns every expedition, newest id first, with full rosters.
	GetAll(ctx context.Context) ([]model.Expedition, error)
	GetByID(ctx context.Context, id int) (*model.Expedition, error)
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

func (r *repository) GetAll(ctx context.Context) ([]model.Expedition, error) {
	start := time.Now()
	expeditions := make([]model.Expedition, 0)
	err := model.SelectExpeditions(r.db, &expeditions).Order("e.id DESC").Scan(ctx)
	if err == nil {
		err = model.HydrateRosters(ctx, r.db, expeditions)
	}

	r.metrics.Database.RecordQuery(ctx, "select", "expeditions", time.Since(start), err)

	return expeditions, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*model.Expedition, error) {
	start := time.Now()
	expeditions := make([]model.Expedition, 1)
	err := model.SelectExpeditions(r.db, &expeditions[0]).Where("e.id = ?", id).Scan(ctx)
	if err == nil {
		err = model.HydrateRosters(ctx, r.db, expeditions)
	}

	r.metrics.Database.RecordQuery(ctx, "select", "expeditions", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpeditionNotFound
		}
		return nil, err
	}
	return &expeditions[0], nil
}
