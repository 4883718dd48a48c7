package astronaut

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crew-service/internal/metrics"
	"crew-service/internal/model"

	"github.com/uptrace/bun"
)

// Filter holds the equality predicates that can run inside the database.
// Zero values mean "no filter".
type Filter struct {
	Search    string
	Gender    string
	Status    string
	CountryID *int
}

type Repository interface {
	// List returns crew matching f in primary key order, with country and
	// expedition ids loaded.
	List(ctx context.Context, f Filter) ([]model.Crew, error)
	// GetByID returns one crew member whose expeditions carry full rosters.
	GetByID(ctx context.Context, id int) (*model.Crew, error)
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

func (r *repository) List(ctx context.Context, f Filter) ([]model.Crew, error) {
	start := time.Now()
	crew := make([]model.Crew, 0)

	q := model.SelectCrew(r.db, &crew)
	if f.Search != "" {
		q = q.Where("c.name LIKE ?", "%"+f.Search+"%")
	}
	if f.Gender != "" {
		q = q.Where("c.gender = ?", f.Gender)
	}
	if f.Status != "" {
		q = q.Where("c.status = ?", f.Status)
	}
	if f.CountryID != nil {
		q = q.Where("c.country_id = ?", *f.CountryID)
	}
	err := q.Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "crew", time.Since(start), err)

	return crew, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*model.Crew, error) {
	start := time.Now()
	crew := new(model.Crew)
	err := model.SelectCrew(r.db, crew).Where("c.id = ?", id).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "crew", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAstronautNotFound
		}
		return nil, err
	}

	if len(crew.Expeditions) == 0 {
		return crew, nil
	}

	start = time.Now()
	expeditions := make([]model.Expedition, 0, len(crew.Expeditions))
	err = model.SelectExpeditions(r.db, &expeditions).
		Where("e.id IN (?)", bun.In(model.ExpeditionIDs(crew.Expeditions))).
		Order("e.id ASC").
		Scan(ctx)
	if err == nil {
		err = model.HydrateRosters(ctx, r.db, expeditions)
	}

	r.metrics.Database.RecordQuery(ctx, "select", "expeditions", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	crew.Expeditions = expeditions
	return crew, nil
}
