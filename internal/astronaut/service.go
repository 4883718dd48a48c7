package astronaut

import (
	"context"
	"errors"
	"fmt"

	"crew-service/internal/derive"
	"crew-service/internal/model"

	"github.com/jonboulle/clockwork"
)

var (
	ErrAstronautNotFound = errors.New("astronaut not found")
	ErrInvalidInput      = errors.New("invalid input")
)

type Service interface {
	ListAstronauts(ctx context.Context, q ListQuery) ([]model.CrewDetail, error)
	GetAstronautByID(ctx context.Context, id int) (*model.AstronautDetail, error)
	GetMetadata(ctx context.Context) (*Metadata, error)
}

type service struct {
	repo  Repository
	clock clockwork.Clock
}

func NewService(repo Repository, clock clockwork.Clock) Service {
	return &service{
		repo:  repo,
		clock: clock,
	}
}

// ListAstronauts runs the equality filters in storage, then applies the
// derived-field bounds and the sort in memory.
func (s *service) ListAstronauts(ctx context.Context, q ListQuery) ([]model.CrewDetail, error) {
	if q.SortBy == "" {
		q.SortBy = SortByName
	}
	if q.Order == "" {
		q.Order = OrderAsc
	}
	if q.SortBy != SortByName && q.SortBy != SortByAge {
		return nil, fmt.Errorf("%w: sort_by must be name or age", ErrInvalidInput)
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidInput)
	}

	crew, err := s.repo.List(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}

	year := derive.CurrentYear(s.clock)
	rows := make([]candidate, 0, len(crew))
	for i := range crew {
		fields := crew[i].Derive(year)
		if q.matches(fields) {
			rows = append(rows, candidate{crew: &crew[i], fields: fields})
		}
	}

	sortCandidates(rows, q.SortBy, q.Order)

	details := make([]model.CrewDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, model.NewCrewDetail(row.crew, year))
	}
	return details, nil
}

func (s *service) GetAstronautByID(ctx context.Context, id int) (*model.AstronautDetail, error) {
	crew, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := model.NewAstronautDetail(crew, derive.CurrentYear(s.clock))
	return &detail, nil
}

func (s *service) GetMetadata(ctx context.Context) (*Metadata, error) {
	crew, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}

	meta := Aggregate(crew, derive.CurrentYear(s.clock))
	return &meta, nil
}
