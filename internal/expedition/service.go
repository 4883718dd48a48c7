package expedition

import (
	"context"
	"errors"
	"fmt"

	"crew-service/internal/derive"
	"crew-service/internal/model"

	"github.com/jonboulle/clockwork"
)

var ErrExpeditionNotFound = errors.New("expedition not found")

type Service interface {
	GetAllExpeditions(ctx context.Context) ([]model.ExpeditionDetail, error)
	GetExpeditionByID(ctx context.Context, id int) (*model.ExpeditionDetail, error)
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

func (s *service) GetAllExpeditions(ctx context.Context) ([]model.ExpeditionDetail, error) {
	expeditions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expeditions: %w", err)
	}

	year := derive.CurrentYear(s.clock)
	details := make([]model.ExpeditionDetail, 0, len(expeditions))
	for i := range expeditions {
		details = append(details, model.NewExpeditionDetail(&expeditions[i], year))
	}
	return details, nil
}

func (s *service) GetExpeditionByID(ctx context.Context, id int) (*model.ExpeditionDetail, error) {
	expedition, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := model.NewExpeditionDetail(expedition, derive.CurrentYear(s.clock))
	return &detail, nil
}
