package country

import (
	"context"
	"fmt"

	"crew-service/internal/model"
)

type Service interface {
	GetAllCountries(ctx context.Context) ([]model.Country, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetAllCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}
