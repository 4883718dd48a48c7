// Package seed imports the crew dataset out-of-band. The HTTP API never
// writes; this is the only path that populates the tables.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"crew-service/internal/db"
	"crew-service/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDataset = errors.New("invalid dataset")

type Dataset struct {
	Countries   []model.Country    `yaml:"countries" validate:"dive"`
	Expeditions []model.Expedition `yaml:"expeditions" validate:"dive"`
	Crew        []CrewRecord       `yaml:"crew" validate:"dive"`
}

// CrewRecord is a crew row plus the ids of the expeditions it flew.
type CrewRecord struct {
	model.Crew  `yaml:",inline"`
	Expeditions []int `yaml:"expeditions"`
}

type Stats struct {
	Countries   int
	Expeditions int
	Crew        int
	Assignments int
}

// Load reads and validates a YAML dataset.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks field rules, duplicate ids and dangling references.
func (d *Dataset) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	countries := make(map[int]struct{}, len(d.Countries))
	for _, c := range d.Countries {
		if _, dup := countries[c.ID]; dup {
			return fmt.Errorf("%w: duplicate country id %d", ErrInvalidDataset, c.ID)
		}
		countries[c.ID] = struct{}{}
	}

	expeditions := make(map[int]struct{}, len(d.Expeditions))
	for _, e := range d.Expeditions {
		if _, dup := expeditions[e.ID]; dup {
			return fmt.Errorf("%w: duplicate expedition id %d", ErrInvalidDataset, e.ID)
		}
		expeditions[e.ID] = struct{}{}
	}

	crew := make(map[int]struct{}, len(d.Crew))
	for _, c := range d.Crew {
		if _, dup := crew[c.ID]; dup {
			return fmt.Errorf("%w: duplicate crew id %d", ErrInvalidDataset, c.ID)
		}
		crew[c.ID] = struct{}{}

		if c.CountryID != nil {
			if _, ok := countries[*c.CountryID]; !ok {
				return fmt.Errorf("%w: crew %d references unknown country %d", ErrInvalidDataset, c.ID, *c.CountryID)
			}
		}

		flown := make(map[int]struct{}, len(c.Expeditions))
		for _, id := range c.Expeditions {
			if _, ok := expeditions[id]; !ok {
				return fmt.Errorf("%w: crew %d references unknown expedition %d", ErrInvalidDataset, c.ID, id)
			}
			if _, dup := flown[id]; dup {
				return fmt.Errorf("%w: crew %d lists expedition %d twice", ErrInvalidDataset, c.ID, id)
			}
			flown[id] = struct{}{}
		}
	}

	return nil
}

// Apply creates the schema and inserts d in a single transaction. With reset
// the existing rows are removed first.
func Apply(ctx context.Context, database *bun.DB, d *Dataset, reset bool, logger *slog.Logger) (Stats, error) {
	var stats Stats

	if err := db.RunMigrations(ctx, database, db.Models...); err != nil {
		return stats, err
	}

	err := database.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if reset {
			if err := truncate(ctx, tx); err != nil {
				return err
			}
			logger.InfoContext(ctx, "existing rows removed")
		}

		if len(d.Countries) > 0 {
			if _, err := tx.NewInsert().Model(&d.Countries).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert countries: %w", err)
			}
		}
		stats.Countries = len(d.Countries)

		if len(d.Expeditions) > 0 {
			if _, err := tx.NewInsert().Model(&d.Expeditions).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert expeditions: %w", err)
			}
		}
		stats.Expeditions = len(d.Expeditions)

		crew := make([]model.Crew, 0, len(d.Crew))
		var assignments []model.CrewExpedition
		for _, c := range d.Crew {
			crew = append(crew, c.Crew)
			for _, id := range c.Expeditions {
				assignments = append(assignments, model.CrewExpedition{CrewID: c.ID, ExpeditionID: id})
			}
		}

		if len(crew) > 0 {
			if _, err := tx.NewInsert().Model(&crew).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert crew: %w", err)
			}
		}
		stats.Crew = len(crew)

		if len(assignments) > 0 {
			if _, err := tx.NewInsert().Model(&assignments).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert crew assignments: %w", err)
			}
		}
		stats.Assignments = len(assignments)

		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	logger.InfoContext(ctx, "dataset imported",
		"countries", stats.Countries,
		"expeditions", stats.Expeditions,
		"crew", stats.Crew,
		"assignments", stats.Assignments,
	)
	return stats, nil
}

func truncate(ctx context.Context, tx bun.Tx) error {
	// children first so sqlite, which has no CASCADE, stays consistent
	for i := len(db.Models) - 1; i >= 0; i-- {
		if _, err := tx.NewTruncateTable().Model(db.Models[i]).Cascade().Exec(ctx); err != nil {
			return fmt.Errorf("failed to truncate table: %w", err)
		}
	}
	return nil
}
