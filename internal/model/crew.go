package model

import (
	"crew-service/internal/derive"

	"github.com/uptrace/bun"
)

// Crew is one astronaut or cosmonaut. Durations are stored as free text
// ("178d", "10h 30m") and only become numbers through Derive.
type Crew struct {
	bun.BaseModel `bun:"table:crew,alias:c"`

	ID             int      `bun:"id,pk" yaml:"id" validate:"required,gt=0"`
	Name           string   `bun:"name" yaml:"name"`
	CountryID      *int     `bun:"country_id" yaml:"country_id"`
	Country        *Country `bun:"rel:belongs-to,join:country_id=id" yaml:"-"`
	Gender         string   `bun:"gender" yaml:"gender"`
	IsAlive        string   `bun:"is_alive" yaml:"is_alive"`
	Specialization string   `bun:"specialization" yaml:"specialization"`
	TimeInSpace    string   `bun:"time_in_space" yaml:"time_in_space"`
	TotalEVAs      *float64 `bun:"total_evas" yaml:"total_evas"`
	TotalEVATime   string   `bun:"total_eva_time" yaml:"total_eva_time"`
	Status         string   `bun:"status" yaml:"status"`
	BirthYear      *int     `bun:"birth_year" yaml:"birth_year"`
	DeathYear      *float64 `bun:"death_year" yaml:"death_year"`
	PhotoURL       string   `bun:"photo_url" yaml:"photo_url"`
	About          string   `bun:"about" yaml:"about"`

	Expeditions []Expedition `bun:"m2m:crew_expeditions,join:Crew=Expedition" yaml:"-"`
}

func (c *Crew) Derive(currentYear int) derive.Fields {
	return derive.Compute(derive.Input{
		BirthYear:    c.BirthYear,
		DeathYear:    c.DeathYear,
		TimeInSpace:  c.TimeInSpace,
		TotalEVAs:    c.TotalEVAs,
		TotalEVATime: c.TotalEVATime,
	}, currentYear)
}
