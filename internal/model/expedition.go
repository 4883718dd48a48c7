package model

import "github.com/uptrace/bun"

// Expedition keeps every mission attribute as the text it was imported with.
type Expedition struct {
	bun.BaseModel `bun:"table:expeditions,alias:e"`

	ID       int    `bun:"id,pk" yaml:"id" validate:"required,gt=0"`
	Began    string `bun:"began" yaml:"began"`
	Ended    string `bun:"ended" yaml:"ended"`
	Duration string `bun:"duration" yaml:"duration"`
	Distance string `bun:"distance" yaml:"distance"`
	Orbits   string `bun:"orbits" yaml:"orbits"`
	CrewSize string `bun:"crew_size" yaml:"crew_size"`

	Crew []Crew `bun:"m2m:crew_expeditions,join:Expedition=Crew" yaml:"-"`
}

// CrewExpedition is the association row between crew and expeditions.
type CrewExpedition struct {
	bun.BaseModel `bun:"table:crew_expeditions,alias:ce"`

	CrewID       int         `bun:"crew_id,pk"`
	Crew         *Crew       `bun:"rel:belongs-to,join:crew_id=id"`
	ExpeditionID int         `bun:"expedition_id,pk"`
	Expedition   *Expedition `bun:"rel:belongs-to,join:expedition_id=id"`
}

// ExpeditionIDs returns the ids of e in their current order.
func ExpeditionIDs(expeditions []Expedition) []int {
	ids := make([]int, 0, len(expeditions))
	for _, e := range expeditions {
		ids = append(ids, e.ID)
	}
	return ids
}
