package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// SelectCrew starts a crew query that joins the country and loads the
// expedition ids of every row. Rows come back in primary key order.
func SelectCrew(db bun.IDB, dest interface{}) *bun.SelectQuery {
	return db.NewSelect().
		Model(dest).
		Relation("Country").
		Relation("Expeditions", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("e.id ASC")
		}).
		Order("c.id ASC")
}

// SelectExpeditions starts an expedition query that loads the bare roster of
// every row, crew ordered by id.
func SelectExpeditions(db bun.IDB, dest interface{}) *bun.SelectQuery {
	return db.NewSelect().
		Model(dest).
		Relation("Crew", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("c.id ASC")
		})
}

// HydrateRosters replaces the bare roster of each expedition with fully
// loaded crew (country and expedition ids) so they can be projected.
func HydrateRosters(ctx context.Context, db bun.IDB, expeditions []Expedition) error {
	seen := make(map[int]struct{})
	var ids []int
	for _, e := range expeditions {
		for _, c := range e.Crew {
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var crew []Crew
	if err := SelectCrew(db, &crew).Where("c.id IN (?)", bun.In(ids)).Scan(ctx); err != nil {
		return fmt.Errorf("failed to load expedition crew: %w", err)
	}

	byID := make(map[int]Crew, len(crew))
	for _, c := range crew {
		byID[c.ID] = c
	}
	for i := range expeditions {
		for j, c := range expeditions[i].Crew {
			if full, ok := byID[c.ID]; ok {
				expeditions[i].Crew[j] = full
			}
		}
	}
	return nil
}
