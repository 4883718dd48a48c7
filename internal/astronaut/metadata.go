package astronaut

import (
	"slices"

	"crew-service/internal/model"
)

type Range[T int | float64] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// Metadata carries the slider bounds for the astronaut filters.
type Metadata struct {
	TotalCount  int            `json:"total_count"`
	Age         Range[int]     `json:"age"`
	TimeInSpace Range[int]     `json:"time_in_space"`
	EVAs        Range[float64] `json:"evas"`
	EVATime     Range[int]     `json:"eva_time"`
}

// Fallback bounds for an empty dataset. They are UI defaults, not extrema.
var (
	DefaultAgeRange         = Range[int]{Min: 20, Max: 80}
	DefaultTimeInSpaceRange = Range[int]{Min: 0, Max: 1000}
	DefaultEVAsRange        = Range[float64]{Min: 0, Max: 20}
	DefaultEVATimeRange     = Range[int]{Min: 0, Max: 300}
)

// Aggregate computes Metadata over the whole crew collection. Crew without a
// birth year do not contribute to the age range.
func Aggregate(crew []model.Crew, currentYear int) Metadata {
	var (
		ages    []int
		days    = make([]int, 0, len(crew))
		evas    = make([]float64, 0, len(crew))
		evaTime = make([]int, 0, len(crew))
	)

	for i := range crew {
		f := crew[i].Derive(currentYear)
		if f.Age != nil {
			ages = append(ages, *f.Age)
		}
		days = append(days, f.DaysInSpace)
		evas = append(evas, f.EVACount)
		evaTime = append(evaTime, f.EVAMinutes)
	}

	return Metadata{
		TotalCount:  len(crew),
		Age:         rangeOf(ages, DefaultAgeRange),
		TimeInSpace: rangeOf(days, DefaultTimeInSpaceRange),
		EVAs:        rangeOf(evas, DefaultEVAsRange),
		EVATime:     rangeOf(evaTime, DefaultEVATimeRange),
	}
}

func rangeOf[T int | float64](values []T, def Range[T]) Range[T] {
	if len(values) == 0 {
		return def
	}
	return Range[T]{Min: slices.Min(values), Max: slices.Max(values)}
}
