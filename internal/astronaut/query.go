package astronaut

import (
	"cmp"
	"slices"
	"strings"

	"crew-service/internal/derive"
	"crew-service/internal/model"
)

const (
	SortByName = "name"
	SortByAge  = "age"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery is a parsed /api/astronauts request. Nil bounds are not applied;
// every bound is inclusive.
type ListQuery struct {
	Search    string
	CountryID *int
	Gender    string
	Status    string

	MinEVAs    *float64
	MaxEVAs    *float64
	MinAge     *int
	MaxAge     *int
	MinTime    *int
	MaxTime    *int
	MinEVATime *int
	MaxEVATime *int

	SortBy string `validate:"omitempty,oneof=name age"`
	Order  string `validate:"omitempty,oneof=asc desc"`
}

func (q ListQuery) filter() Filter {
	return Filter{
		Search:    q.Search,
		Gender:    q.Gender,
		Status:    q.Status,
		CountryID: q.CountryID,
	}
}

// matches applies the range bounds that need derived values. A crew member
// without a known age fails any age bound.
func (q ListQuery) matches(f derive.Fields) bool {
	if q.MinAge != nil || q.MaxAge != nil {
		if f.Age == nil {
			return false
		}
		if !within(*f.Age, q.MinAge, q.MaxAge) {
			return false
		}
	}
	return within(f.DaysInSpace, q.MinTime, q.MaxTime) &&
		within(f.EVACount, q.MinEVAs, q.MaxEVAs) &&
		within(f.EVAMinutes, q.MinEVATime, q.MaxEVATime)
}

func within[T cmp.Ordered](v T, lo, hi *T) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

type candidate struct {
	crew   *model.Crew
	fields derive.Fields
}

// sortCandidates orders rows in place. The sort is stable, so ties keep the
// primary key order they were loaded in, for both directions.
func sortCandidates(rows []candidate, sortBy, order string) {
	var compare func(a, b candidate) int
	switch sortBy {
	case SortByAge:
		compare = func(a, b candidate) int {
			return cmp.Compare(a.fields.AgeOrDefault(-1), b.fields.AgeOrDefault(-1))
		}
	default:
		compare = func(a, b candidate) int {
			return strings.Compare(a.crew.Name, b.crew.Name)
		}
	}

	if order == OrderDesc {
		slices.SortStableFunc(rows, func(a, b candidate) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(rows, compare)
}
