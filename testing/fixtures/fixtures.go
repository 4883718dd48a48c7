// Package fixtures holds a small crew dataset shared by repository, service
// and handler tests. Ages are computed against Year.
package fixtures

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"crew-service/internal/model"
	"crew-service/internal/seed"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

const Year = 2025

// Clock is fixed inside Year.
func Clock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(Year, time.June, 1, 12, 0, 0, 0, time.UTC))
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// Dataset returns a fresh copy of the fixture rows.
//
//	id  name               country  born  died  days  evas  eva min  expeditions
//	1   Yuri Gidzenko      RU       1962  -     329   2     223      1
//	2   William Shepherd   US       1949  -     159   4     1189     1
//	3   Sergei Krikalev    RU       1958  -     803   8     2486     1, 2
//	4   Susan Helms        US       1958  -     211   1     536      2
//	5   Koichi Wakata      JP       1963  -     500   -     0        3
//	6   Alexei Leonov      RU       1934  2019  7     1     12       -
//	7   Unknown Cosmonaut  -        -     -     0     -     0        3
func Dataset() *seed.Dataset {
	return &seed.Dataset{
		Countries: []model.Country{
			{ID: 1, Name: "Russia", FlagURL: "https://flags.example/ru.png"},
			{ID: 2, Name: "USA", FlagURL: "https://flags.example/us.png"},
			{ID: 3, Name: "Japan", FlagURL: "https://flags.example/jp.png"},
		},
		Expeditions: []model.Expedition{
			{ID: 1, Began: "2000-10-31", Ended: "2001-03-21", Duration: "136d 17h", Distance: "", Orbits: "2171", CrewSize: "3"},
			{ID: 2, Began: "2001-03-08", Ended: "2001-08-22", Duration: "163d 7h", Distance: "", Orbits: "2600", CrewSize: "3"},
			{ID: 3, Began: "2009-03-15", Ended: "2009-07-31", Duration: "138d 18h", Distance: "", Orbits: "2179", CrewSize: "2"},
		},
		Crew: []seed.CrewRecord{
			{Crew: model.Crew{ID: 1, Name: "Yuri Gidzenko", CountryID: intPtr(1), Gender: "Male", IsAlive: "Yes", Specialization: "Commander",
				TimeInSpace: "329d 22h", TotalEVAs: floatPtr(2), TotalEVATime: "3h 43m", Status: "Retired", BirthYear: intPtr(1962)},
				Expeditions: []int{1}},
			{Crew: model.Crew{ID: 2, Name: "William Shepherd", CountryID: intPtr(2), Gender: "Male", IsAlive: "Yes", Specialization: "Commander",
				TimeInSpace: "159d 7h", TotalEVAs: floatPtr(4), TotalEVATime: "19h 49m", Status: "Retired", BirthYear: intPtr(1949)},
				Expeditions: []int{1}},
			{Crew: model.Crew{ID: 3, Name: "Sergei Krikalev", CountryID: intPtr(1), Gender: "Male", IsAlive: "Yes", Specialization: "Flight Engineer",
				TimeInSpace: "803d 9h", TotalEVAs: floatPtr(8), TotalEVATime: "41h 26m", Status: "Retired", BirthYear: intPtr(1958)},
				Expeditions: []int{2, 1}},
			{Crew: model.Crew{ID: 4, Name: "Susan Helms", CountryID: intPtr(2), Gender: "Female", IsAlive: "Yes", Specialization: "Flight Engineer",
				TimeInSpace: "211d", TotalEVAs: floatPtr(1), TotalEVATime: "8h 56m", Status: "Retired", BirthYear: intPtr(1958)},
				Expeditions: []int{2}},
			{Crew: model.Crew{ID: 5, Name: "Koichi Wakata", CountryID: intPtr(3), Gender: "Male", IsAlive: "Yes", Specialization: "Flight Engineer",
				TimeInSpace: "500 d", Status: "Active", BirthYear: intPtr(1963)},
				Expeditions: []int{3}},
			{Crew: model.Crew{ID: 6, Name: "Alexei Leonov", CountryID: intPtr(1), Gender: "Male", IsAlive: "No", Specialization: "Pilot",
				TimeInSpace: "7d", TotalEVAs: floatPtr(1), TotalEVATime: "12m", Status: "Deceased", BirthYear: intPtr(1934), DeathYear: floatPtr(2019)}},
			{Crew: model.Crew{ID: 7, Name: "Unknown Cosmonaut", Gender: "Male", IsAlive: "Yes", Specialization: "Flight Engineer",
				TimeInSpace: "abc", Status: "Active"},
				Expeditions: []int{3}},
		},
	}
}

// Load imports Dataset into database.
func Load(t *testing.T, database *bun.DB) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := seed.Apply(context.Background(), database, Dataset(), true, logger)
	require.NoError(t, err)
}
