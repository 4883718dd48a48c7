package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"crew-service/internal/model"
	"crew-service/internal/seed"
	"crew-service/testing/fixtures"
	"crew-service/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := []byte(`
countries:
  - {id: 1, name: Russia, flag_url: ru.png}
expeditions:
  - {id: 1, began: "2000-10-31", duration: 136d}
crew:
  - id: 1
    name: Sergei Krikalev
    country_id: 1
    time_in_space: 803d
    total_evas: 8
    birth_year: 1958
    expeditions: [1]
  - id: 2
    name: Unknown
`)
		d, err := seed.Parse(raw)
		require.NoError(t, err)

		require.Len(t, d.Crew, 2)
		assert.Equal(t, "Sergei Krikalev", d.Crew[0].Name)
		assert.Equal(t, []int{1}, d.Crew[0].Expeditions)
		require.NotNil(t, d.Crew[0].TotalEVAs)
		assert.Equal(t, 8.0, *d.Crew[0].TotalEVAs)
		assert.Nil(t, d.Crew[1].CountryID)
		assert.Nil(t, d.Crew[1].BirthYear)
		assert.Equal(t, "136d", d.Expeditions[0].Duration)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		_, err := seed.Parse([]byte("countries: ["))
		assert.Error(t, err)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"MissingID", "countries:\n  - {name: Nowhere}\n"},
		{"DuplicateCountry", "countries:\n  - {id: 1}\n  - {id: 1}\n"},
		{"DuplicateExpedition", "expeditions:\n  - {id: 2}\n  - {id: 2}\n"},
		{"DuplicateCrew", "crew:\n  - {id: 3}\n  - {id: 3}\n"},
		{"UnknownCountry", "crew:\n  - {id: 1, country_id: 9}\n"},
		{"UnknownExpedition", "crew:\n  - {id: 1, expeditions: [4]}\n"},
		{"RepeatedExpedition", "expeditions:\n  - {id: 4}\ncrew:\n  - {id: 1, expeditions: [4, 4]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, seed.ErrInvalidDataset)
		})
	}
}

func TestLoad_BundledDataset(t *testing.T) {
	d, err := seed.Load("../../data/seed.yaml")
	require.NoError(t, err)

	assert.NotEmpty(t, d.Countries)
	assert.NotEmpty(t, d.Expeditions)
	assert.NotEmpty(t, d.Crew)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := seed.Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func assertImported(t *testing.T, database bun.IDB) {
	t.Helper()
	ctx := context.Background()

	countries, err := database.NewSelect().Model((*model.Country)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, countries)

	crew, err := database.NewSelect().Model((*model.Crew)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, crew)

	assignments, err := database.NewSelect().Model((*model.CrewExpedition)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, assignments)
}

func TestApply_SQLite(t *testing.T) {
	database := testdb.NewSQLite(t)
	ctx := context.Background()

	t.Run("Import", func(t *testing.T) {
		stats, err := seed.Apply(ctx, database, fixtures.Dataset(), false, discardLogger())
		require.NoError(t, err)

		assert.Equal(t, seed.Stats{Countries: 3, Expeditions: 3, Crew: 7, Assignments: 7}, stats)
		assertImported(t, database)
	})

	t.Run("ImportTwiceWithoutReset", func(t *testing.T) {
		_, err := seed.Apply(ctx, database, fixtures.Dataset(), false, discardLogger())
		assert.Error(t, err)
		assertImported(t, database)
	})

	t.Run("ImportWithReset", func(t *testing.T) {
		_, err := seed.Apply(ctx, database, fixtures.Dataset(), true, discardLogger())
		require.NoError(t, err)
		assertImported(t, database)
	})
}

func TestApply_Postgres(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t)
	testdb.CleanupTables(t, pgContainer.DB)

	ctx := context.Background()

	_, err := seed.Apply(ctx, pgContainer.DB, fixtures.Dataset(), false, discardLogger())
	require.NoError(t, err)
	assertImported(t, pgContainer.DB)

	_, err = seed.Apply(ctx, pgContainer.DB, fixtures.Dataset(), true, discardLogger())
	require.NoError(t, err)
	assertImported(t, pgContainer.DB)
}
