package astronaut_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"crew-service/internal/astronaut"
	"crew-service/internal/metrics"
	"crew-service/internal/model"
	"crew-service/testing/fixtures"
	"crew-service/testing/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type recordingPublisher struct {
	mu    sync.Mutex
	views []int
}

func (p *recordingPublisher) PublishView(_ context.Context, _ string, id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, id)
}

func newRouter(t *testing.T, database bun.IDB, publisher *recordingPublisher) http.Handler {
	t.Helper()

	mockMetrics := metrics.NewMock()
	repo := astronaut.NewRepository(database, mockMetrics)
	service := astronaut.NewService(repo, fixtures.Clock())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := astronaut.NewHandler(service, publisher, logger, mockMetrics)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func listIDs(t *testing.T, router http.Handler, target string) []int {
	t.Helper()

	w := get(t, router, target)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var crew []model.CrewDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &crew))

	ids := make([]int, 0, len(crew))
	for _, c := range crew {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAstronautHandler(t *testing.T) {
	database := testdb.NewSQLite(t)
	fixtures.Load(t, database)

	publisher := &recordingPublisher{}
	router := newRouter(t, database, publisher)

	t.Run("List_DefaultsToNameAscending", func(t *testing.T) {
		assert.Equal(t, []int{6, 5, 3, 4, 7, 2, 1}, listIDs(t, router, "/astronauts"))
	})

	t.Run("List_NameDescending", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 7, 4, 3, 5, 6}, listIDs(t, router, "/astronauts?order=desc"))
	})

	t.Run("List_AgeAscending_UnknownAgeFirst", func(t *testing.T) {
		assert.Equal(t, []int{7, 5, 1, 3, 4, 2, 6}, listIDs(t, router, "/astronauts?sort_by=age"))
	})

	t.Run("List_AgeDescending_TiesKeepIDOrder", func(t *testing.T) {
		assert.Equal(t, []int{6, 2, 3, 4, 1, 5, 7}, listIDs(t, router, "/astronauts?sort_by=age&order=desc"))
	})

	t.Run("List_AgeRangeIsInclusive", func(t *testing.T) {
		ids := listIDs(t, router, "/astronauts?min_age=60&max_age=70")
		assert.Equal(t, []int{5, 3, 4, 1}, ids)

		ids = listIDs(t, router, "/astronauts?min_age=63&max_age=63")
		assert.Equal(t, []int{1}, ids)
	})

	t.Run("List_AgeBoundExcludesUnknownAge", func(t *testing.T) {
		ids := listIDs(t, router, "/astronauts?max_age=200")
		assert.NotContains(t, ids, 7)
		assert.Len(t, ids, 6)
	})

	t.Run("List_DeathYearFreezesAge", func(t *testing.T) {
		assert.Equal(t, []int{6}, listIDs(t, router, "/astronauts?min_age=85&max_age=85"))
	})

	t.Run("List_EqualityFilters", func(t *testing.T) {
		assert.Equal(t, []int{4}, listIDs(t, router, "/astronauts?gender=Female"))
		assert.Equal(t, []int{5, 7}, listIDs(t, router, "/astronauts?status=Active"))
		assert.Equal(t, []int{6, 3, 1}, listIDs(t, router, "/astronauts?country_id=1"))
		assert.Equal(t, []int{3, 4}, listIDs(t, router, "/astronauts?search=S&gender=&country_id=&min_time=200&max_time=900&min_evas=1"))
	})

	t.Run("List_SearchIsSubstring", func(t *testing.T) {
		assert.Equal(t, []int{3}, listIDs(t, router, "/astronauts?search=Krik"))
		assert.Empty(t, listIDs(t, router, "/astronauts?search=nobody"))
	})

	t.Run("List_DerivedRanges", func(t *testing.T) {
		assert.Equal(t, []int{5, 3}, listIDs(t, router, "/astronauts?min_time=500"))
		assert.Equal(t, []int{6}, listIDs(t, router, "/astronauts?max_eva_time=12&min_eva_time=1"))
		assert.Equal(t, []int{5, 7}, listIDs(t, router, "/astronauts?max_evas=0"))
		assert.Equal(t, []int{7}, listIDs(t, router, "/astronauts?max_time=0"))
	})

	t.Run("List_MalformedNumbersAreIgnored", func(t *testing.T) {
		assert.Len(t, listIDs(t, router, "/astronauts?min_age=abc&max_evas=lots"), 7)
	})

	t.Run("List_NumbersMayCarryWhitespace", func(t *testing.T) {
		assert.Equal(t, []int{1}, listIDs(t, router, "/astronauts?min_age=%2063&max_age=63%20"))
	})

	t.Run("List_InvalidSortIsRejected", func(t *testing.T) {
		w := get(t, router, "/astronauts?sort_by=height")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = get(t, router, "/astronauts?order=sideways")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List_ProjectsCrewDetail", func(t *testing.T) {
		w := get(t, router, "/astronauts?search=Unknown")
		require.Equal(t, http.StatusOK, w.Code)

		var raw []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Len(t, raw, 1)

		assert.Nil(t, raw[0]["country"])
		assert.Nil(t, raw[0]["country_flag"])
		assert.Nil(t, raw[0]["age"])
		assert.Nil(t, raw[0]["birth_year"])
		assert.Nil(t, raw[0]["total_evas"])
		assert.Equal(t, []interface{}{float64(3)}, raw[0]["expeditions"])
		assert.NotContains(t, raw[0], "expeditions_details")
	})

	t.Run("List_IsDeterministic", func(t *testing.T) {
		first := get(t, router, "/astronauts?sort_by=age").Body.String()
		second := get(t, router, "/astronauts?sort_by=age").Body.String()
		assert.Equal(t, first, second)
	})

	t.Run("Get_Success", func(t *testing.T) {
		w := get(t, router, "/astronauts/3")
		require.Equal(t, http.StatusOK, w.Code)

		var detail model.AstronautDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))

		assert.Equal(t, "Sergei Krikalev", detail.Name)
		require.NotNil(t, detail.Country)
		assert.Equal(t, "Russia", *detail.Country)
		require.NotNil(t, detail.Age)
		assert.Equal(t, 67, *detail.Age)
		assert.Equal(t, []int{1, 2}, detail.Expeditions)

		require.Len(t, detail.ExpeditionsDetails, 2)
		assert.Equal(t, 1, detail.ExpeditionsDetails[0].ID)
		assert.Equal(t, 2, detail.ExpeditionsDetails[1].ID)

		roster := detail.ExpeditionsDetails[0].Crew
		require.Len(t, roster, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{roster[0].ID, roster[1].ID, roster[2].ID})
		assert.Equal(t, []int{1, 2}, roster[2].Expeditions)

		assert.Contains(t, publisher.views, 3)
	})

	t.Run("Get_WithoutExpeditions", func(t *testing.T) {
		w := get(t, router, "/astronauts/6")
		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.Equal(t, []interface{}{}, raw["expeditions"])
		assert.Equal(t, []interface{}{}, raw["expeditions_details"])
		assert.EqualValues(t, 85, raw["age"])
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		w := get(t, router, "/astronauts/999")
		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Astronaut not found", response["error"])
		assert.NotContains(t, publisher.views, 999)
	})

	t.Run("Get_OverflowingIDIsNotFound", func(t *testing.T) {
		w := get(t, router, "/astronauts/99999999999999999999")
		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Astronaut not found", response["error"])
	})

	t.Run("Get_NonNumericIDIsNotRouted", func(t *testing.T) {
		w := get(t, router, "/astronauts/abc")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Metadata_Success", func(t *testing.T) {
		w := get(t, router, "/metadata")
		require.Equal(t, http.StatusOK, w.Code)

		var meta astronaut.Metadata
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))

		assert.Equal(t, 7, meta.TotalCount)
		assert.Equal(t, astronaut.Range[int]{Min: 62, Max: 85}, meta.Age)
		assert.Equal(t, astronaut.Range[int]{Min: 0, Max: 803}, meta.TimeInSpace)
		assert.Equal(t, astronaut.Range[float64]{Min: 0, Max: 8}, meta.EVAs)
		assert.Equal(t, astronaut.Range[int]{Min: 0, Max: 2486}, meta.EVATime)
	})
}

func TestAstronautHandler_EmptyDatabase(t *testing.T) {
	database := testdb.NewSQLite(t)
	router := newRouter(t, database, &recordingPublisher{})

	t.Run("Metadata_Defaults", func(t *testing.T) {
		w := get(t, router, "/metadata")
		require.Equal(t, http.StatusOK, w.Code)

		var meta astronaut.Metadata
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))

		assert.Equal(t, 0, meta.TotalCount)
		assert.Equal(t, astronaut.DefaultAgeRange, meta.Age)
		assert.Equal(t, astronaut.DefaultTimeInSpaceRange, meta.TimeInSpace)
		assert.Equal(t, astronaut.DefaultEVAsRange, meta.EVAs)
		assert.Equal(t, astronaut.DefaultEVATimeRange, meta.EVATime)
	})

	t.Run("List_EmptyArray", func(t *testing.T) {
		w := get(t, router, "/astronauts")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}
