package httputil_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"crew-service/internal/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httputil.RespondWithJSON(w, http.StatusOK, map[string]int{"total_count": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total_count":2}`, w.Body.String())
}

func TestRespondWithJSONUnencodable(t *testing.T) {
	w := httptest.NewRecorder()
	httputil.RespondWithJSON(w, http.StatusOK, math.Inf(1))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	httputil.RespondWithError(w, http.StatusNotFound, "Astronaut not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Astronaut not found"}`, w.Body.String())
}

func TestQueryParamsTrimWhitespace(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/astronauts?min_age=%2030&max_evas=2.5%20&max_age=%20%20", nil)

	minAge := httputil.QueryInt(r, "min_age")
	require.NotNil(t, minAge)
	assert.Equal(t, 30, *minAge)

	maxEVAs := httputil.QueryFloat(r, "max_evas")
	require.NotNil(t, maxEVAs)
	assert.Equal(t, 2.5, *maxEVAs)

	assert.Nil(t, httputil.QueryInt(r, "max_age"))
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/astronauts?min_age=30&max_age=4x&min_evas=2.5&max_evas=&min_time=7.5", nil)

	minAge := httputil.QueryInt(r, "min_age")
	require.NotNil(t, minAge)
	assert.Equal(t, 30, *minAge)

	assert.Nil(t, httputil.QueryInt(r, "max_age"))
	assert.Nil(t, httputil.QueryInt(r, "min_time"))
	assert.Nil(t, httputil.QueryInt(r, "missing"))

	minEVAs := httputil.QueryFloat(r, "min_evas")
	require.NotNil(t, minEVAs)
	assert.Equal(t, 2.5, *minEVAs)
	assert.Nil(t, httputil.QueryFloat(r, "max_evas"))
}
