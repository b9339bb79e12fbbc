package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/divebot/internal/database"
	"github.com/ngmaloney/divebot/internal/dive"
	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/guides"
	"github.com/ngmaloney/divebot/internal/models"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/stations"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeReports struct {
	result  dive.Result
	weather string
	err     error
}

func (f *fakeReports) Report(_ context.Context, _ string) (dive.Result, error) {
	return f.result, f.err
}

func (f *fakeReports) Weather(_ context.Context, _ string) (string, error) {
	return f.weather, f.err
}

type staticCatalog struct{ c *stations.Catalog }

func (s staticCatalog) Current() *stations.Catalog { return s.c }

func testCatalog() *stations.Catalog {
	return stations.NewCatalog(
		[]models.Station{{ID: "8443970", Name: "Boston", State: "MA", Coordinate: models.Coordinate{Latitude: 42.3539, Longitude: -71.0503}}},
		nil,
	)
}

func newRouter(t *testing.T, reports ReportService, catalog CatalogSource) *gin.Engine {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "divebot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	guideSvc := guides.NewService(guides.NewRepository(db), nil, nil, nil, nil)
	return SetupRouter(Options{Reports: reports, Guides: guideSvc, Catalog: catalog})
}

func do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetReport(t *testing.T) {
	catalog := testCatalog()
	station, _ := catalog.Lookup("8443970")
	reports := &fakeReports{result: dive.Result{Text: "DiveBot Weather Report for Boston, MA", Station: station, DistanceKm: 1.2}}
	router := newRouter(t, reports, staticCatalog{catalog})

	w := do(router, http.MethodGet, "/v1/report?location=Boston,+MA", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp reportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Boston, MA", resp.Location)
	assert.Equal(t, "DiveBot Weather Report for Boston, MA", resp.Text)
	assert.Equal(t, "8443970", resp.Station.ID)
	assert.Equal(t, "primary_oceanographic", resp.Station.Category)
	assert.Equal(t, 1.2, resp.DistanceKm)
}

func TestGetReport_MissingLocation(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{testCatalog()})

	w := do(router, http.MethodGet, "/v1/report", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad location", geocoding.ErrUnrecognizedLocation, http.StatusBadRequest, "Couldn't find the location: Atlantis."},
		{"geocode", geocoding.ErrGeocode, http.StatusNotFound, "Couldn't find the location: Atlantis."},
		{"no station", stations.ErrNoStationFound, http.StatusNotFound, "Couldn't find a NOAA station near Atlantis for sea data."},
		{"tide", noaa.ErrTideService, http.StatusBadGateway, "Couldn't fetch tide data for Atlantis."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, &fakeReports{err: tt.err}, staticCatalog{testCatalog()})

			w := do(router, http.MethodGet, "/v1/report?location=Atlantis", nil)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.message)
		})
	}
}

func TestGetWeather(t *testing.T) {
	router := newRouter(t, &fakeReports{weather: "Weather for Boston, MA:"}, staticCatalog{testCatalog()})

	w := do(router, http.MethodGet, "/v1/weather?location=Boston,+MA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Weather for Boston, MA:")
}

func TestGuideFlow(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{testCatalog()})

	w := do(router, http.MethodPost, "/v1/guides", map[string]string{
		"requester": "alice",
		"location":  "Cape Ann, MA",
		"date":      "Saturday",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Request      models.GuideRequest `json:"request"`
		Announcement string              `json:"announcement"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice has requested a guided dive at Cape Ann, MA on Saturday!", created.Announcement)
	require.NotEmpty(t, created.Request.ID)

	w = do(router, http.MethodPost, "/v1/guides/"+created.Request.ID+"/toggle", map[string]string{"guide": "bob"})
	require.Equal(t, http.StatusOK, w.Code)

	var toggled struct {
		Request models.GuideRequest `json:"request"`
		Added   bool                `json:"added"`
		RSVP    string              `json:"rsvp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Added)
	assert.Equal(t, []string{"bob"}, toggled.Request.Guides)
	assert.Equal(t, "RSVP for a dive led by bob!", toggled.RSVP)

	w = do(router, http.MethodGet, "/v1/guides/"+created.Request.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/v1/guides", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Request.ID)
}

func TestGuideErrors(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{testCatalog()})

	w := do(router, http.MethodPost, "/v1/guides", map[string]string{"requester": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/v1/guides/missing/toggle", map[string]string{"guide": "bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/v1/guides/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{testCatalog()})

	w := do(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stations":1`)
}

func TestHealthCheck_NoCatalog(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{nil})

	w := do(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, &fakeReports{}, staticCatalog{testCatalog()})

	w := do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
