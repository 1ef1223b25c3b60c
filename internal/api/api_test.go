package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/ougirez/territory-stats/internal/service/admin"
	"github.com/ougirez/territory-stats/internal/service/auth"
	"github.com/ougirez/territory-stats/internal/service/stats"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memoryCache) Close() error { return nil }

func newTestAPI(t *testing.T) (*APIService, *memoryCache) {
	viper.Set(constants.ViperSecretKey, "s3cret")
	t.Cleanup(viper.Reset)

	tables := datasets.NewTables(map[string]*table.Table{
		datasets.Geography: datasetstest.Geography(t),
		datasets.Population: datasetstest.Table(t, datasets.Population,
			"CODGEO;ANNEE;SEXE;AGED100;NB",
			"59350;2020;1;1;300",
			"59350;2020;1;30;700",
		),
	})
	c := &memoryCache{data: map[string][]byte{}}

	svc, err := NewAPIService(Services{
		Stats: stats.NewStatsService(tables),
		Admin: admin.NewAdminService(tables, nil, constants.DataSourceFiles),
		Auth:  auth.NewAuthService(),
		Cache: c,
	})
	require.NoError(t, err)

	return svc, c
}

func do(svc *APIService, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	svc.router.ServeHTTP(rec, req)
	return rec
}

func TestAPI_Population(t *testing.T) {
	svc, c := newTestAPI(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/population/commune/59350?start_year=2020&end_year=2020", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.Result[domain.PopulationRecord]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.StatusFound, res.Status)
	assert.Equal(t, 30.0, res.Data[2020].Under3Rate)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	assert.Len(t, c.data, 1)
}

func TestAPI_StatusCodes(t *testing.T) {
	svc, c := newTestAPI(t)

	cases := []struct {
		name string
		url  string
		code int
	}{
		{"unknown territory", "/api/v1/population/epci/999999999", http.StatusNotFound},
		{"unavailable dataset", "/api/v1/births/commune/59350", http.StatusServiceUnavailable},
		{"partial window", "/api/v1/population/commune/59350?start_year=2019&end_year=2020", http.StatusOK},
		{"unknown level", "/api/v1/population/canton/12", http.StatusBadRequest},
		{"unsupported level", "/api/v1/history/department/59", http.StatusBadRequest},
		{"inverted years", "/api/v1/population/commune/59350?start_year=2021&end_year=2019", http.StatusBadRequest},
		{"bad year", "/api/v1/population/commune/59350?start_year=abc", http.StatusBadRequest},
		{"unknown domain", "/api/v1/weather/commune/59350", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(svc, httptest.NewRequest(http.MethodGet, tc.url, nil))
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}

	assert.Len(t, c.data, 1, "only the partial answer is cached")
}

func TestAPI_NotFoundShape(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/population/epci/999999999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.JSONEq(t, `{
		"status": "not_found",
		"territory": {"level": "epci", "code": "999999999", "name": null, "communes": [], "communes_count": 0},
		"data": {}
	}`, rec.Body.String())
}

func TestAPI_Territory(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/territories/department/59", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Nord"`)

	rec = do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/territories/region/11", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Admin(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/admin/datasets", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"secret":"wrong"}`))
	login.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, do(svc, login).Code)

	login = httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"secret":"s3cret"}`))
	login.Header.Set("Content-Type", "application/json")
	rec = do(svc, login)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieKeySecretToken, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/datasets", nil)
	req.AddCookie(cookies[0])
	rec = do(svc, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"geography"`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/import", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, http.StatusNotFound, do(svc, req).Code)
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	svc, _ := newTestAPI(t)

	rec := do(svc, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"datasets_available":2`)

	do(svc, httptest.NewRequest(http.MethodGet, "/api/v1/population/commune/59350", nil))
	rec = do(svc, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tstats_queries_total")
}
