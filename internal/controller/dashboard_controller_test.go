package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/middleware"
	"therapy_dashboard/internal/model"
	"therapy_dashboard/internal/repository"
	"therapy_dashboard/internal/service"
	"therapy_dashboard/internal/util"
	"therapy_dashboard/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	ds  *model.Dataset
	err error
}

func (s stubSource) Get(ctx context.Context) (*model.Dataset, error) {
	return s.ds, s.err
}

func (s stubSource) Path() string {
	return "data/survey.csv"
}

func sampleDataset() *model.Dataset {
	header := []string{model.ColumnSession, model.ColumnSubmittedBy, model.QuestionEngagement, model.QuestionConnection, model.QuestionSocialImpact}
	rows := [][]string{
		{"1", "T", "2", "3", "5"},
		{"1", "P", "3", "3", "6"},
		{"2", "T", "4", "2", "8"},
	}
	numeric := append([]string{model.ColumnSession}, model.NumericColumns...)
	return &model.Dataset{Table: model.NewSurveyTable(header, rows, numeric...), Path: "data/survey.csv"}
}

func setupRouter(t *testing.T, source middleware.DatasetSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	viewService := service.NewViewService(&config.DashboardConfig{ChartWidth: 600, ChartHeight: 400})
	storage := service.NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()})
	dashboard := NewDashboardController(viewService, "Dashboard")
	export := NewExportController(service.NewExportService(viewService, storage, nil))
	health := NewHealthController(nil, source)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	pages := r.Group("/")
	pages.Use(middleware.DatasetMiddleware(source, "Dashboard", true))
	pages.GET("", dashboard.Index)
	pages.GET("/views/:id", dashboard.ShowView)

	charts := r.Group("/views/:id/charts")
	charts.Use(middleware.DatasetMiddleware(source, "Dashboard", false))
	charts.GET("/:index", dashboard.ChartImage)

	api := r.Group("/api")
	api.GET("/health", health.HealthCheck)
	api.GET("/views", dashboard.ListViews)
	api.GET("/exports", export.ListExports)

	data := r.Group("/api")
	data.Use(middleware.DatasetMiddleware(source, "", false))
	data.GET("/overview", dashboard.Overview)
	data.GET("/views/:id", dashboard.GetView)
	data.POST("/views/:id/export", export.Export)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestIndexPage(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})
	w := perform(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "RQ1: Emotional Growth")
	assert.Contains(t, w.Body.String(), "3.00")
}

func TestShowViewPage(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})
	w := perform(r, http.MethodGet, "/views/rq1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "RQ1: Growth in Engagement &amp; Connection")
	assert.Contains(t, body, "/views/rq1/charts/0?format=svg")

	w = perform(r, http.MethodGet, "/views/rq42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoadFailurePage(t *testing.T) {
	loadErr := &repository.LoadError{Path: "data/survey.csv", Status: "Error: 'data/survey.csv' not found.", Err: util.ErrDatasetNotFound}
	r := setupRouter(t, stubSource{err: loadErr})

	w := perform(r, http.MethodGet, "/views/rq1", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Error: &#39;data/survey.csv&#39; not found.")
	assert.Contains(t, w.Body.String(), middleware.LoadFailureHint)

	w = perform(r, http.MethodGet, "/api/overview", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Error: 'data/survey.csv' not found.", decode(t, w)["message"])

	w = perform(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChartImage(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})

	w := perform(r, http.MethodGet, "/views/rq1/charts/0?format=svg", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimeSVG, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")

	w = perform(r, http.MethodGet, "/views/rq1/charts/0?format=png", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimePNG, w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/views/rq1/charts/5", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/views/rq2/charts/0", "").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/views/rq1/charts/x", "").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/views/rq1/charts/0?format=gif", "").Code)
}

func TestViewsAPI(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})

	w := perform(r, http.MethodGet, "/api/views", "")
	require.Equal(t, http.StatusOK, w.Code)
	views := decode(t, w)["data"].([]interface{})
	assert.Len(t, views, 6)

	w = perform(r, http.MethodGet, "/api/views/rq6", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["charts"], 2)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/views/nope", "").Code)
}

func TestOverviewAPI(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})
	w := perform(r, http.MethodGet, "/api/overview", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["totalRecords"])
	assert.Equal(t, float64(3), data["avgEngagement"])
	assert.Equal(t, float64(8), data["maxSocialImpact"])
	assert.Nil(t, data["minDistress"])
}

func TestExportAPI(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})

	w := perform(r, http.MethodPost, "/api/views/rq1/export", `{"chart":0,"format":"svg"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "rq1", data["viewId"])
	assert.True(t, strings.HasPrefix(data["url"].(string), "/exports/charts/rq1/"))

	w = perform(r, http.MethodPost, "/api/views/rq1/export", `{"chart":0,"format":"gif"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/api/exports", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t, stubSource{ds: sampleDataset()})
	w := perform(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	components := data["components"].(map[string]interface{})
	assert.Equal(t, "up", components["dataset"])
	assert.Equal(t, "disabled", components["database"])
}
