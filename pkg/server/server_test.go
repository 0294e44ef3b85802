package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/api"
	"github.com/de-tools/insight-deck/pkg/services/pipeline"
	"github.com/de-tools/insight-deck/pkg/store/duckdb"
	"github.com/de-tools/insight-deck/pkg/store/duckdb/runs"
)

const usageCSV = `day,service,usage_units,cost_gbp,incidents,sla_pct
2024-03-01,api,100,50,1,99.9
2024-03-01,etl,40,20,0,99.6
2024-03-02,api,120,60,0,99.8
2024-03-02,etl,45,22,2,99.4
`

func postCSV(t *testing.T, url string, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "usage.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/generate-deck", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func TestWebAPI_Endpoints(t *testing.T) {
	// Given: the full router backed by the real pipeline and an in-memory run history
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	history, err := runs.NewStore(db)
	require.NoError(t, err)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Generator:      pipeline.New(layout.DefaultTheme()),
			Runs:           history,
			Logger:         zerolog.New(zerolog.NewTestWriter(t)),
			MaxUploadBytes: 1024 * 1024,
		},
	}
	testServer := httptest.NewServer(ConfigureRouter(config))
	defer testServer.Close()

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		actual, err := unmarshalResponse[api.HealthResponse](resp.Body)
		require.NoError(t, err)
		assert.Equal(t, api.HealthResponse{Status: "ok", App: "InsightDeck"}, actual)
		assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	})

	t.Run("GenerateDeck", func(t *testing.T) {
		resp := postCSV(t, testServer.URL, usageCSV)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	})

	t.Run("GenerateDeck_SchemaError", func(t *testing.T) {
		resp := postCSV(t, testServer.URL, "day,service\n2024-03-01,api\n")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		actual, err := unmarshalResponse[api.ErrorResponse](resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "SchemaError", actual.Type)
	})

	t.Run("ListReports", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/reports")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		actual, err := unmarshalResponse[api.ReportRunsResponse](resp.Body)
		require.NoError(t, err)
		require.Len(t, actual.Runs, 1)
		run := actual.Runs[0]
		assert.Equal(t, "usage.csv", run.Source)
		assert.Equal(t, 4, run.Rows)
		assert.Equal(t, 2, run.Days)
		assert.Equal(t, 2, run.Services)
		assert.Equal(t, int64(3), run.KPIs.IncidentsTotal)
		assert.Positive(t, run.DocumentBytes)

		one, err := http.Get(testServer.URL + "/api/v1/reports/" + run.ID)
		require.NoError(t, err)
		defer one.Body.Close()
		require.Equal(t, http.StatusOK, one.StatusCode)
		fetched, err := unmarshalResponse[api.ReportRun](one.Body)
		require.NoError(t, err)
		assert.Equal(t, run.ID, fetched.ID)
		assert.Equal(t, run.Source, fetched.Source)
	})

	t.Run("GetReport_NotFound", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/reports/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		actual, err := unmarshalResponse[api.ErrorResponse](resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "NotFound", actual.Type)
	})

	t.Run("Metrics", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `insightdeck_reports_total{status="success"}`)
		assert.Contains(t, string(body), `insightdeck_reports_total{status="input_error"}`)
		assert.Contains(t, string(body), "insightdeck_report_duration_seconds_bucket")
		assert.Contains(t, string(body), `route="/generate-deck"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/workspaces")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	w := NewWebAPI(Config{Addr: ":0", Dependencies: Dependencies{Generator: pipeline.New(layout.DefaultTheme())}})

	assert.Equal(t, defaultShutdownTimeout, w.shutdownTimeout)
	assert.Equal(t, ":0", w.server.Addr)
}

func unmarshalResponse[T any](r io.Reader) (T, error) {
	var response T
	err := json.NewDecoder(r).Decode(&response)
	return response, err
}
