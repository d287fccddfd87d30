package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobinsight-engine/internal/analysis"
	"jobinsight-engine/internal/collect"
	"jobinsight-engine/internal/config"
	"jobinsight-engine/internal/domain"
	"jobinsight-engine/internal/events"
	"jobinsight-engine/internal/secrets"
	"jobinsight-engine/internal/store"
)

type stubGen struct{}

func (stubGen) Generate(_ context.Context, p string) (string, error) {
	first, _, _ := strings.Cut(p, "\n")
	return "ok: " + first, nil
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	ds := store.FromRecords([]domain.Record{
		{domain.FieldJobTitle: "Software Engineer", domain.FieldCompanyName: "Acme",
			domain.FieldJobLocation: "Austin, TX", domain.FieldPayMedian: 100000.0},
		{domain.FieldJobTitle: "Nurse", domain.FieldCompanyName: "Initech",
			domain.FieldJobLocation: "Dallas, TX"},
	})

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	cfgVal := &atomic.Value{}
	cfgVal.Store(config.Default())

	return Deps{
		Log:           zerolog.Nop(),
		Hub:           events.NewHub(),
		Analysis:      analysis.New(ds, stubGen{}, zerolog.Nop()),
		CfgVal:        cfgVal,
		CollectStatus: collect.NewTracker(),
		UserCfgPath:   cfgPath,
		LoadCfg:       func() (config.Config, error) { return config.Load(cfgPath) },
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	h := Handler(testDeps(t))
	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 2, body["records"])
	assert.Equal(t, true, body["llm"])
	assert.Equal(t, map[string]any{"subscribers": 0.0, "published": 0.0, "dropped": 0.0}, body["events"])

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decodeAPIError(t, rec).Error.Code)
}

func TestMarket(t *testing.T) {
	h := Handler(testDeps(t))

	rec := do(t, h, http.MethodGet, "/market?keyword=engineer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Keyword string `json:"keyword"`
		Stats   struct {
			TotalJobs    int        `json:"total_jobs"`
			TopLocations [][2]any   `json:"top_locations"`
			SalaryRange  [2]float64 `json:"salary_range"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Stats.TotalJobs)
	assert.Equal(t, [2]float64{100000, 100000}, got.Stats.SalaryRange)
	assert.Equal(t, [][2]any{{"Austin, TX", 1.0}}, got.Stats.TopLocations)

	rec = do(t, h, http.MethodGet, "/market", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_keyword", decodeAPIError(t, rec).Error.Code)
}

func TestLocations(t *testing.T) {
	h := Handler(testDeps(t))

	rec := do(t, h, http.MethodGet, "/locations?location=dallas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_jobs":1`)

	rec = do(t, h, http.MethodGet, "/locations?location=Paris", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No jobs found in Paris", decodeAPIError(t, rec).Error.Message)
}

func TestCompanies(t *testing.T) {
	h := Handler(testDeps(t))

	rec := do(t, h, http.MethodGet, "/companies/acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view analysis.CompanyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Acme", view.Company)
	assert.Equal(t, "Software Engineer", view.Job.JobTitle)
	assert.Equal(t, store.NoBenefitsSummary, view.Benefits.Summary)

	rec = do(t, h, http.MethodGet, "/companies/Umbrella", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No data found for company: Umbrella", decodeAPIError(t, rec).Error.Message)
}

func TestAnalyze(t *testing.T) {
	h := Handler(testDeps(t))

	rec := do(t, h, http.MethodPost, "/analyze/market", `{"keyword":"engineer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var market analysis.MarketAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &market))
	assert.Len(t, market.Responses, 3)

	rec = do(t, h, http.MethodPost, "/analyze/company", `{"company":"initech"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok: Analyze Initech based on the following metrics:")

	rec = do(t, h, http.MethodPost, "/analyze/location", `{"location":"austin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok: Analyze job opportunities in austin:")

	rec = do(t, h, http.MethodPost, "/analyze/market", `{"keyword":""}`)
	assert.Equal(t, "missing_keyword", decodeAPIError(t, rec).Error.Code)

	rec = do(t, h, http.MethodPost, "/analyze/market", `{"kw":"x"}`)
	assert.Equal(t, "invalid_json", decodeAPIError(t, rec).Error.Code)
}

func TestAnalyze_NoGenerator(t *testing.T) {
	d := testDeps(t)
	d.Analysis = analysis.New(d.Analysis.Dataset(), nil, zerolog.Nop())
	rec := do(t, Handler(d), http.MethodPost, "/analyze/location", `{"location":"austin"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "llm_unavailable", decodeAPIError(t, rec).Error.Code)
}

func TestCollectRun(t *testing.T) {
	d := testDeps(t)
	ran := make(chan struct{})
	d.Refresh = func(context.Context) error {
		close(ran)
		return errors.New("offline")
	}
	h := Handler(d)

	rec := do(t, h, http.MethodPost, "/collect/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh was not started")
	}

	require.True(t, d.CollectStatus.Begin())
	rec = do(t, h, http.MethodPost, "/collect/run", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/collect/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":true`)

	d.Refresh = nil
	rec = do(t, Handler(d), http.MethodPost, "/collect/run", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestConfigGetPut(t *testing.T) {
	d := testDeps(t)
	h := Handler(d)

	rec := do(t, h, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, config.Default(), cfg)

	cfg.LLM.Model = "gemini-test"
	cfg.Collect.SnapshotIDs = []string{" s_a ", "s_a"}
	b, _ := json.Marshal(cfg)
	rec = do(t, h, http.MethodPut, "/config", string(b))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := d.CfgVal.Load().(config.Config)
	assert.Equal(t, "gemini-test", saved.LLM.Model)
	assert.Equal(t, []string{"s_a"}, saved.Collect.SnapshotIDs)

	cfg.App.Port = 0
	b, _ = json.Marshal(cfg)
	rec = do(t, h, http.MethodPut, "/config", string(b))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "app.port must be 1..65535")

	rec = do(t, h, http.MethodGet, "/config/validate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecrets(t *testing.T) {
	keyring.MockInit()
	h := Handler(testDeps(t))

	rec := do(t, h, http.MethodPost, "/api/secrets/dataset", `{"value":"tok-123"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	got, err := secrets.Get(secrets.DatasetToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)

	rec = do(t, h, http.MethodDelete, "/api/secrets/dataset", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/api/secrets/dataset", "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting a missing secret is fine")

	rec = do(t, h, http.MethodPost, "/api/secrets/nope", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/secrets/google", `{"value":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShutdown(t *testing.T) {
	d := testDeps(t)
	called := make(chan struct{}, 1)
	d.ShutdownToken = "secret"
	d.Shutdown = func() { called <- struct{}{} }
	h := Handler(d)

	req := httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.Header.Set("X-Shutdown-Token", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, "httptest requests come from 192.0.2.1")

	req = httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("X-Shutdown-Token", "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("X-Shutdown-Token", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown not called")
	}
}

func TestMiddleware_RecoverAndCors(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := Chain(panicky, RequestID, Recover(zerolog.Nop()), Cors)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeAPIError(t, rec)
	assert.Equal(t, "internal_error", e.Error.Code)
	assert.Equal(t, "req-42", e.Error.RequestID)

	req = httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	Handler(testDeps(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEventsSSE(t *testing.T) {
	d := testDeps(t)
	srv := httptest.NewServer(Handler(d))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	sc := bufio.NewScanner(res.Body)
	readData := func() events.Event {
		for sc.Scan() {
			if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
				var e events.Event
				require.NoError(t, json.Unmarshal([]byte(data), &e))
				return e
			}
		}
		t.Fatal("stream ended")
		return events.Event{}
	}

	assert.Equal(t, events.TypeHello, readData().Type)

	require.Eventually(t, func() bool { return d.Hub.Stats().Subscribers == 1 }, time.Second, 10*time.Millisecond)
	d.Hub.Publish(events.MakeEvent("", events.TypeDatasetLoaded, 1, events.DatasetLoaded{Records: 5}))
	e := readData()
	assert.Equal(t, events.TypeDatasetLoaded, e.Type)
	assert.JSONEq(t, `{"source":"","records":5}`, string(e.Data))
}

func TestEventsSSE_Heartbeat(t *testing.T) {
	eh := EventsHandler{Hub: events.NewHub(), Heartbeat: 20 * time.Millisecond}
	srv := httptest.NewServer(http.HandlerFunc(eh.ServeSSE))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "no", res.Header.Get("X-Accel-Buffering"))

	sc := bufio.NewScanner(res.Body)
	for sc.Scan() {
		if sc.Text() == ": ping" {
			return
		}
	}
	t.Fatal("no heartbeat before stream ended")
}

func TestRequestID_Generated(t *testing.T) {
	rec := do(t, Handler(testDeps(t)), http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}
