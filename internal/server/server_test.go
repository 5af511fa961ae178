package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const scenarioJSON = `{
  "revenue": 10000000,
  "cost_percent": 40,
  "vat_purchases_percent": 70,
  "rent": 500000,
  "employees": 3,
  "monthly_salary": 50000,
  "payroll_mode": "staff",
  "other_expenses_mode": "percent",
  "other_expenses_percent": 10,
  "current_regime": "usn_income_no_vat"
}`

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Addr:            "127.0.0.1:0",
		MaxBodyBytes:    1 << 20,
		RequestTimeout:  30 * time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	srv := New(testConfig(), domain.DefaultTaxRules(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCalculate_JSON(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/calculate", "application/json", scenarioJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var summary struct {
		Results []struct {
			ID        string `json:"id"`
			Available bool   `json:"available"`
		} `json:"results"`
		Top []struct {
			ID          string `json:"id"`
			TotalBurden string `json:"total_burden"`
		} `json:"top"`
		PatentTargetProfit string `json:"patent_target_profit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Len(t, summary.Results, len(domain.RegimeIDs()))
	require.Len(t, summary.Top, 5)
	assert.Equal(t, "ausn_profit", summary.Top[0].ID)
	assert.Equal(t, "597390", summary.Top[0].TotalBurden)
	assert.NotEmpty(t, summary.PatentTargetProfit)
}

func TestCalculate_YAMLBody(t *testing.T) {
	ts := newTestServer(t)

	body := "revenue: 1000000\ncost_percent: 50\nother_expenses_mode: absolute\n"
	resp := post(t, ts.URL+"/api/v1/calculate", "application/yaml", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalculate_OtherFormats(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"csv", "text/csv", "ID,Title,Available"},
		{"html", "text/html", "<h1>Tax Regime Comparison</h1>"},
		{"console", "text/plain", "TAX REGIME COMPARISON"},
		{"table", "text/plain", "TAX REGIME SUMMARY"},
		{"monthly-csv", "text/csv", "Month,Revenue,Expenses,Tax"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/calculate?format="+tt.format, "application/json", scenarioJSON)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.contentType)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.contains)
		})
	}

	resp := post(t, ts.URL+"/api/v1/calculate?format=pdf", "application/json", scenarioJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculate_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	tests := map[string]string{
		"zero revenue":  `{"revenue": 0}`,
		"negative rent": `{"revenue": 1000, "rent": -1}`,
		"unknown field": `{"revenue": 1000, "turnover": 5}`,
		"bad mode":      `{"revenue": 1000, "payroll_mode": "hourly"}`,
		"bad regime":    `{"revenue": 1000, "current_regime": "usn_30"}`,
		"malformed":     `{"revenue": `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/calculate", "application/json", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), errResp.RequestID)
		})
	}
}

func TestCalculate_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	ts := httptest.NewServer(New(cfg, domain.DefaultTaxRules()).Handler())
	defer ts.Close()

	resp := post(t, ts.URL+"/api/v1/calculate", "application/json", scenarioJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCompare(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/compare", "application/json", scenarioJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var compSet struct {
		BaseRegime         string            `json:"base_regime"`
		AlternativeResults []json.RawMessage `json:"alternative_results"`
		Recommendations    []string          `json:"recommendations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&compSet))
	assert.Equal(t, "usn_income_no_vat", compSet.BaseRegime)
	assert.NotEmpty(t, compSet.AlternativeResults)
	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompare_BaseAndFormats(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/compare?base=patent&format=csv", "application/json", scenarioJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"patent", "Патент", "base"}, records[1][:3])

	resp = post(t, ts.URL+"/api/v1/compare?format=table", "application/json", scenarioJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, query := range []string{"base=usn_30", "format=xml", "include_unavailable=maybe"} {
		resp = post(t, ts.URL+"/api/v1/compare?"+query, "application/json", scenarioJSON)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}

	noBase := strings.Replace(scenarioJSON, `"current_regime": "usn_income_no_vat"`, `"current_regime": ""`, 1)
	resp = post(t, ts.URL+"/api/v1/compare", "application/json", noBase)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegimesAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/regimes")
	require.NoError(t, err)
	defer resp.Body.Close()
	var regimes []domain.RegimeInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regimes))
	require.Len(t, regimes, len(domain.RegimeIDs()))
	for i, id := range domain.RegimeIDs() {
		assert.Equal(t, id, regimes[i].ID)
		assert.Equal(t, id.Title(), regimes[i].Title)
	}

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	wrongMethod, err := http.Get(ts.URL + "/api/v1/calculate")
	require.NoError(t, err)
	defer wrongMethod.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, wrongMethod.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/v1/calculate", "application/json", scenarioJSON)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "taxregimes_http_requests_total")
	assert.Contains(t, string(body), "taxregimes_best_regime_total")
}

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ts := newTestServer(t, WithLogger(zap.New(core)))

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	generated := resp.Header.Get(RequestIDHeader)
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)

	given := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, given)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, given, resp.Header.Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, given, fields["request_id"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}

func TestListenAndServe_Shutdown(t *testing.T) {
	srv := New(testConfig(), domain.DefaultTaxRules())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
