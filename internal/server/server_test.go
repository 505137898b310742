package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store, err := scenario.Open(context.Background(), scenario.MemoryPath, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewHandler(Options{Logger: zap.NewNop(), Store: store, Version: "1.2.3"})
}

func pilotFields() map[string]interface{} {
	return map[string]interface{}{
		"scenario_name":                "Q4 Pilot",
		"monthly_invoice_volume":       2000,
		"num_ap_staff":                 3,
		"hourly_wage":                  30.0,
		"error_cost":                   100.0,
		"time_horizon_months":          36,
		"one_time_implementation_cost": 50000.0,
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleCalculateSuccess(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/api/calculate", pilotFields())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.False(t, resp.Fallback)
	assert.True(t, resp.PaybackAvailable)
	assert.True(t, resp.ROIAvailable)
	assert.InDelta(t, 8000.3, resp.Result.MonthlySavings, 1e-9)
	assert.InDelta(t, 288010.8, resp.Result.CumulativeSavings, 1e-7)
	assert.InDelta(t, 476.02, resp.Result.ROIPercentage, 0.01)
	require.NotNil(t, resp.Input)
	assert.Equal(t, "Q4 Pilot", resp.Input.ScenarioName)
	require.Len(t, resp.Report, 5)
	assert.Equal(t, "$8,000.30", resp.Report[1].Text)
	assert.Len(t, resp.Projection, 36)
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleCalculateFallback(t *testing.T) {
	h := newTestHandler(t)
	fields := pilotFields()
	delete(fields, "hourly_wage")

	rr := doJSON(t, h, http.MethodPost, "/api/calculate", fields)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["fallback"])
	assert.Contains(t, raw["error"], "hourly_wage")

	result := raw["result"].(map[string]interface{})
	assert.Equal(t, float64(0), result["monthly_savings"])
	assert.Equal(t, float64(0), result["cumulative_savings"])
	assert.Nil(t, result["payback_months"])
	assert.Equal(t, float64(0), result["roi_percentage"])
	assert.Equal(t, false, raw["paybackAvailable"])
	assert.Equal(t, true, raw["roiAvailable"])
}

func TestHandleCalculateZeroImplementationCost(t *testing.T) {
	h := newTestHandler(t)
	fields := pilotFields()
	fields["one_time_implementation_cost"] = 0

	rr := doJSON(t, h, http.MethodPost, "/api/calculate", fields)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.ROIAvailable)
	assert.Equal(t, "N/A", resp.Report[3].Text)
}

func TestHandleCalculateMalformedBody(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCalculateBodyTooLarge(t *testing.T) {
	h := NewHandler(Options{MaxBodySize: 16})
	rr := doJSON(t, h, http.MethodPost, "/api/calculate", pilotFields())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestScenarioLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	first := pilotFields()
	first["scenario_name"] = "Baseline"
	second := pilotFields()
	second["scenario_name"] = "Aggressive"
	second["hourly_wage"] = 42.5

	var ids []int64
	for _, fields := range []map[string]interface{}{first, second} {
		rr := doJSON(t, h, http.MethodPost, "/api/scenarios", fields)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var created struct {
			ID      int64  `json:"id"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		ids = append(ids, created.ID)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var summaries []scenario.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
	assert.Equal(t, []scenario.Summary{
		{ID: ids[0], ScenarioName: "Baseline"},
		{ID: ids[1], ScenarioName: "Aggressive"},
	}, summaries)

	rr = doJSON(t, h, http.MethodGet, "/api/scenarios/"+jsonInt(ids[1]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var record scenario.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, ids[1], record.ID)
	assert.Equal(t, calculator.ScenarioInput{
		ScenarioName:              "Aggressive",
		MonthlyInvoiceVolume:      2000,
		NumAPStaff:                3,
		HourlyWage:                42.5,
		ErrorCost:                 100.0,
		TimeHorizonMonths:         36,
		OneTimeImplementationCost: 50000.0,
	}, record.Input())
}

func TestCreateScenarioRejections(t *testing.T) {
	h := newTestHandler(t)

	unnamed := pilotFields()
	unnamed["scenario_name"] = ""
	rr := doJSON(t, h, http.MethodPost, "/api/scenarios", unnamed)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "scenario name")

	incomplete := pilotFields()
	delete(incomplete, "error_cost")
	rr = doJSON(t, h, http.MethodPost, "/api/scenarios", incomplete)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/scenarios", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestFetchScenarioErrors(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodGet, "/api/scenarios/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/scenarios/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type failingStore struct{}

func (failingStore) Create(context.Context, calculator.ScenarioInput) (int64, error) {
	return 0, &scenario.PersistenceError{Op: "create", Err: errors.New("disk full")}
}

func (failingStore) List(context.Context) ([]scenario.Summary, error) {
	return nil, &scenario.PersistenceError{Op: "list", Err: errors.New("disk full")}
}

func (failingStore) Fetch(context.Context, int64) (scenario.Record, error) {
	return scenario.Record{}, &scenario.PersistenceError{Op: "fetch", Err: errors.New("disk full")}
}

func TestPersistenceErrorsSurfaceAsServerErrors(t *testing.T) {
	h := NewHandler(Options{Store: failingStore{}})

	assert.Equal(t, http.StatusInternalServerError, doJSON(t, h, http.MethodGet, "/api/scenarios", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(t, h, http.MethodPost, "/api/scenarios", pilotFields()).Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(t, h, http.MethodGet, "/api/scenarios/1", nil).Code)
}

func TestScenarioEndpointsWithoutStore(t *testing.T) {
	h := NewHandler(Options{})
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, h, http.MethodGet, "/api/scenarios", nil).Code)
}

func TestHandleReport(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/api/report", map[string]interface{}{
		"email": "name@company.com",
		"input": pilotFields(),
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="ROI_Report_Q4 Pilot.pdf"`)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestHandleReportRequiresEmail(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/api/report", map[string]interface{}{
		"email": "  ",
		"input": pilotFields(),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email")

	rr = doJSON(t, h, http.MethodPost, "/api/report", map[string]interface{}{
		"email": "name@company.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleVersion(t *testing.T) {
	h := newTestHandler(t)
	rr := doJSON(t, h, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3"}`, rr.Body.String())

	rr = doJSON(t, NewHandler(Options{}), http.MethodGet, "/api/version", nil)
	assert.JSONEq(t, `{"version":"dev"}`, rr.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rr := doJSON(t, h, http.MethodGet, "/api/calculate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/api/calculate", pilotFields())
	incomplete := pilotFields()
	delete(incomplete, "num_ap_staff")
	doJSON(t, h, http.MethodPost, "/api/calculate", incomplete)

	rr := doJSON(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `invoice_roi_calculations_total{outcome="computed"} 1`)
	assert.Contains(t, body, `invoice_roi_calculations_total{outcome="fallback"} 1`)
	assert.Contains(t, body, `invoice_roi_http_requests_total{method="POST",route="/api/calculate",status="200"} 2`)
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
