package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"scaleout-planner/internal/api/models"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPlanHandler()
	r.POST("/api/v1/plan", h.RunPlan)
	r.POST("/api/v1/plan/compare", h.ComparePlans)
	r.GET("/api/v1/strategies", NewStrategyHandler().ListStrategies)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func inlinePlanRequest() models.PlanRequest {
	return models.PlanRequest{
		DataSource: models.DataSourceConfig{Type: "inline"},
		Config: models.PlanConfig{
			Position: models.PositionConfig{Symbol: "BTC", Quantity: 1.0},
			Plan:     models.LadderConfig{Steps: 3, StartPrice: 80, EndPrice: 150},
			Strategy: models.StrategyConfig{Name: "linear"},
		},
		Options: models.PlanOptions{IncludeSchedule: true},
	}
}

func TestRunPlanInline(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/v1/plan", inlinePlanRequest())

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp models.PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "completed" {
		t.Fatalf("status=%q", resp.Status)
	}
	if len(resp.Schedule) != 3 {
		t.Fatalf("got %d schedule rows, want 3", len(resp.Schedule))
	}
	if math.Abs(resp.Summary.TotalQuantity-1.0) > 1e-9 {
		t.Fatalf("TotalQuantity=%v, want 1.0", resp.Summary.TotalQuantity)
	}
	// 1/3 at each of 80, 115, 150.
	if math.Abs(resp.Summary.TotalProceeds-115.0) > 1e-9 {
		t.Fatalf("TotalProceeds=%v, want 115.0", resp.Summary.TotalProceeds)
	}
	if resp.Summary.PriceRange.Start != 80 || resp.Summary.PriceRange.End != 150 {
		t.Fatalf("PriceRange=%+v", resp.Summary.PriceRange)
	}
}

func TestRunPlanRejectsBadSteps(t *testing.T) {
	r := newTestRouter()

	req := inlinePlanRequest()
	req.Config.Plan.Steps = 2 // below the configured minimum
	w := postJSON(t, r, "/api/v1/plan", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_CONFIG" {
		t.Fatalf("error code=%q, want INVALID_CONFIG", resp.Error.Code)
	}
}

func TestRunPlanRejectsUnknownStrategy(t *testing.T) {
	r := newTestRouter()

	req := inlinePlanRequest()
	req.Config.Strategy.Name = "martingale"
	w := postJSON(t, r, "/api/v1/plan", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestRunPlanRejectsUnknownDataSource(t *testing.T) {
	r := newTestRouter()

	req := inlinePlanRequest()
	req.DataSource.Type = "teleprinter"
	w := postJSON(t, r, "/api/v1/plan", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_DATA_SOURCE" {
		t.Fatalf("error code=%q", resp.Error.Code)
	}
}

func TestComparePlans(t *testing.T) {
	r := newTestRouter()

	base := inlinePlanRequest()
	req := models.ComparePlanRequest{
		DataSource: base.DataSource,
		BaseConfig: base.Config,
		Variations: []models.PlanVariation{
			{Name: "linear", Config: models.PlanConfig{Strategy: models.StrategyConfig{Name: "linear"}}},
			{Name: "exp", Config: models.PlanConfig{Strategy: models.StrategyConfig{Name: "exponential"}}},
			{Name: "log", Config: models.PlanConfig{Strategy: models.StrategyConfig{Name: "logarithmic"}}},
			{Name: "bogus", Config: models.PlanConfig{Strategy: models.StrategyConfig{Name: "martingale"}}},
		},
	}

	w := postJSON(t, r, "/api/v1/plan/compare", req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp models.ComparePlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	// The invalid variation is skipped, not fatal.
	if len(resp.Comparison) != 3 {
		t.Fatalf("got %d comparisons, want 3", len(resp.Comparison))
	}

	byName := map[string]models.PlanSummary{}
	for _, c := range resp.Comparison {
		byName[c.Name] = c.Summary
	}
	if byName["exp"].TotalProceeds <= byName["linear"].TotalProceeds {
		t.Fatalf("exponential should beat linear on an ascending ladder: %+v", byName)
	}
	if byName["log"].TotalProceeds >= byName["linear"].TotalProceeds {
		t.Fatalf("logarithmic should trail linear on an ascending ladder: %+v", byName)
	}
}

func TestListStrategies(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/strategies", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var resp struct {
		Strategies []models.StrategyInfo `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Strategies) != 3 {
		t.Fatalf("got %d strategies, want 3", len(resp.Strategies))
	}
}
