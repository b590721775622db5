package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glicocare/glicocare/internal/domain"
	"github.com/glicocare/glicocare/internal/services"
	"github.com/glicocare/glicocare/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAI implements domain.NutritionAI without the network.
type fakeAI struct {
	food        *domain.FoodInfo
	foodErr     error
	analysis    *domain.MealAnalysisResult
	analysisErr error
	plan        *domain.MealPlan
	planErr     error
	chatReply   string
	chatErr     error

	gotPlanGlucose int
}

func (f *fakeAI) FoodNutrition(_ context.Context, _ string, _ domain.UserProfile) (*domain.FoodInfo, error) {
	return f.food, f.foodErr
}

func (f *fakeAI) AnalyzeMeal(_ context.Context, _ string, _ domain.UserProfile) (*domain.MealAnalysisResult, error) {
	return f.analysis, f.analysisErr
}

func (f *fakeAI) GenerateMealPlan(_ context.Context, profile domain.UserProfile, currentGlucose int) (*domain.MealPlan, error) {
	f.gotPlanGlucose = currentGlucose
	if f.planErr != nil {
		return nil, f.planErr
	}
	plan := *f.plan
	plan.GlucoseLevel = currentGlucose
	plan.GlucoseStatus = domain.ClassifyGlucose(currentGlucose, profile)
	return &plan, nil
}

func (f *fakeAI) Chat(_ context.Context, _ []domain.ChatMessage, _ string, _ domain.UserProfile) (string, error) {
	return f.chatReply, f.chatErr
}

func newTestServer(t *testing.T, ai *fakeAI) (*Server, *services.AppService) {
	t.Helper()
	app := services.NewAppService(storage.NewMemory())
	require.NoError(t, app.Load(context.Background()))
	return New(app, ai), app
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func setupProfile(t *testing.T, srv *Server) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPut, "/api/v1/profile", gin.H{
		"name":           "Maria Silva",
		"age":            52,
		"weight":         68.5,
		"height":         162,
		"diabetesType":   "Type2",
		"medications":    "Metformina 850mg",
		"targetRangeMin": 70,
		"targetRangeMax": 180,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProfileGate(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAI{})

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodGet, "/api/v1/glucose"},
		{http.MethodPost, "/api/v1/food/search"},
		{http.MethodPost, "/api/v1/meals/plan"},
		{http.MethodGet, "/api/v1/meals/plans"},
		{http.MethodPost, "/api/v1/chat"},
	}
	for _, route := range gated {
		rec := doJSON(t, srv, route.method, route.path, nil)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code, route.path)
		assert.Contains(t, rec.Body.String(), "profile_required", route.path)
	}

	// Profile setup and theme remain reachable.
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/theme", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	setupProfile(t, srv)
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddGlucoseValidation(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAI{})
	setupProfile(t, srv)

	// Zero is rejected, like the logger view has always done.
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       0,
		"mealContext": string(domain.ContextOther),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       -10,
		"mealContext": string(domain.ContextOther),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       120,
		"mealContext": "brunch",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddGlucoseAndDashboard(t *testing.T) {
	srv, app := newTestServer(t, &fakeAI{})
	setupProfile(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       200,
		"mealContext": string(domain.ContextAfterLunch),
		"notes":       "almoço pesado",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created glucoseEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusAlta, created.Status)

	history := app.GlucoseHistory()
	require.Len(t, history, 1)
	assert.Equal(t, 200, history[0].Value)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard struct {
		HasReadingToday bool                  `json:"hasReadingToday"`
		Latest          *glucoseEntryResponse `json:"latest"`
		TodaySeries     []dashboardPoint      `json:"todaySeries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.True(t, dashboard.HasReadingToday)
	require.NotNil(t, dashboard.Latest)
	assert.Equal(t, domain.StatusAlta, dashboard.Latest.Status)
	require.Len(t, dashboard.TodaySeries, 1)
	assert.Equal(t, 200, dashboard.TodaySeries[0].Value)
}

func TestGenerateMealPlan(t *testing.T) {
	fake := &fakeAI{
		plan: &domain.MealPlan{
			ID:          "plan-1",
			Date:        time.Now(),
			Breakfast:   "Aveia",
			Lunch:       "Frango grelhado",
			Dinner:      "Sopa de legumes",
			Explanation: "Plano de estabilização.",
		},
	}
	srv, app := newTestServer(t, fake)
	setupProfile(t, srv)

	// No readings yet: the planner blocks and points at the logger.
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/meals/plan", nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Contains(t, rec.Body.String(), "glucose_required")

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       55,
		"mealContext": string(domain.ContextBeforeBreakfast),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/meals/plan", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 55, fake.gotPlanGlucose, "plan generation uses the latest reading")

	var plan domain.MealPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, domain.StatusBaixa, plan.GlucoseStatus)

	plans := app.MealPlans()
	require.Len(t, plans, 1)
	assert.Equal(t, domain.StatusBaixa, plans[0].GlucoseStatus)
}

func TestGenerateMealPlanGatewayFailure(t *testing.T) {
	fake := &fakeAI{planErr: errors.New("boom")}
	srv, app := newTestServer(t, fake)
	setupProfile(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/glucose", gin.H{
		"value":       120,
		"mealContext": string(domain.ContextOther),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/meals/plan", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, app.MealPlans(), "a failed generation stores nothing")
}

func TestFoodSearch(t *testing.T) {
	fake := &fakeAI{
		food: &domain.FoodInfo{
			Name:                "Maçã",
			Calories:            52,
			Carbs:               14,
			DiabeticSuitability: "Boa opção",
			IsGood:              true,
		},
	}
	srv, _ := newTestServer(t, fake)
	setupProfile(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/food/search", gin.H{"name": "maçã"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maçã")

	fake.foodErr = errors.New("timeout")
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/food/search", gin.H{"name": "maçã"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "timeout", "raw errors never reach the view")
}

func TestChatFailsOpen(t *testing.T) {
	fake := &fakeAI{chatReply: "Beba água e monitore sua glicemia. Lembre-se: sou uma IA."}
	srv, _ := newTestServer(t, fake)
	setupProfile(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/chat", gin.H{"message": "O que fazer em hipoglicemia?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var msg domain.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, domain.RoleModel, msg.Role)
	assert.Equal(t, fake.chatReply, msg.Text)

	fake.chatErr = errors.New("connection reset")
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/chat", gin.H{"message": "ainda aí?"})
	require.Equal(t, http.StatusOK, rec.Code, "chat failures are never surfaced as errors")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, chatFallback, msg.Text)
}

func TestThemeToggle(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAI{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/theme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "light")

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/theme/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dark")
}
