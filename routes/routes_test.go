package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/glucheck/backend/config"
	"github.com/glucheck/backend/controllers"
	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/models"
	"github.com/glucheck/backend/repository"
	"github.com/glucheck/backend/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Prediction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.Default()
	users := repository.NewUserRepository(db)
	predictions := repository.NewPredictionRepository(db)

	builder := ml.NewBuilder(cfg.Validation)
	classifier := &ml.Classifier{
		Weights:   []float64{0.12, 0.035, -0.011, 0.09, 0.95},
		Intercept: -8.4,
	}
	catalog := ml.NewCatalog([]ml.NutritionItem{
		{Menu: "Steamed Fish", Carbohydrates: 2, Sodium: 120, Fat: 4, Cholesterol: 55},
		{Menu: "Fried Rice", Carbohydrates: 52, Sodium: 650, Fat: 16, Cholesterol: 85},
	})

	assessments := services.NewAssessmentService(builder, classifier, predictions)

	r := SetupRouter(cfg, Controllers{
		Auth:      controllers.NewAuthController(users, []byte(cfg.JWTSecretKey)),
		User:      controllers.NewUserController(users),
		Predict:   controllers.NewPredictController(assessments),
		History:   controllers.NewHistoryController(assessments),
		Stats:     controllers.NewStatsController(services.NewStatsService(predictions)),
		Recommend: controllers.NewRecommendController(services.NewRecommendationService(catalog, predictions)),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name":     "ayu",
		"email":    "ayu@example.com",
		"password": "Str0ngPass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email":    "ayu@example.com",
		"password": "Str0ngPass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("login did not return a token")
	}
	return token
}

func TestPipelineRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/predict/latest", "/history", "/summary", "/dashboard", "/recommend/food"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without token returned %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestPredictFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	input := map[string]float64{
		"Pregnancies":              2,
		"Glucose":                  150,
		"BloodPressure":            90,
		"BMI":                      35.0,
		"DiabetesPedigreeFunction": 0.3,
	}

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/predict", token, input)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("predict returned %d", resp.StatusCode)
	}
	if created["glucose"].(float64) != 150 || created["bmi"].(float64) != 35.0 {
		t.Fatalf("stored record does not echo input: %v", created)
	}
	prob := created["probability"].(float64)
	if prob < 0 || prob > 100 {
		t.Fatalf("probability out of range: %v", prob)
	}

	resp, latest := doJSON(t, http.MethodGet, srv.URL+"/predict/latest", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest returned %d", resp.StatusCode)
	}
	if latest["id"] != created["id"] {
		t.Fatalf("latest returned id %v, want %v", latest["id"], created["id"])
	}

	resp, rec := doJSON(t, http.MethodGet, srv.URL+"/recommend/food", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommend returned %d", resp.StatusCode)
	}
	menus, _ := rec["recommendations"].([]interface{})
	// Glucose 150 activates the carbohydrate ceiling.
	for _, m := range menus {
		if m == "Fried Rice" {
			t.Fatal("carb-rich item recommended despite high glucose")
		}
	}
}

func TestPredictRejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/predict", token, map[string]float64{
		"Pregnancies":              2,
		"Glucose":                  150,
		"BloodPressure":            -10,
		"BMI":                      35.0,
		"DiabetesPedigreeFunction": 0.3,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid input returned %d, want 400", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/predict", token, map[string]float64{
		"Glucose": 150,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing fields returned %d, want 400", resp.StatusCode)
	}
}

func TestHistoryPaginationValidation(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	for _, q := range []string{"limit=0", "limit=501", "limit=x", "offset=-1"} {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/history?"+q, token, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("history?%s returned %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestSummaryEmptyUser(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary returned %d", resp.StatusCode)
	}
	if body["total_predictions"].(float64) != 0 {
		t.Fatalf("expected zero total, got %v", body["total_predictions"])
	}
	if body["avg_probability"] != nil {
		t.Fatalf("expected absent average, got %v", body["avg_probability"])
	}
}

func TestDashboardStableShapeForUnknownChartParam(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	doJSON(t, http.MethodPost, srv.URL+"/predict", token, map[string]float64{
		"Pregnancies":              1,
		"Glucose":                  120,
		"BloodPressure":            70,
		"BMI":                      24,
		"DiabetesPedigreeFunction": 0.2,
	})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/dashboard?chart_param=banana", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard returned %d, unknown chart_param must not fail", resp.StatusCode)
	}
	points, _ := body["chart_data"].([]interface{})
	if len(points) != 1 {
		t.Fatalf("expected 1 chart point, got %d", len(points))
	}
	pt := points[0].(map[string]interface{})
	if pt["value"] != nil {
		t.Fatalf("expected null value, got %v", pt["value"])
	}
}

func TestHistoryGetForeignRecord(t *testing.T) {
	srv := newTestServer(t)
	tokenA := registerAndLogin(t, srv)

	// Second user.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"name": "budi", "email": "budi@example.com", "password": "Str0ngPass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", resp.StatusCode)
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "budi@example.com", "password": "Str0ngPass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	tokenB := body["access_token"].(string)

	_, created := doJSON(t, http.MethodPost, srv.URL+"/predict", tokenA, map[string]float64{
		"Pregnancies":              2,
		"Glucose":                  150,
		"BloodPressure":            90,
		"BMI":                      35,
		"DiabetesPedigreeFunction": 0.3,
	})
	id := created["id"].(float64)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/history/%d", srv.URL, int(id)), tokenB, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign record returned %d, want 404", resp.StatusCode)
	}
}
