package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/handlers"
	"heartguard-backend/internal/inference"
	"heartguard-backend/internal/middleware"
	"heartguard-backend/internal/models"
	"heartguard-backend/internal/notify"
	"heartguard-backend/internal/repository"
	"heartguard-backend/pkg/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func mockClassifier() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/prediction/predict", func(w http.ResponseWriter, r *http.Request) {
		var f models.ClinicalFeatures
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(inference.Classification{
			HasHeartDisease: f.Chol > 280 || f.Trestbps > 140,
			Confidence:      0.87,
			RiskFactors:     []string{"High cholesterol", "Age over 50"},
			Recommendations: []string{"Regular exercise", "Dietary changes"},
		})
	})
	mux.HandleFunc("/api/prediction/train", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(inference.TrainResult{Message: "Model training started", Status: "Training"})
	})
	return mux
}

// setupRouter wires a router against a fresh database and a mock
// classifier, mirroring the production route table minus the global
// middleware that does not matter under test.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	classifier := httptest.NewServer(mockClassifier())
	t.Cleanup(classifier.Close)

	notifier, err := notify.NewService(context.Background(), "", db)
	require.NoError(t, err)
	handlers.Setup(inference.NewClient(classifier.URL), notifier)

	r := gin.New()
	r.POST("/users/register", handlers.Register)
	r.POST("/users/login", handlers.Login)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/profile", handlers.GetUserProfile)
		protected.DELETE("/users/:id", handlers.DeleteUser)

		protected.GET("/patients", handlers.GetPatients)
		protected.GET("/patients/:id", handlers.GetPatient)
		protected.POST("/patients", handlers.CreatePatient)
		protected.PUT("/patients/:id", handlers.UpdatePatient)
		protected.DELETE("/patients/:id", handlers.DeletePatient)

		protected.GET("/doctors", handlers.GetDoctors)
		protected.GET("/doctors/:id", handlers.GetDoctor)
		protected.POST("/doctors", handlers.CreateDoctor)
		protected.PUT("/doctors/:id", handlers.UpdateDoctor)
		protected.DELETE("/doctors/:id", handlers.DeleteDoctor)

		protected.GET("/predictions", handlers.GetPredictions)
		protected.GET("/predictions/:id", handlers.GetPrediction)
		protected.POST("/predictions", handlers.CreatePrediction)
		protected.PUT("/predictions/:id", handlers.UpdatePrediction)
		protected.DELETE("/predictions/:id", handlers.DeletePrediction)

		protected.POST("/api/prediction/predict", handlers.MachinePredict)
		protected.POST("/api/prediction/train", middleware.DoctorOnly(), handlers.TrainModel)

		handlers.RegisterRecordRoutes[models.Notification](protected, "/notifications", "notification", "user_id")
		handlers.RegisterRecordRoutes[models.Report](protected, "/reports", "report", "user_id")
	}

	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func doctorToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(uuid.NewString(), "doctor")
	require.NoError(t, err)
	return token
}

func patientToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(uuid.NewString(), "patient")
	require.NoError(t, err)
	return token
}

func seedParents(t *testing.T) (patientID, doctorID string) {
	t.Helper()
	ctx := context.Background()
	patient := models.Patient{
		ID:          uuid.NewString(),
		Name:        "John Patient",
		DateOfBirth: time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repository.Patients(database.DB).Create(ctx, &patient))
	doctor := models.Doctor{ID: uuid.NewString(), Name: "Dr. Jane Doe"}
	require.NoError(t, repository.Doctors(database.DB).Create(ctx, &doctor))
	return patient.ID, doctor.ID
}

func validFeaturesBody() map[string]any {
	return map[string]any{
		"age": 45, "sex": 1, "cp": 3, "trestbps": 130, "chol": 250, "fbs": 1,
		"restecg": 1, "thalach": 150, "exang": 0, "oldpeak": 2.3, "slope": 2, "ca": 0, "thal": 3,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/users/register", "", map[string]any{
		"fullName": "Dr. John Smith",
		"email":    "smith@example.com",
		"password": "Secret123!",
		"role":     "doctor",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/users/login", "", map[string]any{
		"email":    "smith@example.com",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginData struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.NotEmpty(t, loginData.Token)
	assert.Equal(t, "doctor", loginData.User.Role)

	w = doRequest(t, r, http.MethodPost, "/users/login", "", map[string]any{
		"email":    "smith@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The issued token opens protected routes.
	w = doRequest(t, r, http.MethodGet, "/users/profile", loginData.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	r := setupRouter(t)

	body := map[string]any{
		"fullName": "First", "email": "dup@example.com",
		"password": "Secret123!", "role": "patient",
	}
	w := doRequest(t, r, http.MethodPost, "/users/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/users/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/patients", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatientCRUD(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)

	w := doRequest(t, r, http.MethodPost, "/patients", token, map[string]any{
		"name":        "John Patient",
		"dateOfBirth": "1980-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Patient
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	w = doRequest(t, r, http.MethodGet, "/patients/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPut, "/patients/"+created.ID, token, map[string]any{
		"name":        "John Q. Patient",
		"dateOfBirth": "1980-01-15",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, "/patients/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Patient
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "John Q. Patient", fetched.Name)

	w = doRequest(t, r, http.MethodDelete, "/patients/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/patients/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePatientValidation(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)

	future := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	w := doRequest(t, r, http.MethodPost, "/patients", token, map[string]any{
		"name":        "Unborn",
		"dateOfBirth": future,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/patients", token, map[string]any{
		"name":        "Bad Date",
		"dateOfBirth": "15/01/1980",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManualPredictionFlow(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = patientID
	body["doctorId"] = doctorID
	body["hasHeartDisease"] = true
	body["num"] = 2

	w := doRequest(t, r, http.MethodPost, "/predictions", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.PredictionDTO
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.PredictionID)
	assert.False(t, created.DateAdded.IsZero())

	// Read back: identical features plus nested parent DTOs.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/predictions/%d", created.PredictionID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.PredictionDTO
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ClinicalFeatures, fetched.ClinicalFeatures)
	assert.Equal(t, 2, fetched.Num)
	require.NotNil(t, fetched.Patient)
	require.NotNil(t, fetched.Doctor)
	assert.Equal(t, "John Patient", fetched.Patient.Name)
	assert.Equal(t, "Dr. Jane Doe", fetched.Doctor.Name)
}

func TestManualPredictionInconsistentOutcome(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = patientID
	body["doctorId"] = doctorID
	body["hasHeartDisease"] = true
	body["num"] = 0

	w := doRequest(t, r, http.MethodPost, "/predictions", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictionMissingPatientLeavesNothingBehind(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	_, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = uuid.NewString()
	body["doctorId"] = doctorID
	body["hasHeartDisease"] = false
	body["num"] = 0

	w := doRequest(t, r, http.MethodPost, "/predictions", token, body)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/predictions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.PredictionDTO
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestDeleteDoctorWithPredictions(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = patientID
	body["doctorId"] = doctorID
	body["hasHeartDisease"] = false
	body["num"] = 0

	w := doRequest(t, r, http.MethodPost, "/predictions", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/doctors/"+doctorID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdatePredictionCorrection(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = patientID
	body["doctorId"] = doctorID
	body["hasHeartDisease"] = false
	body["num"] = 0

	w := doRequest(t, r, http.MethodPost, "/predictions", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.PredictionDTO
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &created))

	body["hasHeartDisease"] = true
	body["num"] = 1
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/predictions/%d", created.PredictionID), token, body)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/predictions/%d", created.PredictionID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.PredictionDTO
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.True(t, fetched.HasHeartDisease)
	assert.Equal(t, 1, fetched.Num)
}

func TestMachinePredict(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := map[string]any{
		"patientId": patientID, "doctorId": doctorID,
		"age": 61, "sex": 1, "cp": 2, "trestbps": 150, "chol": 320, "fbs": 1,
		"restecg": 1, "thalach": 120, "exang": 1, "oldpeak": 2.8, "slope": 1, "ca": 2, "thal": 2,
	}

	w := doRequest(t, r, http.MethodPost, "/api/prediction/predict", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var result struct {
		Prediction      models.PredictionDTO `json:"prediction"`
		Confidence      float64              `json:"confidence"`
		RiskFactors     []string             `json:"riskFactors"`
		Recommendations []string             `json:"recommendations"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Prediction.HasHeartDisease)
	assert.Equal(t, 1, result.Prediction.Num)
	assert.InDelta(t, 0.87, result.Confidence, 0.001)
	assert.NotEmpty(t, result.RiskFactors)

	// Low-risk vitals flip the verdict and keep num at zero.
	body["trestbps"] = 110
	body["chol"] = 180
	w = doRequest(t, r, http.MethodPost, "/api/prediction/predict", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Prediction.HasHeartDisease)
	assert.Equal(t, 0, result.Prediction.Num)
}

func TestMachinePredictRejectsBadFeatures(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)
	patientID, doctorID := seedParents(t)

	body := validFeaturesBody()
	body["patientId"] = patientID
	body["doctorId"] = doctorID
	body["sex"] = 7

	w := doRequest(t, r, http.MethodPost, "/api/prediction/predict", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMachinePredictNotifiesLinkedAccount(t *testing.T) {
	r := setupRouter(t)
	token := doctorToken(t)

	user := models.User{
		ID: uuid.NewString(), FullName: "John Patient", Email: "john@example.com",
		PasswordHash: "hash", Role: models.RolePatient,
	}
	require.NoError(t, repository.Users(database.DB).Create(context.Background(), &user))

	patient := models.Patient{
		ID: uuid.NewString(), Name: "John Patient",
		DateOfBirth: time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC),
		UserID:      &user.ID,
	}
	require.NoError(t, repository.Patients(database.DB).Create(context.Background(), &patient))
	doctor := models.Doctor{ID: uuid.NewString(), Name: "Dr. Jane Doe"}
	require.NoError(t, repository.Doctors(database.DB).Create(context.Background(), &doctor))

	body := validFeaturesBody()
	body["patientId"] = patient.ID
	body["doctorId"] = doctor.ID
	w := doRequest(t, r, http.MethodPost, "/api/prediction/predict", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodGet, "/notifications?userId="+user.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []models.Notification
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].NotificationText, "John Patient")
}

func TestTrainEndpointRoleGate(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/prediction/train?dataPath=heart.csv", patientToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/prediction/train?dataPath=heart.csv", doctorToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteUserSelfOnly(t *testing.T) {
	r := setupRouter(t)

	victim := models.User{
		ID: uuid.NewString(), FullName: "Victim", Email: "victim@example.com",
		PasswordHash: "hash", Role: models.RolePatient,
	}
	require.NoError(t, repository.Users(database.DB).Create(context.Background(), &victim))

	w := doRequest(t, r, http.MethodDelete, "/users/"+victim.ID, patientToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	ownToken, err := utils.GenerateToken(victim.ID, "patient")
	require.NoError(t, err)
	w = doRequest(t, r, http.MethodDelete, "/users/"+victim.ID, ownToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
