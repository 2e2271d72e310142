package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/models"
	"heartguard-backend/internal/repository"
	"heartguard-backend/internal/validation"
	"heartguard-backend/pkg/utils"
)

// MachinePredict is the machine-assisted path: validate first to avoid
// a wasted round-trip, ask the external classifier, then persist a
// Prediction carrying its verdict. The classifier is binary, so num is
// only ever 0 or 1 here; multi-class severity staging is out of reach
// of this model.
func MachinePredict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid predict payload", err.Error())
		return
	}

	if err := validation.ValidateFeatures(req.ClinicalFeatures); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	result, err := classifier.Classify(c.Request.Context(), req.ClinicalFeatures)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	num := 0
	if result.HasHeartDisease {
		num = 1
	}

	prediction := models.Prediction{
		PatientID:        req.PatientID,
		DoctorID:         req.DoctorID,
		HasHeartDisease:  result.HasHeartDisease,
		PredictionDate:   time.Now(),
		ClinicalFeatures: req.ClinicalFeatures,
		Num:              num,
	}

	if err := repository.Predictions(database.DB).Create(c.Request.Context(), &prediction); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if notifier != nil {
		notifier.PredictionRecorded(c.Request.Context(), &prediction)
	}

	utils.APIResponse(c, http.StatusCreated, true, "prediction recorded", gin.H{
		"prediction":      prediction.DTO(),
		"confidence":      result.Confidence,
		"riskFactors":     result.RiskFactors,
		"recommendations": result.Recommendations,
	})
}

// TrainModel relays a retraining request to the classifier service.
// The job runs remotely and is not awaited.
func TrainModel(c *gin.Context) {
	result, err := classifier.Train(c.Request.Context(), c.Query("dataPath"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, result.Message, result)
}
