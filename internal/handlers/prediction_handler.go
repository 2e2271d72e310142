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

func GetPredictions(c *gin.Context) {
	predictions, err := repository.Predictions(database.DB).GetAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	dtos := make([]*models.PredictionDTO, 0, len(predictions))
	for i := range predictions {
		dtos = append(dtos, predictions[i].DTO())
	}
	utils.APIResponse(c, http.StatusOK, true, "predictions", dtos)
}

func GetPrediction(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	prediction, err := repository.Predictions(database.DB).GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "prediction", prediction.DTO())
}

// CreatePrediction is the manual-entry path: the clinician supplies the
// outcome, which still has to satisfy the num/hasHeartDisease
// consistency rule.
func CreatePrediction(c *gin.Context) {
	var input models.CreatePredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid prediction payload", err.Error())
		return
	}

	predictionDate := time.Now()
	if input.PredictionDate != nil {
		predictionDate = *input.PredictionDate
	}

	prediction := models.Prediction{
		PatientID:        input.PatientID,
		DoctorID:         input.DoctorID,
		HasHeartDisease:  input.HasHeartDisease,
		PredictionDate:   predictionDate,
		ClinicalFeatures: input.ClinicalFeatures,
		Num:              input.Num,
	}

	if err := validation.ValidatePrediction(&prediction); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if err := repository.Predictions(database.DB).Create(c.Request.Context(), &prediction); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if notifier != nil {
		notifier.PredictionRecorded(c.Request.Context(), &prediction)
	}

	utils.APIResponse(c, http.StatusCreated, true, "prediction created", prediction.DTO())
}

// UpdatePrediction applies an administrative correction to a stored
// assessment. The corrected row must satisfy the same invariants as a
// new one.
func UpdatePrediction(c *gin.Context) {
	var input models.CreatePredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid prediction payload", err.Error())
		return
	}

	repo := repository.Predictions(database.DB)
	prediction, err := repo.GetByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	prediction.PatientID = input.PatientID
	prediction.DoctorID = input.DoctorID
	prediction.HasHeartDisease = input.HasHeartDisease
	prediction.ClinicalFeatures = input.ClinicalFeatures
	prediction.Num = input.Num
	if input.PredictionDate != nil {
		prediction.PredictionDate = *input.PredictionDate
	}
	prediction.Patient = nil
	prediction.Doctor = nil

	if err := validation.ValidatePrediction(prediction); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if err := repo.Save(c.Request.Context(), prediction); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func DeletePrediction(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if err := repository.Predictions(database.DB).Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "prediction deleted", nil)
}
