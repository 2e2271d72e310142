package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/models"
	"heartguard-backend/internal/repository"
	"heartguard-backend/internal/validation"
	"heartguard-backend/pkg/utils"
)

const dateLayout = "2006-01-02"

func GetPatients(c *gin.Context) {
	patients, err := repository.Patients(database.DB).GetAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "patients", patients)
}

func GetPatient(c *gin.Context) {
	patient, err := repository.Patients(database.DB).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "patient", patient)
}

func CreatePatient(c *gin.Context) {
	var input models.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid patient payload", err.Error())
		return
	}

	dob, err := time.Parse(dateLayout, input.DateOfBirth)
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "dateOfBirth must be YYYY-MM-DD", nil)
		return
	}

	patient := models.Patient{
		ID:          uuid.NewString(),
		Name:        input.Name,
		DateOfBirth: dob,
		UserID:      input.UserID,
	}

	if err := validation.ValidatePatient(&patient); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if err := repository.Patients(database.DB).Create(c.Request.Context(), &patient); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "patient created", patient)
}

func UpdatePatient(c *gin.Context) {
	var input models.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid patient payload", err.Error())
		return
	}

	dob, err := time.Parse(dateLayout, input.DateOfBirth)
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "dateOfBirth must be YYYY-MM-DD", nil)
		return
	}

	candidate := models.Patient{Name: input.Name, DateOfBirth: dob}
	if err := validation.ValidatePatient(&candidate); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	err = repository.Patients(database.DB).Update(c.Request.Context(), c.Param("id"), map[string]any{
		"name":          input.Name,
		"date_of_birth": dob,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func DeletePatient(c *gin.Context) {
	if err := repository.Patients(database.DB).Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "patient deleted", nil)
}
