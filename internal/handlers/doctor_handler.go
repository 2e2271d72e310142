package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/models"
	"heartguard-backend/internal/repository"
	"heartguard-backend/internal/validation"
	"heartguard-backend/pkg/utils"
)

func GetDoctors(c *gin.Context) {
	doctors, err := repository.Doctors(database.DB).GetAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	dtos := make([]*models.DoctorDTO, 0, len(doctors))
	for i := range doctors {
		dtos = append(dtos, doctors[i].DTO())
	}
	utils.APIResponse(c, http.StatusOK, true, "doctors", dtos)
}

func GetDoctor(c *gin.Context) {
	doctor, err := repository.Doctors(database.DB).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "doctor", doctor.DTO())
}

func CreateDoctor(c *gin.Context) {
	var input models.CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid doctor payload", err.Error())
		return
	}

	doctor := models.Doctor{
		ID:     uuid.NewString(),
		Name:   input.Name,
		UserID: input.UserID,
	}

	if err := validation.ValidateDoctor(&doctor); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if err := repository.Doctors(database.DB).Create(c.Request.Context(), &doctor); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "doctor created", doctor)
}

func UpdateDoctor(c *gin.Context) {
	var input models.CreateDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid doctor payload", err.Error())
		return
	}

	candidate := models.Doctor{Name: input.Name}
	if err := validation.ValidateDoctor(&candidate); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	err := repository.Doctors(database.DB).Update(c.Request.Context(), c.Param("id"), map[string]any{
		"name": input.Name,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func DeleteDoctor(c *gin.Context) {
	if err := repository.Doctors(database.DB).Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "doctor deleted", nil)
}
