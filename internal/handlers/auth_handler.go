package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/models"
	"heartguard-backend/internal/repository"
	"heartguard-backend/pkg/utils"
)

func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid registration payload", err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "failed to process password", nil)
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
	}

	if err := repository.Users(database.DB).Create(c.Request.Context(), &user); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "registration successful", gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
		"role":     user.Role,
	})
}

func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "invalid login payload", nil)
		return
	}

	users := repository.Users(database.DB)
	user, err := users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "invalid email or password", nil)
		return
	}

	// Store the device token so pushes reach the device that logged in.
	if input.FCMToken != "" {
		database.DB.Model(user).Update("fcm_token", input.FCMToken)
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func GetUserProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.APIResponse(c, http.StatusUnauthorized, false, "unauthorized", nil)
		return
	}

	user, err := repository.Users(database.DB).GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "profile", user)
}

// DeleteUser removes the caller's own account. Accounts that still own
// records (reports, appointments, ...) are protected by the restrict
// rule and come back as a conflict.
func DeleteUser(c *gin.Context) {
	id := c.Param("id")
	callerID, _ := c.Get("userID")
	if callerID.(string) != id {
		utils.APIResponse(c, http.StatusForbidden, false, "cannot delete another user's account", nil)
		return
	}

	if err := repository.Users(database.DB).Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "account deleted", nil)
}
