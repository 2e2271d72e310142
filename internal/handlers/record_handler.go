package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heartguard-backend/internal/database"
	"heartguard-backend/internal/repository"
	"heartguard-backend/pkg/utils"
)

// RegisterRecordRoutes mounts the shared CRUD surface for one ancillary
// record type (reports, appointments, ...). These are simple keyed
// records behind the generic store; ownerColumn is the foreign key used
// for the ?userId= list filter.
func RegisterRecordRoutes[T any](rg *gin.RouterGroup, path, entity, ownerColumn string) {
	store := repository.NewStore[T](database.DB, entity)

	rg.GET(path, func(c *gin.Context) {
		var (
			records []T
			err     error
		)
		if owner := c.Query("userId"); owner != "" {
			records, err = store.ListBy(c.Request.Context(), ownerColumn, owner)
		} else {
			records, err = store.GetAll(c.Request.Context())
		}
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.APIResponse(c, http.StatusOK, true, entity+" list", records)
	})

	rg.GET(path+"/:id", func(c *gin.Context) {
		record, err := store.GetByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
		if err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.APIResponse(c, http.StatusOK, true, entity, record)
	})

	rg.POST(path, func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			utils.APIResponse(c, http.StatusBadRequest, false, "invalid "+entity+" payload", err.Error())
			return
		}
		if err := store.Create(c.Request.Context(), &record); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.APIResponse(c, http.StatusCreated, true, entity+" created", record)
	})

	rg.PUT(path+"/:id", func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			utils.APIResponse(c, http.StatusBadRequest, false, "invalid "+entity+" payload", err.Error())
			return
		}
		if err := store.Patch(c.Request.Context(), utils.StringToUint(c.Param("id")), &record); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	rg.DELETE(path+"/:id", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), utils.StringToUint(c.Param("id"))); err != nil {
			utils.ErrorResponse(c, err)
			return
		}
		utils.APIResponse(c, http.StatusOK, true, entity+" deleted", nil)
	})
}
