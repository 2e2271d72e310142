package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"heartguard-backend/internal/handlers"
	"heartguard-backend/internal/middleware"
	"heartguard-backend/internal/models"
	"heartguard-backend/pkg/utils"
)

func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		utils.APIResponse(c, http.StatusOK, true, "ok", gin.H{"timestamp": time.Now()})
	})

	// Public routes: account creation and login.
	users := r.Group("/users")
	{
		users.POST("/register", handlers.Register)
		users.POST("/login", handlers.Login)
	}

	// Everything else requires a bearer token.
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

		// Machine-assisted classification via the external service.
		ml := protected.Group("/api/prediction")
		{
			ml.POST("/predict", handlers.MachinePredict)
			ml.POST("/train", middleware.DoctorOnly(), handlers.TrainModel)
		}

		handlers.RegisterRecordRoutes[models.Report](protected, "/reports", "report", "user_id")
		handlers.RegisterRecordRoutes[models.Appointment](protected, "/appointments", "appointment", "user_id")
		handlers.RegisterRecordRoutes[models.HealthData](protected, "/healthdata", "health data", "user_id")
		handlers.RegisterRecordRoutes[models.Message](protected, "/messages", "message", "user_id")
		handlers.RegisterRecordRoutes[models.Notification](protected, "/notifications", "notification", "user_id")
		handlers.RegisterRecordRoutes[models.Medication](protected, "/medications", "medication", "user_id")
		handlers.RegisterRecordRoutes[models.TreatmentPlan](protected, "/treatment-plans", "treatment plan", "user_id")
		handlers.RegisterRecordRoutes[models.Suggestion](protected, "/suggestions", "suggestion", "patient_id")
	}
}
