package routes

import (
	"net/http"
	"time"

	"ehealth/handlers"
	"ehealth/middleware"
	"ehealth/models"
	"ehealth/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.User.LogoutHandler)
	}
}

// RegisterUserRoutes registers user directory and admin user management endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("/doctors", hb.User.GetDoctorsHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/my-doctors", hb.User.GetMyDoctorsHandler)
		api.GET("/all", middleware.AdminOnly(), hb.User.GetAllUsersHandler)
		api.POST("", middleware.AdminOnly(), hb.User.CreateUserHandler)
		api.PUT("/:id/status", middleware.AdminOnly(), hb.User.UpdateUserStatusHandler)
		api.GET("/:id", hb.User.GetUserByIDHandler)
		api.PUT("/:id", hb.User.UpdateUserHandler)
	}
}

// RegisterAvailabilityRoutes registers weekly availability and slot lookup.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.PUT("", middleware.RequireRole("Not authorized", models.RoleDoctor), hb.Availability.UpdateAvailabilityHandler)
		api.GET("/:doctorId", hb.Availability.GetAvailabilityHandler)
		api.GET("/:doctorId/slots", hb.Availability.GetSlotsHandler)
	}
}

func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.Appointment.BookHandler)
		api.GET("/:userId", hb.Appointment.ListHandler)
		api.PUT("/:id/status", hb.Appointment.UpdateStatusHandler)
		api.PUT("/:id/notes", hb.Appointment.UpdateNotesHandler)
	}
}

func RegisterMessageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/messages")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.Message.SendHandler)
		api.GET("/conversations", hb.Message.ConversationsHandler)
		api.GET("/conversation/:userId", hb.Message.ConversationHandler)
		api.PUT("/read/:senderId", hb.Message.MarkReadHandler)
	}
}

func RegisterMedicalHistoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medical-history")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/:patientId", hb.Record.ListHandler)
		api.POST("", hb.Record.CreateHandler)
		api.PUT("/:recordId", hb.Record.UpdateHandler)
	}
}

func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/upload", hb.Report.UploadHandler)
		api.GET("/:patientId", hb.Report.ListHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo), middleware.AdminOnly())
		adminGroup.GET("/stats", hb.Admin.StatsHandler)
		adminGroup.GET("/reports/:type", hb.Admin.ReportHandler)
	}
}

// RegisterHealthRoute exposes the last dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterMessageRoutes(r, hb)
	RegisterMedicalHistoryRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
