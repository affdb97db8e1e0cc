package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/transcript-tracker/internal/app/controllers"
	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	transcriptController *controllers.RequestController,
	recommendationController *controllers.RequestController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.GET("/verify-reset-token", authController.VerifyResetToken)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		// The two request collections expose identical surfaces. Role checks
		// beyond coarse route guards live in the workflow service.
		mountRequests := func(path string, c *controllers.RequestController) *gin.RouterGroup {
			group := authenticated.Group(path)
			group.POST("", c.Create)
			group.GET("", c.List)
			group.GET("/all", c.ListAll)
			group.GET("/:id", c.Get)
			group.PUT("/:id/edit", c.StudentEdit)
			group.PATCH("/:id", c.StaffUpdate)
			group.POST("/:id/documents", c.UploadDocument)
			group.GET("/:id/documents/:docId", c.GetDocument)
			return group
		}
		mountRequests("/requests", transcriptController)
		recommendations := mountRequests("/recommendations", recommendationController)
		recommendations.PUT("/:id/co-curricular", recommendationController.CoCurricular)

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.PATCH("/:id/read", notificationController.MarkRead)
			notifications.PATCH("/read-all", notificationController.MarkAllRead)
		}

		// Staff roster, used by assignment pickers
		staff := authenticated.Group("/staff")
		staff.Use(authMiddleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
		{
			staff.GET("", adminController.ListStaff)
		}

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", adminController.ListUsers)
			admin.POST("/users", adminController.CreateUser)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.PUT("/users/:id/reset-password", adminController.ResetUserPassword)
			admin.GET("/analytics", adminController.Analytics)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
