package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kursroster/backend/internal/app/controllers"
	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// The course catalog feeds the login course picker, so it stays public.
	v1.GET("/courses", courseController.GetCourses)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)

			// Field-level authorization for updates lives in the policy, so
			// PUT is open to both roles; create and delete are admin-only.
			students.PUT("/:id", studentController.UpdateStudent)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.AdminRequired())
			{
				studentsAdmin.POST("", studentController.CreateStudent)
				studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
