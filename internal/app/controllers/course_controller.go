package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/app/services"
	"github.com/kursroster/backend/internal/middleware"
)

// CourseController exposes the derived course catalog
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetCourses lists the course catalog
// @Summary List courses
// @Description Returns the distinct set of course names referenced anywhere in the roster, in display order
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Course catalog"
// @Failure 503 {object} dto.ErrorResponse "Roster storage unavailable"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CourseListResponse{Courses: courses},
		Timestamp: time.Now(),
	})
}
