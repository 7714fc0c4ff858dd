package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/app/services"
	"github.com/okalra/studentms/internal/middleware"
)

// CourseController handles course lookup operations. Course lifecycle is
// managed through the owning department, so this surface is read-only.
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListActiveCourses handles the active-course lookup used when assigning
// courses to students
// @Summary List active courses
// @Description Lists active courses, optionally restricted to a single department
// @Tags courses
// @Produce json
// @Param departmentId query int false "Restrict to courses of this department"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Active courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Router /courses [get]
func (c *CourseController) ListActiveCourses(ctx *gin.Context) {
	var departmentID *int64
	if raw, ok := ctx.GetQuery("departmentId"); ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid departmentId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		departmentID = &parsed
	}

	courses, err := c.courseService.ListActiveCourses(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}
