package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okalra/studentms/internal/app/controllers"
	"github.com/okalra/studentms/internal/middleware"
)

// Controllers groups the handler sets the router wires up
type Controllers struct {
	Student    *controllers.StudentController
	Department *controllers.DepartmentController
	Course     *controllers.CourseController
}

// SetupRouter configures the gin engine with middleware and all API routes
func SetupRouter(mode string, ctrl *Controllers) *gin.Engine {
	gin.SetMode(mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		students := v1.Group("/students")
		{
			students.POST("", ctrl.Student.CreateStudent)
			students.GET("", ctrl.Student.ListStudents)
			students.GET("/export", ctrl.Student.ExportStudents)
			students.PUT("/:studentId", ctrl.Student.UpdateStudent)
			students.DELETE("/:studentId", ctrl.Student.SoftDeleteStudent)
			students.PATCH("/:studentId/status", ctrl.Student.ToggleStudentStatus)
		}

		departments := v1.Group("/departments")
		{
			departments.POST("", ctrl.Department.CreateDepartment)
			departments.GET("", ctrl.Department.ListDepartments)
			departments.GET("/active", ctrl.Department.ListActiveDepartments)
			departments.GET("/:id", ctrl.Department.GetDepartment)
			departments.PUT("/:id", ctrl.Department.UpdateDepartment)
			departments.PATCH("/:id/status", ctrl.Department.ToggleDepartmentStatus)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", ctrl.Course.ListActiveCourses)
		}
	}

	return router
}
