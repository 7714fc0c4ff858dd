package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/app/services"
	"github.com/okalra/studentms/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	exportService  services.StudentExportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, exportService services.StudentExportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		exportService:  exportService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Registers a new student after validating email uniqueness, department activity, and course assignments
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Student ID already exists"
// @Failure 422 {object} dto.ErrorResponse "Business rule violated"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(middleware.BindingErrorDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// UpdateStudent handles student updates
// @Summary Update a student
// @Description Updates a student's fields and associations; the business student ID itself never changes
// @Tags students
// @Accept json
// @Produce json
// @Param studentId path string true "Business student ID"
// @Param request body dto.UpdateStudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(middleware.BindingErrorDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// SoftDeleteStudent handles student soft deletion
// @Summary Soft-delete a student
// @Description Marks a student inactive; the record is never physically removed
// @Tags students
// @Produce json
// @Param studentId path string true "Business student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student soft-deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId} [delete]
func (c *StudentController) SoftDeleteStudent(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	if err := c.studentService.SoftDeleteStudent(ctx, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deactivated successfully"},
		Timestamp: time.Now(),
	})
}

// ToggleStudentStatus handles student status toggling
// @Summary Toggle a student's active status
// @Tags students
// @Produce json
// @Param studentId path string true "Business student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "New student state"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId}/status [patch]
func (c *StudentController) ToggleStudentStatus(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	student, err := c.studentService.ToggleStudentStatus(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// ListStudents handles filtered student listing
// @Summary List students
// @Description Lists students with optional free-text and active-status filtering, pagination, and sorting
// @Tags students
// @Produce json
// @Param filter query string false "Case-insensitive substring matched against student ID, first name, last name, and email"
// @Param isActive query bool false "Filter by active status"
// @Param page query int false "Page number; 0 and 1 both address the first page"
// @Param size query int false "Page size"
// @Param sortBy query string false "Sort field" Enums(id, studentId, firstName, lastName, email, createdAt)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(middleware.BindingErrorDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.studentService.ListStudents(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// ExportStudents handles tabular student export
// @Summary Export students
// @Description Exports the full filtered student set, sorted by record ID, as CSV or XLSX
// @Tags students
// @Produce application/octet-stream
// @Param filter query string false "Case-insensitive substring filter"
// @Param isActive query bool false "Filter by active status"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Exported document"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Router /students/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	var filter *string
	if value, ok := ctx.GetQuery("filter"); ok {
		filter = &value
	}

	var isActive *bool
	if value, ok := ctx.GetQuery("isActive"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid isActive parameter")
			errorDetail = errorDetail.WithDetails("isActive must be a boolean value")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		isActive = &parsed
	}

	format := ctx.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unsupported export format")
		errorDetail = errorDetail.WithDetails("format must be one of: csv, xlsx")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	students, err := c.studentService.ExportStudents(ctx, filter, isActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("students_%s.%s", time.Now().Format("20060102_150405"), format)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	switch format {
	case "xlsx":
		ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = c.exportService.ExportExcel(ctx.Writer, students)
	default:
		ctx.Header("Content-Type", "text/csv")
		err = c.exportService.ExportCSV(ctx.Writer, students)
	}

	if err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}
