package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/pkg/apperrors"
	"github.com/okalra/studentms/internal/pkg/dberrors"
	"github.com/okalra/studentms/internal/pkg/helpers"
	"github.com/okalra/studentms/internal/pkg/logger"
)

// StudentService defines the interface for student lifecycle operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	SoftDeleteStudent(ctx context.Context, studentID string) error
	ToggleStudentStatus(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context, filter *dto.StudentFilterRequest) (*dto.StudentListResponse, error)
	ExportStudents(ctx context.Context, filter *string, isActive *bool) ([]*models.Student, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo    StudentStore
	departmentRepo DepartmentStore
	courseRepo     CourseStore
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo StudentStore, departmentRepo DepartmentStore, courseRepo CourseStore) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
		courseRepo:     courseRepo,
	}
}

// resolvedStudentRefs bundles the validated department and courses, ready to
// attach to a student
type resolvedStudentRefs struct {
	department *models.Department
	courses    []models.Course
}

// CreateStudent validates and persists a new student. New students are always
// created active; the business student ID is immutable afterwards.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	exists, err := s.studentRepo.ExistsByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student ID: %w", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateResourceError(
			fmt.Sprintf("A student with ID '%s' already exists.", req.StudentID))
	}

	validated, err := s.validateStudentData(ctx, nil, req.Email, req.DepartmentID, req.CourseIDs)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		StudentID:    req.StudentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: validated.department.ID,
		IsActive:     true,
		Department:   validated.department,
		Courses:      validated.courses,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if dberrors.IsUniqueViolation(err) {
			// Race between the existence checks and the insert
			return nil, apperrors.NewConflictError("A conflicting student record already exists.")
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("studentId", student.StudentID).Int64("id", student.ID).Msg("Student created")
	return mapStudentToResponse(student), nil
}

// UpdateStudent validates and persists changes to an existing student, looked
// up by business student ID
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.findByBusinessID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// The existing email is the "current" reference so an unchanged email
	// never trips the uniqueness rule against the student's own row
	validated, err := s.validateStudentData(ctx, &student.Email, req.Email, req.DepartmentID, req.CourseIDs)
	if err != nil {
		return nil, err
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.DepartmentID = validated.department.ID
	student.Department = validated.department
	student.Courses = validated.courses

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("A conflicting student record already exists.")
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	logger.Info().Str("studentId", student.StudentID).Msg("Student updated")
	return mapStudentToResponse(student), nil
}

// SoftDeleteStudent marks a student inactive. The row is never removed.
func (s *studentServiceImpl) SoftDeleteStudent(ctx context.Context, studentID string) error {
	student, err := s.findByBusinessID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.SetStatus(ctx, student, false); err != nil {
		return fmt.Errorf("error soft-deleting student: %w", err)
	}

	logger.Info().Str("studentId", studentID).Msg("Student soft-deleted")
	return nil
}

// ToggleStudentStatus inverts the student's active flag and returns the new
// state
func (s *studentServiceImpl) ToggleStudentStatus(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.findByBusinessID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.SetStatus(ctx, student, !student.IsActive); err != nil {
		return nil, fmt.Errorf("error toggling student status: %w", err)
	}

	logger.Info().Str("studentId", studentID).Bool("isActive", student.IsActive).Msg("Student status toggled")
	return mapStudentToResponse(student), nil
}

// ListStudents retrieves a page of students matching the filter
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter *dto.StudentFilterRequest) (*dto.StudentListResponse, error) {
	students, total, err := s.studentRepo.List(ctx,
		filter.Filter, filter.IsActive, filter.SortBy, filter.SortDir, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, *mapStudentToResponse(student))
	}

	return &dto.StudentListResponse{
		Students:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// ExportStudents retrieves the full unpaginated set matching the filter,
// sorted by surrogate ID, for the export renderer
func (s *studentServiceImpl) ExportStudents(ctx context.Context, filter *string, isActive *bool) ([]*models.Student, error) {
	students, err := s.studentRepo.ListAll(ctx, filter, isActive)
	if err != nil {
		return nil, fmt.Errorf("error exporting students: %w", err)
	}
	return students, nil
}

// validateStudentData is the central validation for student data, used by
// both create and update. It checks, against current persisted state:
//  1. the new email is not used by another student (skipped when the email is
//     unchanged, case-insensitively)
//  2. the department exists and is active
//  3. every requested course exists and is active
//  4. every requested course belongs to the requested department
//
// A missing or inactive department aborts immediately as a business-rule
// failure since no valid student can exist without one. All other rule
// failures accumulate so the caller sees every problem in one response.
// Read-only against the store.
func (s *studentServiceImpl) validateStudentData(ctx context.Context, currentEmail *string, newEmail string, departmentID int64, courseIDs []int64) (*resolvedStudentRefs, error) {
	var errs []string

	emailChanged := currentEmail == nil || !strings.EqualFold(*currentEmail, newEmail)
	if emailChanged {
		inUse, err := s.studentRepo.EmailInUse(ctx, newEmail)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if inUse {
			errs = append(errs, fmt.Sprintf("Email '%s' is already in use by another student.", newEmail))
		}
	}

	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error checking department: %w", err)
	}
	if department == nil {
		return nil, apperrors.NewBusinessRuleError(
			fmt.Sprintf("Department with ID '%d' does not exist.", departmentID))
	}
	if !department.IsActive {
		return nil, apperrors.NewBusinessRuleError(
			"Cannot assign student to an inactive department: " + department.Name)
	}

	var courses []models.Course
	if len(courseIDs) > 0 {
		courses, err = s.courseRepo.GetByIDsWithDepartment(ctx, courseIDs)
		if err != nil {
			return nil, fmt.Errorf("error checking courses: %w", err)
		}
		errs = append(errs, checkCourseAssignments(department, courseIDs, courses)...)
	}

	if len(errs) > 0 {
		logger.Warn().Int("errors", len(errs)).Strs("messages", errs).Msg("Student validation failed")
		return nil, apperrors.NewValidationError(
			"Student data is invalid. Please correct the following issues.", errs)
	}

	return &resolvedStudentRefs{department: department, courses: courses}, nil
}

// checkCourseAssignments validates the resolved courses against the requested
// IDs and the target department, returning one message per violated rule
func checkCourseAssignments(department *models.Department, requestedIDs []int64, found []models.Course) []string {
	var errs []string

	if len(found) != len(requestedIDs) {
		foundIDs := make(map[int64]bool, len(found))
		for _, course := range found {
			foundIDs[course.ID] = true
		}
		var missing []int64
		for _, id := range requestedIDs {
			if !foundIDs[id] {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("The following course IDs do not exist: %v", missing))
		}
	}

	for _, course := range found {
		if !course.IsActive {
			errs = append(errs, fmt.Sprintf("Course '%s' is inactive and cannot be assigned.", course.Name))
		}
		if course.DepartmentID != department.ID {
			owningName := ""
			if course.Department != nil {
				owningName = course.Department.Name
			}
			errs = append(errs, fmt.Sprintf("Course '%s' belongs to the '%s' department, not the '%s' department.",
				course.Name, owningName, department.Name))
		}
	}

	return errs
}

// findByBusinessID looks up a student by business ID or fails with a
// not-found error
func (s *studentServiceImpl) findByBusinessID(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.NewResourceNotFoundError("Student not found with ID: " + studentID)
	}
	return student, nil
}

// mapStudentToResponse builds the resolved student view
func mapStudentToResponse(student *models.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		StudentID: student.StudentID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Email:     student.Email,
		IsActive:  student.IsActive,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
		Courses:   make([]dto.CourseResponse, 0, len(student.Courses)),
	}

	resp.Department = dto.DepartmentSummary{ID: student.DepartmentID}
	if student.Department != nil {
		resp.Department.Name = student.Department.Name
	}

	for _, course := range student.Courses {
		resp.Courses = append(resp.Courses, dto.CourseResponse{
			ID:          course.ID,
			Name:        course.Name,
			Description: course.Description,
			IsActive:    course.IsActive,
		})
	}

	return resp
}
