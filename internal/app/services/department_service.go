package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/app/repositories"
	"github.com/okalra/studentms/internal/pkg/apperrors"
	"github.com/okalra/studentms/internal/pkg/dberrors"
	"github.com/okalra/studentms/internal/pkg/helpers"
	"github.com/okalra/studentms/internal/pkg/logger"
)

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartmentByID(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error)
	ListDepartments(ctx context.Context, filter *dto.DepartmentFilterRequest) (*dto.DepartmentListResponse, error)
	ListActiveDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentDetailResponse, error)
	ToggleDepartmentStatus(ctx context.Context, id int64) (*dto.DepartmentResponse, error)
}

// departmentServiceImpl implements DepartmentService
type departmentServiceImpl struct {
	departmentRepo DepartmentStore
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo DepartmentStore) DepartmentService {
	return &departmentServiceImpl{departmentRepo: departmentRepo}
}

// CreateDepartment creates a department and its nested courses in one commit
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	exists, err := s.departmentRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("error checking department name: %w", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateResourceError(
			fmt.Sprintf("Department with name '%s' already exists.", req.Name))
	}

	department := &models.Department{
		Name:     req.Name,
		IsActive: true,
		Courses:  make([]models.Course, 0, len(req.Courses)),
	}
	for _, course := range req.Courses {
		department.Courses = append(department.Courses, models.Course{
			Name:        course.Name,
			Description: course.Description,
			IsActive:    true,
		})
	}

	if err := s.departmentRepo.CreateWithCourses(ctx, department); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("A conflicting department already exists.")
		}
		return nil, fmt.Errorf("error creating department: %w", err)
	}

	logger.Info().Int64("departmentId", department.ID).Str("name", department.Name).
		Int("courses", len(department.Courses)).Msg("Department created")
	return mapDepartmentToResponse(department), nil
}

// GetDepartmentByID retrieves a department with its owned courses
func (s *departmentServiceImpl) GetDepartmentByID(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error) {
	department, err := s.departmentRepo.GetByIDWithCourses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	if department == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Department not found with ID: %d", id))
	}

	return mapDepartmentToDetailResponse(department), nil
}

// ListDepartments retrieves a page of departments matching the filter
func (s *departmentServiceImpl) ListDepartments(ctx context.Context, filter *dto.DepartmentFilterRequest) (*dto.DepartmentListResponse, error) {
	departments, total, err := s.departmentRepo.List(ctx, filter.Filter, filter.IsActive, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		responses = append(responses, *mapDepartmentToResponse(&departments[i]))
	}

	return &dto.DepartmentListResponse{
		Departments:    responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// ListActiveDepartments retrieves all active departments, for selection lists
func (s *departmentServiceImpl) ListActiveDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing active departments: %w", err)
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		responses = append(responses, *mapDepartmentToResponse(&departments[i]))
	}
	return responses, nil
}

// UpdateDepartment renames the department and synchronizes its course
// collection with the submitted list: entries with a matching ID are updated
// in place, entries without an ID become new courses, and persisted courses
// absent from the submission are deleted. The rename and the whole
// synchronization commit together or not at all.
func (s *departmentServiceImpl) UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentDetailResponse, error) {
	department, err := s.departmentRepo.GetByIDWithCourses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	if department == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Department not found with ID: %d", id))
	}

	if !strings.EqualFold(department.Name, req.Name) {
		exists, err := s.departmentRepo.ExistsByNameExcluding(ctx, req.Name, id)
		if err != nil {
			return nil, fmt.Errorf("error checking department name: %w", err)
		}
		if exists {
			return nil, apperrors.NewDuplicateResourceError(
				fmt.Sprintf("Department name '%s' is already in use.", req.Name))
		}
	}

	plan, err := buildCourseSyncPlan(department.Courses, req.Courses, department.IsActive)
	if err != nil {
		return nil, err
	}

	department.Name = req.Name
	if err := s.departmentRepo.UpdateWithCourseSync(ctx, department, plan.updates, plan.inserts, plan.deleteIDs); err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Department not found with ID: %d", id))
		}
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("A conflicting department already exists.")
		}
		return nil, fmt.Errorf("error updating department: %w", err)
	}

	logger.Info().Int64("departmentId", id).
		Int("updated", len(plan.updates)).Int("inserted", len(plan.inserts)).Int("deleted", len(plan.deleteIDs)).
		Msg("Department courses synchronized")
	return mapDepartmentToDetailResponse(department), nil
}

// ToggleDepartmentStatus inverts the department's active flag and applies the
// same new value to every course it owns, in one commit. The cascade is
// symmetric: reactivating a department reactivates its courses. Students
// already assigned to now-inactive courses are not touched.
func (s *departmentServiceImpl) ToggleDepartmentStatus(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	if department == nil {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Department not found with ID: %d", id))
	}

	newStatus := !department.IsActive
	updated, err := s.departmentRepo.SetStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("Department not found with ID: %d", id))
		}
		return nil, fmt.Errorf("error toggling department status: %w", err)
	}

	logger.Info().Int64("departmentId", id).Bool("isActive", newStatus).Msg("Department status toggled")
	return mapDepartmentToResponse(updated), nil
}

// mapDepartmentToResponse builds the basic department view
func mapDepartmentToResponse(department *models.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:       department.ID,
		Name:     department.Name,
		IsActive: department.IsActive,
	}
}

// mapDepartmentToDetailResponse builds the department view with its courses
func mapDepartmentToDetailResponse(department *models.Department) *dto.DepartmentDetailResponse {
	resp := &dto.DepartmentDetailResponse{
		DepartmentResponse: *mapDepartmentToResponse(department),
		Courses:            make([]dto.CourseResponse, 0, len(department.Courses)),
	}
	for _, course := range department.Courses {
		resp.Courses = append(resp.Courses, dto.CourseResponse{
			ID:          course.ID,
			Name:        course.Name,
			Description: course.Description,
			IsActive:    course.IsActive,
		})
	}
	return resp
}
