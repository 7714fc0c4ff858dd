package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/app/models/dto"
	"github.com/okalra/studentms/internal/pkg/apperrors"
)

type DepartmentServiceSuite struct {
	suite.Suite

	ctx     context.Context
	store   *fakeDepartmentStore
	service DepartmentService
}

func TestDepartmentServiceSuite(t *testing.T) {
	suite.Run(t, new(DepartmentServiceSuite))
}

func (s *DepartmentServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newFakeDepartmentStore()
	s.service = NewDepartmentService(s.store)

	s.store.add(&models.Department{
		ID:       1,
		Name:     "Computer Science",
		IsActive: true,
		Courses: []models.Course{
			{ID: 10, Name: "Algorithms", IsActive: true},
			{ID: 11, Name: "Compilers", IsActive: true},
		},
	})
	s.store.add(&models.Department{ID: 2, Name: "Mathematics", IsActive: true})
}

func (s *DepartmentServiceSuite) TestCreateDepartmentWithNestedCourses() {
	resp, err := s.service.CreateDepartment(s.ctx, &dto.CreateDepartmentRequest{
		Name: "Physics",
		Courses: []dto.CreateCourseNested{
			{Name: "Mechanics"},
			{Name: "Optics"},
		},
	})
	s.Require().NoError(err)

	s.True(resp.IsActive)
	s.Equal("Physics", resp.Name)

	stored, err := s.store.GetByIDWithCourses(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Require().Len(stored.Courses, 2)
	s.True(stored.Courses[0].IsActive)
	s.True(stored.Courses[1].IsActive)
}

func (s *DepartmentServiceSuite) TestCreateDepartmentDuplicateNameCaseInsensitive() {
	_, err := s.service.CreateDepartment(s.ctx, &dto.CreateDepartmentRequest{Name: "computer SCIENCE"})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrDuplicateResource))
}

func (s *DepartmentServiceSuite) TestGetDepartmentNotFound() {
	_, err := s.service.GetDepartmentByID(s.ctx, 99)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrResourceNotFound))
}

func (s *DepartmentServiceSuite) TestUpdateDepartmentAppliesSyncPlan() {
	resp, err := s.service.UpdateDepartment(s.ctx, 1, &dto.UpdateDepartmentRequest{
		Name: "Computing",
		Courses: []dto.UpdateCourseNested{
			{ID: int64ptr(10), Name: "Advanced Algorithms"},
			{Name: "Distributed Systems"},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(s.store.syncCalls, 1)
	call := s.store.syncCalls[0]
	s.Equal(int64(1), call.departmentID)
	s.Require().Len(call.updates, 1)
	s.Equal("Advanced Algorithms", call.updates[0].Name)
	s.Require().Len(call.inserts, 1)
	s.Equal("Distributed Systems", call.inserts[0].Name)
	s.True(call.inserts[0].IsActive)
	s.Equal([]int64{11}, call.deleteIDs)

	s.Equal("Computing", resp.Name)
	s.Require().Len(resp.Courses, 2)
	s.Equal("Advanced Algorithms", resp.Courses[0].Name)
	s.Equal("Distributed Systems", resp.Courses[1].Name)
}

func (s *DepartmentServiceSuite) TestUpdateDepartmentUnknownCourseIDRejected() {
	_, err := s.service.UpdateDepartment(s.ctx, 1, &dto.UpdateDepartmentRequest{
		Name: "Computer Science",
		Courses: []dto.UpdateCourseNested{
			{ID: int64ptr(999), Name: "Phantom"},
		},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidationFailed))
	s.Empty(s.store.syncCalls)
}

func (s *DepartmentServiceSuite) TestUpdateDepartmentRenameToTakenName() {
	_, err := s.service.UpdateDepartment(s.ctx, 1, &dto.UpdateDepartmentRequest{
		Name: "Mathematics",
		Courses: []dto.UpdateCourseNested{
			{ID: int64ptr(10), Name: "Algorithms"},
			{ID: int64ptr(11), Name: "Compilers"},
		},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrDuplicateResource))
}

func (s *DepartmentServiceSuite) TestUpdateDepartmentRecaseOwnName() {
	resp, err := s.service.UpdateDepartment(s.ctx, 1, &dto.UpdateDepartmentRequest{
		Name: "COMPUTER SCIENCE",
		Courses: []dto.UpdateCourseNested{
			{ID: int64ptr(10), Name: "Algorithms"},
			{ID: int64ptr(11), Name: "Compilers"},
		},
	})
	s.Require().NoError(err)
	s.Equal("COMPUTER SCIENCE", resp.Name)
}

func (s *DepartmentServiceSuite) TestUpdateDepartmentNotFound() {
	_, err := s.service.UpdateDepartment(s.ctx, 99, &dto.UpdateDepartmentRequest{Name: "Nowhere"})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrResourceNotFound))
}

func (s *DepartmentServiceSuite) TestNewCoursesInheritInactiveDepartmentState() {
	_, err := s.store.SetStatus(s.ctx, 1, false)
	s.Require().NoError(err)

	_, err = s.service.UpdateDepartment(s.ctx, 1, &dto.UpdateDepartmentRequest{
		Name: "Computer Science",
		Courses: []dto.UpdateCourseNested{
			{ID: int64ptr(10), Name: "Algorithms"},
			{ID: int64ptr(11), Name: "Compilers"},
			{Name: "New Elective"},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(s.store.syncCalls, 1)
	s.Require().Len(s.store.syncCalls[0].inserts, 1)
	s.False(s.store.syncCalls[0].inserts[0].IsActive)
}

func (s *DepartmentServiceSuite) TestToggleStatusCascadesBothWays() {
	resp, err := s.service.ToggleDepartmentStatus(s.ctx, 1)
	s.Require().NoError(err)
	s.False(resp.IsActive)

	stored, err := s.store.GetByIDWithCourses(s.ctx, 1)
	s.Require().NoError(err)
	for _, course := range stored.Courses {
		s.False(course.IsActive)
	}

	resp, err = s.service.ToggleDepartmentStatus(s.ctx, 1)
	s.Require().NoError(err)
	s.True(resp.IsActive)

	stored, err = s.store.GetByIDWithCourses(s.ctx, 1)
	s.Require().NoError(err)
	for _, course := range stored.Courses {
		s.True(course.IsActive)
	}
}

func (s *DepartmentServiceSuite) TestToggleStatusNotFound() {
	_, err := s.service.ToggleDepartmentStatus(s.ctx, 99)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrResourceNotFound))
}

func (s *DepartmentServiceSuite) TestListDepartmentsPaginates() {
	resp, err := s.service.ListDepartments(s.ctx, &dto.DepartmentFilterRequest{Page: 1, PageSize: 1})
	s.Require().NoError(err)

	s.Len(resp.Departments, 1)
	s.Equal(int64(2), resp.TotalItems)
	s.Equal(2, resp.TotalPages)
}

func (s *DepartmentServiceSuite) TestListDepartmentsPageZeroServesFirstPage() {
	zeroBased, err := s.service.ListDepartments(s.ctx, &dto.DepartmentFilterRequest{Page: 0, PageSize: 10})
	s.Require().NoError(err)

	oneBased, err := s.service.ListDepartments(s.ctx, &dto.DepartmentFilterRequest{Page: 1, PageSize: 10})
	s.Require().NoError(err)

	s.Equal(oneBased.Departments, zeroBased.Departments)
	s.Equal(1, zeroBased.CurrentPage)
}

func (s *DepartmentServiceSuite) TestListActiveDepartmentsSkipsInactive() {
	_, err := s.store.SetStatus(s.ctx, 2, false)
	s.Require().NoError(err)

	active, err := s.service.ListActiveDepartments(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(active, 1)
	s.Equal("Computer Science", active[0].Name)
}
