package services

import (
	"context"
	"fmt"

	"github.com/okalra/studentms/internal/app/models/dto"
)

// CourseService defines the interface for course listings
type CourseService interface {
	ListActiveCourses(ctx context.Context, departmentID *int64) ([]dto.CourseResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo CourseStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// ListActiveCourses retrieves all active courses, optionally restricted to a
// department, so selection UIs only offer assignable courses
func (s *courseServiceImpl) ListActiveCourses(ctx context.Context, departmentID *int64) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListActive(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.CourseResponse{
			ID:          course.ID,
			Name:        course.Name,
			Description: course.Description,
			IsActive:    course.IsActive,
		})
	}
	return responses, nil
}
