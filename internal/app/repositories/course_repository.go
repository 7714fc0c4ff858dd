package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okalra/studentms/internal/app/models"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetByIDsWithDepartment retrieves the courses with the given IDs, each with
// its owning department resolved. IDs with no matching course are simply
// absent from the result; the caller decides how to treat them.
func (r *CourseRepository) GetByIDsWithDepartment(ctx context.Context, ids []int64) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT c.id, c.department_id, c.name, c.description, c.is_active,
			d.name, d.is_active
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE c.id = ANY($1)
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		var department models.Department
		if err := rows.Scan(
			&course.ID,
			&course.DepartmentID,
			&course.Name,
			&course.Description,
			&course.IsActive,
			&department.Name,
			&department.IsActive,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		department.ID = course.DepartmentID
		course.Department = &department
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// ListActive retrieves all active courses, optionally restricted to one
// department, ordered by name
func (r *CourseRepository) ListActive(ctx context.Context, departmentID *int64) ([]models.Course, error) {
	query := `
		SELECT id, department_id, name, description, is_active
		FROM courses
		WHERE is_active = true
	`
	args := []any{}

	if departmentID != nil {
		query += ` AND department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.DepartmentID,
			&course.Name,
			&course.Description,
			&course.IsActive,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}
