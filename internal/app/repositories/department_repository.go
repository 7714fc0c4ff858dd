package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/db"
	"github.com/okalra/studentms/internal/pkg/helpers"
)

// Department error types
var (
	ErrDepartmentNotFound = errors.New("department not found")
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetByID retrieves a department by ID. Returns nil when no department matches.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, is_active
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetByIDWithCourses retrieves a department together with its owned courses.
// Returns nil when no department matches.
func (r *DepartmentRepository) GetByIDWithCourses(ctx context.Context, id int64) (*models.Department, error) {
	department, err := r.GetByID(ctx, id)
	if err != nil || department == nil {
		return department, err
	}

	courses, err := r.coursesOf(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	department.Courses = courses
	return department, nil
}

// ExistsByName checks if a department exists with the given name,
// case-insensitively
func (r *DepartmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1))`,
		name).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}

	return exists, nil
}

// ExistsByNameExcluding checks if the name is used by a department other than
// the given one, case-insensitively
func (r *DepartmentRepository) ExistsByNameExcluding(ctx context.Context, name string, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1) AND id != $2)`,
		name, id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking department uniqueness: %w", err)
	}

	return exists, nil
}

// CreateWithCourses inserts a new department and its nested courses in one
// transaction. Surrogate IDs are populated on success.
func (r *DepartmentRepository) CreateWithCourses(ctx context.Context, department *models.Department) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO departments (name, is_active) VALUES ($1, $2) RETURNING id`,
			department.Name, department.IsActive).Scan(&department.ID)
		if err != nil {
			return err
		}

		for i := range department.Courses {
			course := &department.Courses[i]
			course.DepartmentID = department.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO courses (department_id, name, description, is_active)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				course.DepartmentID, course.Name, course.Description, course.IsActive,
			).Scan(&course.ID)
			if err != nil {
				return fmt.Errorf("error inserting course: %w", err)
			}
		}

		return nil
	})
}

// UpdateWithCourseSync renames the department and applies a precomputed course
// synchronization in one transaction: in-place updates, inserts of new
// courses, and deletion of courses dropped from the submitted list. Partial
// synchronization is never observable.
func (r *DepartmentRepository) UpdateWithCourseSync(ctx context.Context, department *models.Department, updates, inserts []models.Course, deleteIDs []int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE departments SET name = $1, updated_at = NOW() WHERE id = $2`,
			department.Name, department.ID)
		if err != nil {
			return fmt.Errorf("error updating department: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrDepartmentNotFound
		}

		for _, course := range updates {
			_, err := tx.Exec(ctx, `
				UPDATE courses SET name = $1, description = $2, updated_at = NOW()
				WHERE id = $3 AND department_id = $4`,
				course.Name, course.Description, course.ID, department.ID)
			if err != nil {
				return fmt.Errorf("error updating course: %w", err)
			}
		}

		for _, course := range inserts {
			_, err := tx.Exec(ctx, `
				INSERT INTO courses (department_id, name, description, is_active)
				VALUES ($1, $2, $3, $4)`,
				department.ID, course.Name, course.Description, course.IsActive)
			if err != nil {
				return fmt.Errorf("error inserting course: %w", err)
			}
		}

		if len(deleteIDs) > 0 {
			_, err := tx.Exec(ctx, `
				DELETE FROM courses WHERE department_id = $1 AND id = ANY($2)`,
				department.ID, deleteIDs)
			if err != nil {
				return fmt.Errorf("error deleting courses: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Re-read the synchronized collection so the caller sees assigned IDs
	courses, err := r.coursesOf(ctx, r.db, department.ID)
	if err != nil {
		return err
	}
	department.Courses = courses
	return nil
}

// SetStatus sets the department's active flag and cascades the same value to
// every course it owns, as a single atomic unit.
func (r *DepartmentRepository) SetStatus(ctx context.Context, id int64, isActive bool) (*models.Department, error) {
	var department models.Department

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE departments SET is_active = $1, updated_at = NOW() WHERE id = $2
			RETURNING id, name, is_active`,
			isActive, id).Scan(&department.ID, &department.Name, &department.IsActive)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrDepartmentNotFound
			}
			return fmt.Errorf("error updating department status: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE courses SET is_active = $1, updated_at = NOW() WHERE department_id = $2`,
			isActive, id)
		if err != nil {
			return fmt.Errorf("error cascading status to courses: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &department, nil
}

// List retrieves departments matching the optional name filter and active
// flag, paginated, together with the total match count.
func (r *DepartmentRepository) List(ctx context.Context, filter *string, isActive *bool, page, size int) ([]models.Department, int64, error) {
	query := squirrel.Select("id", "name", "is_active").
		From("departments").
		PlaceholderFormat(squirrel.Dollar)

	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if filter != nil && *filter != "" {
		query = query.Where(squirrel.ILike{"name": "%" + *filter + "%"})
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	query = query.OrderBy("name ASC").Limit(uint64(limit)).Offset(offset)

	sql, args, err := query.Column("COUNT(*) OVER()").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	var total int64

	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.IsActive, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

// ListActive retrieves all active departments ordered by name, for selection
// lists
func (r *DepartmentRepository) ListActive(ctx context.Context) ([]models.Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_active FROM departments WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.IsActive); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}

	return departments, rows.Err()
}

// querier abstracts pool and transaction query execution
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// coursesOf loads the courses owned by a department, ordered by ID
func (r *DepartmentRepository) coursesOf(ctx context.Context, q querier, departmentID int64) ([]models.Course, error) {
	rows, err := q.Query(ctx, `
		SELECT id, department_id, name, description, is_active
		FROM courses
		WHERE department_id = $1
		ORDER BY id`,
		departmentID)
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
