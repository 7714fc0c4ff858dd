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

// Student error types
var (
	ErrStudentNotFound = errors.New("student not found")
)

// studentSortColumns whitelists the sortable columns for student listings
var studentSortColumns = map[string]string{
	"id":        "s.id",
	"studentId": "s.student_id",
	"firstName": "s.first_name",
	"lastName":  "s.last_name",
	"email":     "s.email",
	"createdAt": "s.created_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentSelectColumns = `s.id, s.student_id, s.first_name, s.last_name, s.email,
	s.department_id, s.is_active, s.created_at, s.updated_at, d.name, d.is_active`

// scanStudentRow scans a student row joined with its department
func scanStudentRow(row pgx.Row, extra ...any) (*models.Student, error) {
	var student models.Student
	var department models.Department

	dest := []any{
		&student.ID,
		&student.StudentID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.DepartmentID,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
		&department.Name,
		&department.IsActive,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	department.ID = student.DepartmentID
	student.Department = &department
	return &student, nil
}

// GetByStudentID retrieves a student by business student ID, with its
// department and courses resolved. Returns nil when no student matches.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	query := `
		SELECT ` + studentSelectColumns + `
		FROM students s
		JOIN departments d ON d.id = s.department_id
		WHERE s.student_id = $1
	`

	student, err := scanStudentRow(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if err := r.attachCourses(ctx, []*models.Student{student}); err != nil {
		return nil, err
	}

	return student, nil
}

// ExistsByStudentID checks if a student exists with the given business ID
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`,
		studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// EmailInUse checks if any student already uses the given email,
// case-insensitively
func (r *StudentRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = LOWER($1))`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email usage: %w", err)
	}

	return exists, nil
}

// Create inserts a new student together with its course enrollments in one
// transaction. The student's surrogate ID and timestamps are populated on
// success.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO students (student_id, first_name, last_name, email, department_id, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			student.StudentID,
			student.FirstName,
			student.LastName,
			student.Email,
			student.DepartmentID,
			student.IsActive,
		).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
		if err != nil {
			return err
		}

		return insertEnrollments(ctx, tx, student.ID, student.Courses)
	})
}

// Update persists the student's fields and replaces its course enrollments in
// one transaction. The student is matched by surrogate ID; the business
// student ID is never changed.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE students
			SET first_name = $1, last_name = $2, email = $3, department_id = $4,
				is_active = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at
		`

		err := tx.QueryRow(ctx, query,
			student.FirstName,
			student.LastName,
			student.Email,
			student.DepartmentID,
			student.IsActive,
			student.ID,
		).Scan(&student.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("error updating student: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM student_courses WHERE student_id = $1`, student.ID); err != nil {
			return fmt.Errorf("error clearing enrollments: %w", err)
		}

		return insertEnrollments(ctx, tx, student.ID, student.Courses)
	})
}

// SetStatus flips the active flag of the student row identified by surrogate
// ID and reports the new updated timestamp on the passed student.
func (r *StudentRepository) SetStatus(ctx context.Context, student *models.Student, isActive bool) error {
	query := `
		UPDATE students SET is_active = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, isActive, student.ID).Scan(&student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("error updating student status: %w", err)
	}

	student.IsActive = isActive
	return nil
}

// List retrieves students matching the optional free-text filter and active
// flag, paginated and sorted, together with the total match count.
func (r *StudentRepository) List(ctx context.Context, filter *string, isActive *bool, sortBy, sortDir string, page, size int) ([]*models.Student, int64, error) {
	query := r.filteredQuery(filter, isActive)

	orderColumn, ok := studentSortColumns[sortBy]
	if !ok {
		orderColumn = "s.id"
	}
	if sortDir != "desc" {
		sortDir = "asc"
	}
	query = query.OrderBy(orderColumn + " " + sortDir)

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	query = query.Limit(uint64(limit)).Offset(offset)

	return r.queryStudents(ctx, query.Column("COUNT(*) OVER()"))
}

// ListAll retrieves the full unpaginated set matching the filter, sorted by
// surrogate ID for a stable export order.
func (r *StudentRepository) ListAll(ctx context.Context, filter *string, isActive *bool) ([]*models.Student, error) {
	query := r.filteredQuery(filter, isActive).OrderBy("s.id ASC")

	students, _, err := r.queryStudents(ctx, query.Column("COUNT(*) OVER()"))
	return students, err
}

// filteredQuery builds the shared filter query for List and ListAll. The text
// filter is a case-insensitive substring match OR-combined across the business
// ID, first name, last name, and email; the active filter is AND-combined.
func (r *StudentRepository) filteredQuery(filter *string, isActive *bool) squirrel.SelectBuilder {
	query := squirrel.Select(
		"s.id", "s.student_id", "s.first_name", "s.last_name", "s.email",
		"s.department_id", "s.is_active", "s.created_at", "s.updated_at",
		"d.name", "d.is_active",
	).
		From("students s").
		Join("departments d ON d.id = s.department_id").
		PlaceholderFormat(squirrel.Dollar)

	if isActive != nil {
		query = query.Where("s.is_active = ?", *isActive)
	}
	if filter != nil && *filter != "" {
		pattern := "%" + *filter + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"s.student_id": pattern},
			squirrel.ILike{"s.first_name": pattern},
			squirrel.ILike{"s.last_name": pattern},
			squirrel.ILike{"s.email": pattern},
		})
	}

	return query
}

// queryStudents runs a student select carrying a trailing COUNT(*) OVER()
// column and resolves courses for every returned student.
func (r *StudentRepository) queryStudents(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Student, int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64

	for rows.Next() {
		student, err := scanStudentRow(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachCourses(ctx, students); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// attachCourses resolves the course enrollments for the given students in a
// single query.
func (r *StudentRepository) attachCourses(ctx context.Context, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Student, len(students))
	ids := make([]int64, 0, len(students))
	for _, s := range students {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	query := `
		SELECT sc.student_id, c.id, c.department_id, c.name, c.description, c.is_active
		FROM student_courses sc
		JOIN courses c ON c.id = sc.course_id
		WHERE sc.student_id = ANY($1)
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error retrieving enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID int64
		var course models.Course
		if err := rows.Scan(
			&studentID,
			&course.ID,
			&course.DepartmentID,
			&course.Name,
			&course.Description,
			&course.IsActive,
		); err != nil {
			return fmt.Errorf("error scanning enrollment: %w", err)
		}
		if student, ok := byID[studentID]; ok {
			student.Courses = append(student.Courses, course)
		}
	}

	return rows.Err()
}

// insertEnrollments writes the student-course join rows for the given courses
func insertEnrollments(ctx context.Context, tx pgx.Tx, studentID int64, courses []models.Course) error {
	for _, course := range courses {
		_, err := tx.Exec(ctx, `
			INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)`,
			studentID, course.ID)
		if err != nil {
			return fmt.Errorf("error inserting enrollment: %w", err)
		}
	}
	return nil
}
