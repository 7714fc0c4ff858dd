package services

import (
	"context"

	"github.com/okalra/studentms/internal/app/models"
)

// Services defined in this package:
// - StudentService: student lifecycle (create/update/soft-delete/toggle/list/export)
//   and the cross-entity validation run before any student write
// - DepartmentService: department CRUD, course-list synchronization, and the
//   active-status cascade onto owned courses
// - CourseService: course listings for selection UIs
// - StudentExportService: CSV/XLSX rendering of a finalized student set

// StudentStore is the persistence surface the student service depends on
type StudentStore interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	SetStatus(ctx context.Context, student *models.Student, isActive bool) error
	List(ctx context.Context, filter *string, isActive *bool, sortBy, sortDir string, page, size int) ([]*models.Student, int64, error)
	ListAll(ctx context.Context, filter *string, isActive *bool) ([]*models.Student, error)
}

// DepartmentStore is the persistence surface the department service depends on
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetByIDWithCourses(ctx context.Context, id int64) (*models.Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcluding(ctx context.Context, name string, id int64) (bool, error)
	CreateWithCourses(ctx context.Context, department *models.Department) error
	UpdateWithCourseSync(ctx context.Context, department *models.Department, updates, inserts []models.Course, deleteIDs []int64) error
	SetStatus(ctx context.Context, id int64, isActive bool) (*models.Department, error)
	List(ctx context.Context, filter *string, isActive *bool, page, size int) ([]models.Department, int64, error)
	ListActive(ctx context.Context) ([]models.Department, error)
}

// CourseStore is the persistence surface course lookups depend on
type CourseStore interface {
	GetByIDsWithDepartment(ctx context.Context, ids []int64) ([]models.Course, error)
	ListActive(ctx context.Context, departmentID *int64) ([]models.Course, error)
}
