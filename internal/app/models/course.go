package models

// Course represents a course offered by a department. The owning department
// is set at creation and never reassigned.
type Course struct {
	ID           int64   `json:"id" db:"id"`
	DepartmentID int64   `json:"departmentId" db:"department_id"`
	Name         string  `json:"name" db:"name"`
	Description  *string `json:"description,omitempty" db:"description"` // Nullable
	IsActive     bool    `json:"isActive" db:"is_active"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
