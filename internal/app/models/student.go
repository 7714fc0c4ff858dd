package models

import "time"

// Student defines the student model based on the 'students' table.
// StudentID is the caller-assigned business identifier, distinct from the
// surrogate ID, and immutable after creation.
type Student struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    string    `json:"studentId" db:"student_id" example:"S001"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
	Courses    []Course    `json:"courses,omitempty"`
}
