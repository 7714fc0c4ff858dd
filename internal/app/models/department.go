package models

// Department represents an academic department.
// Name uniqueness is enforced case-insensitively.
type Department struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`

	// Courses owned by the department (populated when needed). The
	// department owns the full lifecycle of this collection: a course
	// dropped from it during synchronization is deleted.
	Courses []Course `json:"courses,omitempty"`
}
