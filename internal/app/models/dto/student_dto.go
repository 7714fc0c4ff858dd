package dto

import "time"

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	StudentID    string  `json:"studentId" binding:"required,max=100"`
	FirstName    string  `json:"firstName" binding:"required,max=100"`
	LastName     string  `json:"lastName" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0"`
	CourseIDs    []int64 `json:"courseIds" binding:"omitempty,dive,gt=0"`
}

// UpdateStudentRequest represents student update data. The business student
// ID is taken from the path and cannot be changed.
type UpdateStudentRequest struct {
	FirstName    string  `json:"firstName" binding:"required,max=100"`
	LastName     string  `json:"lastName" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0"`
	CourseIDs    []int64 `json:"courseIds" binding:"omitempty,dive,gt=0"`
}

// StudentFilterRequest represents student list filter parameters.
// Page 0 and page 1 both address the first page, so 0-based callers work too.
type StudentFilterRequest struct {
	Filter   *string `form:"filter"`
	IsActive *bool   `form:"isActive"`
	Page     int     `form:"page,default=1" binding:"min=0"`
	PageSize int     `form:"size,default=10" binding:"min=1,max=100"`
	SortBy   string  `form:"sortBy,default=id"`
	SortDir  string  `form:"sortDir,default=asc" binding:"omitempty,oneof=asc desc"`
}

// StudentResponse represents a fully resolved student view
type StudentResponse struct {
	StudentID  string             `json:"studentId"`
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Email      string             `json:"email"`
	Department DepartmentSummary  `json:"department"`
	Courses    []CourseResponse   `json:"courses"`
	IsActive   bool               `json:"isActive"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// StudentListResponse represents a page of students with pagination metadata
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	PaginationInfo
}
