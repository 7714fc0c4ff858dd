package dto

// DepartmentSummary represents minimal department information for embedding
// in other responses
type DepartmentSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DepartmentResponse represents basic department information
type DepartmentResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// DepartmentDetailResponse extends DepartmentResponse with the owned courses
type DepartmentDetailResponse struct {
	DepartmentResponse
	Courses []CourseResponse `json:"courses"`
}

// CreateCourseNested represents a course submitted as part of department creation
type CreateCourseNested struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name    string               `json:"name" binding:"required,max=200"`
	Courses []CreateCourseNested `json:"courses" binding:"omitempty,dive"`
}

// UpdateCourseNested represents one entry of the submitted course list during
// department update. A nil ID means a new course; an ID must match one of the
// department's persisted courses.
type UpdateCourseNested struct {
	ID          *int64  `json:"id,omitempty" binding:"omitempty,gt=0"`
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// UpdateDepartmentRequest represents department update data. The submitted
// course list is the desired end state; persisted courses absent from it are
// deleted.
type UpdateDepartmentRequest struct {
	Name    string               `json:"name" binding:"required,max=200"`
	Courses []UpdateCourseNested `json:"courses" binding:"omitempty,dive"`
}

// DepartmentFilterRequest represents department list filter parameters.
// Page 0 and page 1 both address the first page, so 0-based callers work too.
type DepartmentFilterRequest struct {
	Filter   *string `form:"filter"`
	IsActive *bool   `form:"isActive"`
	Page     int     `form:"page,default=1" binding:"min=0"`
	PageSize int     `form:"size,default=10" binding:"min=1,max=100"`
}

// DepartmentListResponse represents a page of departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	PaginationInfo
}
