package dto

// ── course module DTOs ──

// CreateCourseRequest new catalog course.
type CreateCourseRequest struct {
	Code string `json:"code" binding:"required,min=2,max=20"`
	Name string `json:"name" binding:"required,min=2,max=150"`
	Term string `json:"term" binding:"required,max=20"`
}

// UpdateCourseRequest partial update.
type UpdateCourseRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=150"`
	Term     *string `json:"term"      binding:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}

// CourseListRequest list filters.
type CourseListRequest struct {
	Term string `form:"term" binding:"omitempty,max=20"`
}

// CourseResponse catalog course details.
type CourseResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Term      string `json:"term"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CourseBrief embedded in schedule and reservation responses.
type CourseBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
