package dto

// ── attendance module DTOs ──

// CheckInRequest professor attendance check-in. The client IP comes from the
// request; GPS coordinates are optional.
type CheckInRequest struct {
	CourseID  *string  `json:"course_id" binding:"omitempty,uuid"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// CheckInResponse outcome of a check-in. The check-in always succeeds;
// LocationValid tells the caller whether it was flagged for review.
type CheckInResponse struct {
	AccessLogID   string `json:"access_log_id"`
	CheckedInAt   string `json:"checked_in_at"`
	IPAddress     string `json:"ip_address"`
	LocationValid bool   `json:"location_valid"`
	AlertCreated  bool   `json:"alert_created"`
}

// AccessLogListRequest list filters for the access history.
type AccessLogListRequest struct {
	InstructorID string `form:"instructor_id" binding:"omitempty,uuid"`
	OnlyFlagged  bool   `form:"only_flagged"`
	Page         int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// AccessLogResponse one check-in row.
type AccessLogResponse struct {
	ID            string       `json:"id"`
	Instructor    *UserBrief   `json:"instructor,omitempty"`
	Course        *CourseBrief `json:"course,omitempty"`
	CheckedInAt   string       `json:"checked_in_at"`
	IPAddress     string       `json:"ip_address"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	LocationValid bool         `json:"location_valid"`
	Notes         string       `json:"notes,omitempty"`
}

// AlertListRequest list filters for unauthorized-location alerts.
type AlertListRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// AlertResponse one unauthorized-location alert.
type AlertResponse struct {
	ID         string     `json:"id"`
	Instructor *UserBrief `json:"instructor,omitempty"`
	IPAddress  string     `json:"ip_address"`
	Action     string     `json:"action"`
	OccurredAt string     `json:"occurred_at"`
	Read       bool       `json:"read"`
}

// CreateNetworkRequest authorized campus network.
type CreateNetworkRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	IPPrefix    string `json:"ip_prefix"   binding:"required,ip"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateNetworkRequest partial update.
type UpdateNetworkRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// NetworkResponse authorized network details.
type NetworkResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IPPrefix    string `json:"ip_prefix"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}
