package dto

// ── reservation module DTOs ──

// CreateReservationRequest one-off room booking. Either EndTime or BlockCount
// must be set; BlockCount means "start at StartTime for N academic hours" and
// requires StartTime to sit on a block boundary.
type CreateReservationRequest struct {
	RoomID     string  `json:"room_id"     binding:"required,uuid"`
	CourseID   *string `json:"course_id"   binding:"omitempty,uuid"`
	Date       string  `json:"date"        binding:"required"` // "2025-09-01"
	StartTime  string  `json:"start_time"  binding:"required"` // "14:00"
	EndTime    string  `json:"end_time"    binding:"omitempty"`
	BlockCount int     `json:"block_count" binding:"omitempty,min=1,max=12"`
	Motive     string  `json:"motive"      binding:"omitempty,max=255"`
	Term       string  `json:"term"        binding:"omitempty,max=20"`
}

// ReservationListRequest list filters.
type ReservationListRequest struct {
	RoomID       string `form:"room_id"       binding:"omitempty,uuid"`
	InstructorID string `form:"instructor_id" binding:"omitempty,uuid"`
	Term         string `form:"term"          binding:"omitempty,max=20"`
	Status       string `form:"status"        binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED FINALIZED"`
	Date         string `form:"date"          binding:"omitempty"` // "2025-09-01"
	Page         int    `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ReservationResponse booking details.
type ReservationResponse struct {
	ID         string       `json:"id"`
	Instructor *UserBrief   `json:"instructor,omitempty"`
	Room       *RoomBrief   `json:"room,omitempty"`
	Course     *CourseBrief `json:"course,omitempty"`
	Date       string       `json:"date"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	Blocks     int          `json:"blocks"` // academic-hour blocks consumed
	Motive     string       `json:"motive,omitempty"`
	Term       string       `json:"term"`
	Status     string       `json:"status"`
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at"`
}

// SweepResponse result of the finalize-expired maintenance operation.
type SweepResponse struct {
	Finalized int64 `json:"finalized"`
}

// QuotaResponse remaining weekly quota for an instructor.
type QuotaResponse struct {
	WeekStart       string `json:"week_start"`
	UsedBlocks      int    `json:"used_blocks"`
	QuotaBlocks     int    `json:"quota_blocks"`
	RemainingBlocks int    `json:"remaining_blocks"`
}
