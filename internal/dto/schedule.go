package dto

// ── schedule module DTOs ──

// CreateScheduleEntryRequest new recurring weekly class meeting.
type CreateScheduleEntryRequest struct {
	CourseID     *string `json:"course_id"     binding:"omitempty,uuid"`
	InstructorID *string `json:"instructor_id" binding:"omitempty,uuid"`
	RoomID       *string `json:"room_id"       binding:"omitempty,uuid"`
	DayOfWeek    int     `json:"day_of_week"   binding:"required,min=1,max=7"`
	StartTime    string  `json:"start_time"    binding:"required"` // "07:50"
	EndTime      string  `json:"end_time"      binding:"required"` // "09:40"
	ClassType    string  `json:"class_type"    binding:"required,oneof=lecture practice lab reserved"`
	GroupLabel   string  `json:"group_label"   binding:"omitempty,max=10"`
	Term         string  `json:"term"          binding:"required,max=20"`
	ValidFrom    string  `json:"valid_from"    binding:"required"` // "2025-08-04"
	ValidUntil   string  `json:"valid_until"   binding:"required"`
	Notes        string  `json:"notes"         binding:"omitempty,max=500"`
}

// ScheduleEntryListRequest list filters.
type ScheduleEntryListRequest struct {
	InstructorID string `form:"instructor_id" binding:"omitempty,uuid"`
	RoomID       string `form:"room_id"       binding:"omitempty,uuid"`
	Term         string `form:"term"          binding:"omitempty,max=20"`
	DayOfWeek    *int   `form:"day_of_week"   binding:"omitempty,min=1,max=7"`
}

// DeactivateTermRequest admin cleanup of a term's entries.
type DeactivateTermRequest struct {
	Term string `json:"term" binding:"required,max=20"`
}

// ScheduleEntryResponse recurring class meeting details.
type ScheduleEntryResponse struct {
	ID         string       `json:"id"`
	Course     *CourseBrief `json:"course,omitempty"`
	Instructor *UserBrief   `json:"instructor,omitempty"`
	Room       *RoomBrief   `json:"room,omitempty"`
	DayOfWeek  int          `json:"day_of_week"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	ClassType  string       `json:"class_type"`
	GroupLabel string       `json:"group_label"`
	Term       string       `json:"term"`
	ValidFrom  string       `json:"valid_from"`
	ValidUntil string       `json:"valid_until"`
	IsActive   bool         `json:"is_active"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  string       `json:"created_at"`
	UpdatedAt  string       `json:"updated_at"`
}

// RoomOccupancyRequest occupancy query for one room and date.
type RoomOccupancyRequest struct {
	Date string `form:"date" binding:"required"` // "2025-09-01"
	Term string `form:"term" binding:"omitempty,max=20"`
}

// RoomOccupancyResponse regular classes plus reservations for the date.
type RoomOccupancyResponse struct {
	Date         string                  `json:"date"`
	Entries      []ScheduleEntryResponse `json:"entries"`
	Reservations []ReservationResponse   `json:"reservations"`
}
