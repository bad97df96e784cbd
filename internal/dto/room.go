package dto

// ── room module DTOs ──

// CreateRoomRequest new teaching space.
type CreateRoomRequest struct {
	Code     string `json:"code"     binding:"required,min=2,max=20"`
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Building string `json:"building" binding:"omitempty,max=100"`
	Floor    *int   `json:"floor"`
}

// UpdateRoomRequest partial update.
type UpdateRoomRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Capacity *int    `json:"capacity"  binding:"omitempty,min=1"`
	Building *string `json:"building"  binding:"omitempty,max=100"`
	Floor    *int    `json:"floor"`
	IsActive *bool   `json:"is_active"`
}

// RoomResponse teaching-space details.
type RoomResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Building  string `json:"building,omitempty"`
	Floor     *int   `json:"floor,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RoomBrief embedded in schedule and reservation responses.
type RoomBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
