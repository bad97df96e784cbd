package dto

// ── user module DTOs ──

// CreateUserRequest admin-created account.
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"     binding:"required,oneof=student professor secretary admin"`
}

// UpdateUserRequest partial update.
type UpdateUserRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Role     *string `json:"role"      binding:"omitempty,oneof=student professor secretary admin"`
	IsActive *bool   `json:"is_active"`
}

// UserListRequest list filters.
type UserListRequest struct {
	Role     string `form:"role"      binding:"omitempty,oneof=student professor secretary admin"`
	Page     int    `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// UserResponse account details.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserBrief embedded in other responses.
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
