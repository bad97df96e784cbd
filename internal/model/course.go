package model

// Course catalog table — courses
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name     string `gorm:"type:varchar(150);not null"                     json:"name"`
	Term     string `gorm:"type:varchar(20);not null"                      json:"term"` // e.g. "2025-B"
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName overrides the table name.
func (Course) TableName() string { return "courses" }
