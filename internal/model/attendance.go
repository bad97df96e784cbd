package model

import "time"

// AuthorizedNetwork campus network allowed for attendance check-in — authorized_networks
//
// IPPrefix holds the base address of a /24-equivalent network; matching
// compares the first three octets.
type AuthorizedNetwork struct {
	NetworkID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"network_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	IPPrefix    string `gorm:"type:varchar(45);not null;uniqueIndex"          json:"ip_prefix"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName overrides the table name.
func (AuthorizedNetwork) TableName() string { return "authorized_networks" }

// AccessLog one professor check-in — access_logs
//
// The row is written whether or not the location was valid; an invalid
// location only flips LocationValid and raises an IPAlert.
type AccessLog struct {
	AccessLogID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"access_log_id"`
	InstructorID  string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	CourseID      *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	CheckedInAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"checked_in_at"`
	IPAddress     string    `gorm:"type:varchar(45);not null"                      json:"ip_address"`
	Latitude      *float64  `gorm:"type:decimal(9,6)"                              json:"latitude,omitempty"`
	Longitude     *float64  `gorm:"type:decimal(9,6)"                              json:"longitude,omitempty"`
	LocationValid bool      `gorm:"not null;default:false"                         json:"location_valid"`
	Notes         string    `gorm:"type:varchar(200)"                              json:"notes,omitempty"`

	// associations
	Instructor *User   `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
	Course     *Course `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName overrides the table name.
func (AccessLog) TableName() string { return "access_logs" }

// IPAlert unauthorized-location alert for administrative staff — ip_alerts
type IPAlert struct {
	AlertID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"alert_id"`
	InstructorID string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	IPAddress    string    `gorm:"type:varchar(45);not null"                      json:"ip_address"`
	Action       string    `gorm:"type:varchar(200);not null"                     json:"action"`
	OccurredAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
	Read         bool      `gorm:"not null;default:false"                         json:"read"`

	// associations
	Instructor *User `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
}

// TableName overrides the table name.
func (IPAlert) TableName() string { return "ip_alerts" }
