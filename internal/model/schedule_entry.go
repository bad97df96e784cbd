package model

import "time"

// Class types.
const (
	ClassLecture  = "lecture"
	ClassPractice = "practice"
	ClassLab      = "lab"
	ClassReserved = "reserved" // placeholder entry backing an ad-hoc reservation
)

// ScheduleEntry recurring weekly class meeting — schedule_entries
//
// Times are "HH:MM" strings; zero-padded, so lexical order is time order.
type ScheduleEntry struct {
	ScheduleEntryID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_entry_id"`
	CourseID        *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	InstructorID    *string   `gorm:"type:uuid"                                      json:"instructor_id,omitempty"`
	RoomID          *string   `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	DayOfWeek       int       `gorm:"type:smallint;not null"                         json:"day_of_week"` // ISO: 1=Monday … 7=Sunday
	StartTime       string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime         string    `gorm:"type:time;not null"                             json:"end_time"`
	ClassType       string    `gorm:"type:varchar(20);not null;default:'lecture'"    json:"class_type"`
	GroupLabel      string    `gorm:"type:varchar(10);not null;default:'A'"          json:"group_label"`
	Term            string    `gorm:"type:varchar(20);not null"                      json:"term"`
	ValidFrom       time.Time `gorm:"type:date;not null"                             json:"valid_from"`
	ValidUntil      time.Time `gorm:"type:date;not null"                             json:"valid_until"`
	IsActive        bool      `gorm:"not null;default:true"                          json:"is_active"`
	Notes           string    `gorm:"type:text"                                      json:"notes,omitempty"`
	VersionedModel

	// associations
	Course     *Course `gorm:"foreignKey:CourseID;references:CourseID"    json:"course,omitempty"`
	Instructor *User   `gorm:"foreignKey:InstructorID;references:UserID"  json:"instructor,omitempty"`
	Room       *Room   `gorm:"foreignKey:RoomID;references:RoomID"        json:"room,omitempty"`
}

// TableName overrides the table name.
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// CoversDate reports whether the entry's validity window contains the date.
func (e *ScheduleEntry) CoversDate(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(e.ValidFrom) && !day.After(e.ValidUntil)
}
