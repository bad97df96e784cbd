package model

import "time"

// Reservation statuses.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationFinalized = "FINALIZED"
)

// Reservation one-off room booking by an instructor — reservations
type Reservation struct {
	ReservationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reservation_id"`
	InstructorID  string    `gorm:"type:uuid;not null"                             json:"instructor_id"`
	RoomID        string    `gorm:"type:uuid;not null"                             json:"room_id"`
	CourseID      *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	ReserveDate   time.Time `gorm:"type:date;not null"                             json:"reserve_date"`
	StartTime     string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime       string    `gorm:"type:time;not null"                             json:"end_time"`
	Motive        string    `gorm:"type:varchar(255)"                              json:"motive,omitempty"`
	Notes         string    `gorm:"type:text"                                      json:"notes,omitempty"`
	Term          string    `gorm:"type:varchar(20);not null"                      json:"term"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	VersionedModel

	// associations
	Instructor *User   `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
	Room       *Room   `gorm:"foreignKey:RoomID;references:RoomID"       json:"room,omitempty"`
	Course     *Course `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName overrides the table name.
func (Reservation) TableName() string { return "reservations" }

// IsLive reports whether the reservation still occupies its slot.
func (r *Reservation) IsLive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
