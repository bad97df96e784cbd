package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	User        UserRepository
	Course      CourseRepository
	Room        RoomRepository
	Schedule    ScheduleRepository
	Reservation ReservationRepository
	Attendance  AttendanceRepository

	db *gorm.DB
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Course:      NewCourseRepo(db),
		Room:        NewRoomRepo(db),
		Schedule:    NewScheduleRepo(db),
		Reservation: NewReservationRepo(db),
		Attendance:  NewAttendanceRepo(db),
		db:          db,
	}
}

// Transaction runs fn against a transaction-scoped Repository. Rolls back when
// fn returns an error. A Repository built without a database (unit tests)
// runs fn against itself.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
