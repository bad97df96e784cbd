package handler

import "aulanet/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Room        *RoomHandler
	Course      *CourseHandler
	Schedule    *ScheduleHandler
	Reservation *ReservationHandler
	Attendance  *AttendanceHandler
	Export      *ExportHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Room:        NewRoomHandler(svc.Room),
		Course:      NewCourseHandler(svc.Course),
		Schedule:    NewScheduleHandler(svc.Schedule),
		Reservation: NewReservationHandler(svc.Reservation),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Export:      NewExportHandler(svc.Export),
	}
}
