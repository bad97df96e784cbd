package service

import (
	"go.uber.org/zap"

	"aulanet/backend/config"
	"aulanet/backend/internal/repository"
	"aulanet/backend/pkg/jwt"
	"aulanet/backend/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth        AuthService
	User        UserService
	Room        RoomService
	Course      CourseService
	Schedule    ScheduleService
	Reservation ReservationService
	Attendance  AttendanceService
	Export      ExportService
}

// NewService wires the service implementations. rdb may be nil; token
// revocation then degrades to TTL-only expiry.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	scheduleSvc := NewScheduleService(cfg, repo, logger)
	reservationSvc := NewReservationService(cfg, repo, logger)
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:        NewUserService(repo, logger),
		Room:        NewRoomService(repo, logger),
		Course:      NewCourseService(repo, logger),
		Schedule:    scheduleSvc,
		Reservation: reservationSvc,
		Attendance:  NewAttendanceService(cfg, repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
