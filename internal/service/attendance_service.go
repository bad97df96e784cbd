package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aulanet/backend/config"
	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/model"
	"aulanet/backend/internal/repository"
)

var (
	ErrNetworkNotFound    = errors.New("authorized network does not exist")
	ErrNetworkPrefixTaken = errors.New("network prefix already registered")
	ErrAlertNotFound      = errors.New("alert does not exist")
)

// AttendanceService professor check-in and location policy interface.
type AttendanceService interface {
	// CheckIn records the attendance row unconditionally; an unauthorized
	// location only flags it and raises an alert for the secretary.
	CheckIn(ctx context.Context, instructorID, clientIP string, req *dto.CheckInRequest) (*dto.CheckInResponse, error)
	ListAccessLogs(ctx context.Context, req *dto.AccessLogListRequest) ([]dto.AccessLogResponse, int64, error)
	ListAlerts(ctx context.Context, req *dto.AlertListRequest) ([]dto.AlertResponse, int64, error)
	MarkAlertRead(ctx context.Context, id string) error

	CreateNetwork(ctx context.Context, req *dto.CreateNetworkRequest, callerID string) (*dto.NetworkResponse, error)
	ListNetworks(ctx context.Context) ([]dto.NetworkResponse, error)
	UpdateNetwork(ctx context.Context, id string, req *dto.UpdateNetworkRequest, callerID string) (*dto.NetworkResponse, error)
	DeleteNetwork(ctx context.Context, id string) error
}

type attendanceService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService creates the AttendanceService instance.
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *attendanceService) CheckIn(ctx context.Context, instructorID, clientIP string, req *dto.CheckInRequest) (*dto.CheckInResponse, error) {
	networks, err := s.repo.Attendance.ListActiveNetworks(ctx)
	if err != nil {
		s.logger.Error("network list failed", zap.Error(err))
		return nil, err
	}

	ipValid := ipOnCampus(clientIP, networks)

	gpsValid := false
	if req.Latitude != nil && req.Longitude != nil {
		dist := haversineMeters(
			*req.Latitude, *req.Longitude,
			s.cfg.Attendance.CampusLatitude, s.cfg.Attendance.CampusLongitude,
		)
		gpsValid = dist <= s.cfg.Attendance.RadiusMeters
	}

	locationValid := ipValid || gpsValid

	log := &model.AccessLog{
		InstructorID:  instructorID,
		CourseID:      req.CourseID,
		CheckedInAt:   s.now(),
		IPAddress:     clientIP,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		LocationValid: locationValid,
	}
	if err := s.repo.Attendance.CreateAccessLog(ctx, log); err != nil {
		s.logger.Error("access log creation failed", zap.Error(err))
		return nil, err
	}

	alertCreated := false
	if !locationValid {
		alert := &model.IPAlert{
			InstructorID: instructorID,
			IPAddress:    clientIP,
			Action:       "check-in from unauthorized location",
			OccurredAt:   log.CheckedInAt,
		}
		if err := s.repo.Attendance.CreateAlert(ctx, alert); err != nil {
			// the check-in itself stands; losing the alert is logged only
			s.logger.Error("location alert creation failed", zap.Error(err))
		} else {
			alertCreated = true
		}
		s.logger.Warn("check-in from unauthorized location",
			zap.String("instructor_id", instructorID),
			zap.String("ip", clientIP))
	}

	return &dto.CheckInResponse{
		AccessLogID:   log.AccessLogID,
		CheckedInAt:   log.CheckedInAt.Format(time.RFC3339),
		IPAddress:     clientIP,
		LocationValid: locationValid,
		AlertCreated:  alertCreated,
	}, nil
}

func (s *attendanceService) ListAccessLogs(ctx context.Context, req *dto.AccessLogListRequest) ([]dto.AccessLogResponse, int64, error) {
	logs, total, err := s.repo.Attendance.ListAccessLogs(ctx, req.InstructorID, req.OnlyFlagged, req.Page, req.PageSize)
	if err != nil {
		s.logger.Error("access log list failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.AccessLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		out = append(out, dto.AccessLogResponse{
			ID:            l.AccessLogID,
			Instructor:    toUserBrief(l.Instructor),
			Course:        toCourseBrief(l.Course),
			CheckedInAt:   l.CheckedInAt.Format(time.RFC3339),
			IPAddress:     l.IPAddress,
			Latitude:      l.Latitude,
			Longitude:     l.Longitude,
			LocationValid: l.LocationValid,
			Notes:         l.Notes,
		})
	}
	return out, total, nil
}

func (s *attendanceService) ListAlerts(ctx context.Context, req *dto.AlertListRequest) ([]dto.AlertResponse, int64, error) {
	alerts, total, err := s.repo.Attendance.ListAlerts(ctx, req.UnreadOnly, req.Page, req.PageSize)
	if err != nil {
		s.logger.Error("alert list failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		out = append(out, dto.AlertResponse{
			ID:         a.AlertID,
			Instructor: toUserBrief(a.Instructor),
			IPAddress:  a.IPAddress,
			Action:     a.Action,
			OccurredAt: a.OccurredAt.Format(time.RFC3339),
			Read:       a.Read,
		})
	}
	return out, total, nil
}

func (s *attendanceService) MarkAlertRead(ctx context.Context, id string) error {
	if err := s.repo.Attendance.MarkAlertRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		s.logger.Error("alert update failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *attendanceService) CreateNetwork(ctx context.Context, req *dto.CreateNetworkRequest, callerID string) (*dto.NetworkResponse, error) {
	network := &model.AuthorizedNetwork{
		Name:        req.Name,
		IPPrefix:    req.IPPrefix,
		Description: req.Description,
		IsActive:    true,
	}
	network.CreatedBy = &callerID

	if err := s.repo.Attendance.CreateNetwork(ctx, network); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNetworkPrefixTaken
		}
		s.logger.Error("network creation failed", zap.Error(err))
		return nil, err
	}

	resp := toNetworkResponse(network)
	return &resp, nil
}

func (s *attendanceService) ListNetworks(ctx context.Context) ([]dto.NetworkResponse, error) {
	networks, err := s.repo.Attendance.ListNetworks(ctx)
	if err != nil {
		s.logger.Error("network list failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.NetworkResponse, 0, len(networks))
	for i := range networks {
		out = append(out, toNetworkResponse(&networks[i]))
	}
	return out, nil
}

func (s *attendanceService) UpdateNetwork(ctx context.Context, id string, req *dto.UpdateNetworkRequest, callerID string) (*dto.NetworkResponse, error) {
	network, err := s.repo.Attendance.GetNetworkByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNetworkNotFound
		}
		s.logger.Error("network lookup failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		network.Name = *req.Name
	}
	if req.Description != nil {
		network.Description = *req.Description
	}
	if req.IsActive != nil {
		network.IsActive = *req.IsActive
	}
	network.UpdatedBy = &callerID

	if err := s.repo.Attendance.UpdateNetwork(ctx, network); err != nil {
		s.logger.Error("network update failed", zap.Error(err))
		return nil, err
	}

	resp := toNetworkResponse(network)
	return &resp, nil
}

func (s *attendanceService) DeleteNetwork(ctx context.Context, id string) error {
	if _, err := s.repo.Attendance.GetNetworkByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNetworkNotFound
		}
		s.logger.Error("network lookup failed", zap.Error(err))
		return err
	}
	if err := s.repo.Attendance.DeleteNetwork(ctx, id); err != nil {
		s.logger.Error("network deletion failed", zap.Error(err))
		return err
	}
	return nil
}

// ── location checks ──

// ipOnCampus matches the client address against the allowlist by the first
// three octets, the /24-equivalent convention the campus networks follow.
func ipOnCampus(ip string, networks []model.AuthorizedNetwork) bool {
	prefix := firstThreeOctets(ip)
	if prefix == "" {
		return false
	}
	for i := range networks {
		if firstThreeOctets(networks[i].IPPrefix) == prefix {
			return true
		}
	}
	return false
}

func firstThreeOctets(ip string) string {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s", parts[0], parts[1], parts[2])
}

const earthRadiusMeters = 6371000.0

// haversineMeters is the great-circle distance between two coordinates.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toNetworkResponse(n *model.AuthorizedNetwork) dto.NetworkResponse {
	return dto.NetworkResponse{
		ID:          n.NetworkID,
		Name:        n.Name,
		IPPrefix:    n.IPPrefix,
		Description: n.Description,
		IsActive:    n.IsActive,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}
