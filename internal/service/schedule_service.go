package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aulanet/backend/config"
	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/model"
	"aulanet/backend/internal/repository"
	"aulanet/backend/internal/timeblock"
	pkgerrors "aulanet/backend/pkg/errors"
)

// ── schedule module business errors ──

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry does not exist")
	ErrInvalidInterval       = errors.New("start time must be before end time")
	ErrOutsideTeachingHours  = errors.New("interval falls outside the instructional day")
	ErrInvalidValidityWindow = errors.New("valid_from must not be after valid_until")
	ErrInstructorConflict    = errors.New("instructor already has a class in this interval")
	ErrRoomConflict          = errors.New("room is already occupied in this interval")
)

// ScheduleService recurring weekly schedule interface.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleEntryResponse, error)
	List(ctx context.Context, req *dto.ScheduleEntryListRequest) ([]dto.ScheduleEntryResponse, error)
	Update(ctx context.Context, id string, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error)
	Deactivate(ctx context.Context, id, callerID string) error
	// DeactivateTerm retires every active entry of a term, the end-of-term
	// cleanup. Returns how many entries changed.
	DeactivateTerm(ctx context.Context, term, callerID string) (int64, error)
	// RoomOccupancy merges regular classes and live reservations for one
	// room and date.
	RoomOccupancy(ctx context.Context, roomID string, req *dto.RoomOccupancyRequest) (*dto.RoomOccupancyResponse, error)
}

type scheduleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates the ScheduleService instance.
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	entry.CreatedBy = &callerID

	if err := s.checkConflicts(ctx, entry, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, entry); err != nil {
		s.logger.Error("schedule entry creation failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Schedule.GetByID(ctx, entry.ScheduleEntryID)
	if err != nil {
		// created but reload failed: return what we have
		resp := toScheduleEntryResponse(entry)
		return &resp, nil
	}
	resp := toScheduleEntryResponse(created)
	return &resp, nil
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		s.logger.Error("schedule entry lookup failed", zap.Error(err))
		return nil, err
	}
	resp := toScheduleEntryResponse(entry)
	return &resp, nil
}

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleEntryListRequest) ([]dto.ScheduleEntryResponse, error) {
	term := req.Term
	if term == "" {
		term = s.cfg.Booking.DefaultTerm
	}
	entries, err := s.repo.Schedule.List(ctx, req.InstructorID, req.RoomID, term, req.DayOfWeek)
	if err != nil {
		s.logger.Error("schedule list failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toScheduleEntryResponse(&entries[i]))
	}
	return out, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.CreateScheduleEntryRequest, callerID string) (*dto.ScheduleEntryResponse, error) {
	existing, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		s.logger.Error("schedule entry lookup failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	updated.ScheduleEntryID = existing.ScheduleEntryID
	updated.IsActive = existing.IsActive
	updated.VersionedModel = existing.VersionedModel
	updated.UpdatedBy = &callerID

	if err := s.checkConflicts(ctx, updated, id); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, updated); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("schedule entry update failed", zap.Error(err))
		}
		return nil, err
	}

	reloaded, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		resp := toScheduleEntryResponse(updated)
		return &resp, nil
	}
	resp := toScheduleEntryResponse(reloaded)
	return &resp, nil
}

func (s *scheduleService) Deactivate(ctx context.Context, id, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleEntryNotFound
		}
		s.logger.Error("schedule entry lookup failed", zap.Error(err))
		return err
	}
	if err := s.repo.Schedule.Deactivate(ctx, id, callerID); err != nil {
		s.logger.Error("schedule entry deactivation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) DeactivateTerm(ctx context.Context, term, callerID string) (int64, error) {
	n, err := s.repo.Schedule.DeactivateTerm(ctx, term, callerID)
	if err != nil {
		s.logger.Error("term deactivation failed", zap.String("term", term), zap.Error(err))
		return 0, err
	}
	s.logger.Info("term deactivated", zap.String("term", term), zap.Int64("entries", n))
	return n, nil
}

func (s *scheduleService) RoomOccupancy(ctx context.Context, roomID string, req *dto.RoomOccupancyRequest) (*dto.RoomOccupancyResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	term := req.Term
	if term == "" {
		term = s.cfg.Booking.DefaultTerm
	}

	dow := isoWeekday(date)
	entries, err := s.repo.Schedule.ListActiveByRoomOnDate(ctx, roomID, dow, term, date)
	if err != nil {
		s.logger.Error("room occupancy query failed", zap.Error(err))
		return nil, err
	}

	reservations, err := s.repo.Reservation.ListLiveByRoomOnDate(ctx, roomID, date, "")
	if err != nil {
		s.logger.Error("room occupancy query failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.RoomOccupancyResponse{
		Date:         req.Date,
		Entries:      make([]dto.ScheduleEntryResponse, 0, len(entries)),
		Reservations: make([]dto.ReservationResponse, 0, len(reservations)),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toScheduleEntryResponse(&entries[i]))
	}
	for i := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationResponse(&reservations[i]))
	}
	return resp, nil
}

// ── validation ──

func (s *scheduleService) buildEntry(req *dto.CreateScheduleEntryRequest) (*model.ScheduleEntry, error) {
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseDate(req.ValidUntil)
	if err != nil {
		return nil, err
	}
	if validFrom.After(validUntil) {
		return nil, ErrInvalidValidityWindow
	}

	groupLabel := req.GroupLabel
	if groupLabel == "" {
		groupLabel = "A"
	}

	return &model.ScheduleEntry{
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		RoomID:       req.RoomID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ClassType:    req.ClassType,
		GroupLabel:   groupLabel,
		Term:         req.Term,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
		IsActive:     true,
		Notes:        req.Notes,
	}, nil
}

// checkConflicts rejects the entry when its instructor or room already has an
// active entry overlapping the interval on the same weekday of the term.
// excludeID skips the entry itself on update.
func (s *scheduleService) checkConflicts(ctx context.Context, entry *model.ScheduleEntry, excludeID string) error {
	if entry.InstructorID != nil {
		others, err := s.repo.Schedule.ListActiveByInstructorDay(ctx, *entry.InstructorID, entry.DayOfWeek, entry.Term, excludeID)
		if err != nil {
			s.logger.Error("instructor conflict query failed", zap.Error(err))
			return err
		}
		for i := range others {
			if overlaps(entry.StartTime, entry.EndTime, others[i].StartTime, others[i].EndTime) {
				return fmt.Errorf("%w: %s", ErrInstructorConflict, entryLabel(&others[i]))
			}
		}
	}

	if entry.RoomID != nil {
		others, err := s.repo.Schedule.ListActiveByRoomDay(ctx, *entry.RoomID, entry.DayOfWeek, entry.Term, excludeID)
		if err != nil {
			s.logger.Error("room conflict query failed", zap.Error(err))
			return err
		}
		for i := range others {
			if overlaps(entry.StartTime, entry.EndTime, others[i].StartTime, others[i].EndTime) {
				return fmt.Errorf("%w: %s", ErrRoomConflict, entryLabel(&others[i]))
			}
		}
	}

	return nil
}

// entryLabel identifies a conflicting entry in an error message: the course
// code when one is attached, otherwise the bare interval.
func entryLabel(e *model.ScheduleEntry) string {
	if e.Course != nil {
		return fmt.Sprintf("%s %s-%s", e.Course.Code, e.StartTime, e.EndTime)
	}
	return fmt.Sprintf("%s-%s", e.StartTime, e.EndTime)
}

// ── shared helpers ──

// validateInterval checks "HH:MM" syntax, ordering, and the instructional-day
// bounds.
func validateInterval(start, end string) error {
	if !validClock(start) || !validClock(end) {
		return fmt.Errorf("%w: times must be zero-padded HH:MM", ErrInvalidInterval)
	}
	if start >= end {
		return ErrInvalidInterval
	}
	if start < timeblock.DayStart() || end > timeblock.DayEnd() {
		return ErrOutsideTeachingHours
	}
	return nil
}

// validClock reports whether s is a zero-padded "HH:MM" wall-clock time.
// Zero-padding matters: intervals are compared lexically.
func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// isoWeekday maps time.Weekday to ISO numbering: 1=Monday … 7=Sunday.
func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// weekStart returns the Monday 00:00 of the week containing d.
func weekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return day.AddDate(0, 0, -(isoWeekday(day) - 1))
}

func toScheduleEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	return dto.ScheduleEntryResponse{
		ID:         e.ScheduleEntryID,
		Course:     toCourseBrief(e.Course),
		Instructor: toUserBrief(e.Instructor),
		Room:       toRoomBrief(e.Room),
		DayOfWeek:  e.DayOfWeek,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		ClassType:  e.ClassType,
		GroupLabel: e.GroupLabel,
		Term:       e.Term,
		ValidFrom:  e.ValidFrom.Format("2006-01-02"),
		ValidUntil: e.ValidUntil.Format("2006-01-02"),
		IsActive:   e.IsActive,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
