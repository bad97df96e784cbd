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
)

// ── reservation module business errors ──

var (
	ErrReservationNotFound = errors.New("reservation does not exist")
	ErrPastDateRejected    = errors.New("reservation date is in the past")
	ErrLeadTimeTooShort    = errors.New("same-day reservations need more advance notice")
	ErrRoomInactive        = errors.New("room is not available for reservations")
	ErrQuotaExceeded       = errors.New("weekly reservation quota exceeded")
	ErrBlockAlignment      = errors.New("start time must sit on an academic-hour boundary")
	ErrEndTimeRequired     = errors.New("either end_time or block_count is required")
	ErrInvalidTransition   = errors.New("reservation state does not allow this operation")
	ErrNotReservationOwner = errors.New("reservation belongs to another instructor")
)

// ReservationService one-off room booking interface.
type ReservationService interface {
	Create(ctx context.Context, req *dto.CreateReservationRequest, instructorID string) (*dto.ReservationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReservationResponse, error)
	List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error)
	// Confirm moves PENDING to CONFIRMED.
	Confirm(ctx context.Context, id, callerID string) (*dto.ReservationResponse, error)
	// Cancel moves PENDING or CONFIRMED to CANCELLED. Only the owner or a
	// privileged role may cancel.
	Cancel(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error)
	// Sweep finalizes every live reservation dated before today. On-demand
	// maintenance, typically run by an administrator after the day closes.
	Sweep(ctx context.Context, callerID string) (*dto.SweepResponse, error)
	// Quota reports the instructor's block usage for the week containing date.
	Quota(ctx context.Context, instructorID string, date time.Time) (*dto.QuotaResponse, error)
}

type reservationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // injectable for tests
}

// NewReservationService creates the ReservationService instance.
func NewReservationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReservationService {
	return &reservationService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *reservationService) Create(ctx context.Context, req *dto.CreateReservationRequest, instructorID string) (*dto.ReservationResponse, error) {
	// 1. resolve the interval
	endTime := req.EndTime
	if endTime == "" {
		if req.BlockCount <= 0 {
			return nil, ErrEndTimeRequired
		}
		resolved, ok := timeblock.EndTimeForBlockSpan(req.StartTime, req.BlockCount)
		if !ok {
			return nil, ErrBlockAlignment
		}
		endTime = resolved
	}
	if err := validateInterval(req.StartTime, endTime); err != nil {
		return nil, err
	}

	// 2. date must not be in the past
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reserveDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if reserveDay.Before(today) {
		return nil, ErrPastDateRejected
	}

	// 3. same-day bookings need the configured lead time
	if reserveDay.Equal(today) {
		startAt := clockOnDate(reserveDay, req.StartTime)
		if startAt.Before(now.Add(s.cfg.Booking.SameDayLeadTime)) {
			return nil, ErrLeadTimeTooShort
		}
	}

	// 4. room must exist and be active
	room, err := s.repo.Room.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("room lookup failed", zap.Error(err))
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}

	term := req.Term
	if term == "" {
		term = s.cfg.Booking.DefaultTerm
	}

	res := &model.Reservation{
		InstructorID: instructorID,
		RoomID:       req.RoomID,
		CourseID:     req.CourseID,
		ReserveDate:  date,
		StartTime:    req.StartTime,
		EndTime:      endTime,
		Motive:       req.Motive,
		Term:         term,
		Status:       model.ReservationPending,
	}
	res.CreatedBy = &instructorID

	// 5-9. conflict and quota checks, then insert, all under a
	// transaction-scoped advisory lock on (room, date) so two concurrent
	// requests for the same slot serialize. The partial unique index on
	// (room, date, start) is the backstop.
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Reservation.AcquireRoomDateLock(ctx, req.RoomID, date); err != nil {
			s.logger.Error("advisory lock failed", zap.Error(err))
			return err
		}
		if err := s.checkReservationConflicts(ctx, tx, res, ""); err != nil {
			return err
		}
		if err := s.checkQuota(ctx, tx, res, ""); err != nil {
			return err
		}
		if err := tx.Reservation.Create(ctx, res); err != nil {
			s.logger.Error("reservation creation failed", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Reservation.GetByID(ctx, res.ReservationID)
	if err != nil {
		resp := toReservationResponse(res)
		return &resp, nil
	}
	resp := toReservationResponse(created)
	return &resp, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("reservation lookup failed", zap.Error(err))
		return nil, err
	}
	resp := toReservationResponse(res)
	return &resp, nil
}

func (s *reservationService) List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, int64, error) {
	var date *time.Time
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, 0, err
		}
		date = &d
	}

	items, total, err := s.repo.Reservation.List(ctx, req.InstructorID, req.RoomID, req.Status, req.Term, date, req.Page, req.PageSize)
	if err != nil {
		s.logger.Error("reservation list failed", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.ReservationResponse, 0, len(items))
	for i := range items {
		out = append(out, toReservationResponse(&items[i]))
	}
	return out, total, nil
}

func (s *reservationService) Confirm(ctx context.Context, id, callerID string) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("reservation lookup failed", zap.Error(err))
		return nil, err
	}

	if res.Status != model.ReservationPending {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, model.ReservationConfirmed, callerID); err != nil {
		s.logger.Error("reservation confirmation failed", zap.Error(err))
		return nil, err
	}

	res.Status = model.ReservationConfirmed
	resp := toReservationResponse(res)
	return &resp, nil
}

func (s *reservationService) Cancel(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("reservation lookup failed", zap.Error(err))
		return nil, err
	}

	privileged := callerRole == model.RoleSecretary || callerRole == model.RoleAdmin
	if res.InstructorID != callerID && !privileged {
		return nil, ErrNotReservationOwner
	}
	if !res.IsLive() {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, model.ReservationCancelled, callerID); err != nil {
		s.logger.Error("reservation cancellation failed", zap.Error(err))
		return nil, err
	}

	res.Status = model.ReservationCancelled
	resp := toReservationResponse(res)
	return &resp, nil
}

func (s *reservationService) Sweep(ctx context.Context, callerID string) (*dto.SweepResponse, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	n, err := s.repo.Reservation.SweepExpired(ctx, today, callerID)
	if err != nil {
		s.logger.Error("reservation sweep failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("expired reservations finalized", zap.Int64("count", n))
	return &dto.SweepResponse{Finalized: n}, nil
}

func (s *reservationService) Quota(ctx context.Context, instructorID string, date time.Time) (*dto.QuotaResponse, error) {
	start := weekStart(date)
	end := start.AddDate(0, 0, 7)

	live, err := s.repo.Reservation.ListLiveByInstructorBetween(ctx, instructorID, start, end)
	if err != nil {
		s.logger.Error("quota query failed", zap.Error(err))
		return nil, err
	}

	used := 0
	for i := range live {
		used += timeblock.CountBlocksOverlapping(live[i].StartTime, live[i].EndTime)
	}

	quota := s.cfg.Booking.WeeklyQuotaBlocks
	remaining := quota - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.QuotaResponse{
		WeekStart:       start.Format("2006-01-02"),
		UsedBlocks:      used,
		QuotaBlocks:     quota,
		RemainingBlocks: remaining,
	}, nil
}

// ── validation ──

// checkReservationConflicts rejects the reservation when the instructor or
// the room is already taken on the date, either by a regular class whose
// validity window covers the date or by another live reservation.
func (s *reservationService) checkReservationConflicts(ctx context.Context, tx *repository.Repository, res *model.Reservation, excludeID string) error {
	dow := isoWeekday(res.ReserveDate)

	// instructor vs regular schedule
	classes, err := tx.Schedule.ListActiveByInstructorDay(ctx, res.InstructorID, dow, res.Term, "")
	if err != nil {
		s.logger.Error("instructor conflict query failed", zap.Error(err))
		return err
	}
	for i := range classes {
		if classes[i].CoversDate(res.ReserveDate) &&
			overlaps(res.StartTime, res.EndTime, classes[i].StartTime, classes[i].EndTime) {
			return fmt.Errorf("%w: %s", ErrInstructorConflict, entryLabel(&classes[i]))
		}
	}

	// instructor vs own live reservations
	mine, err := tx.Reservation.ListLiveByInstructorOnDate(ctx, res.InstructorID, res.ReserveDate, excludeID)
	if err != nil {
		s.logger.Error("instructor conflict query failed", zap.Error(err))
		return err
	}
	for i := range mine {
		if overlaps(res.StartTime, res.EndTime, mine[i].StartTime, mine[i].EndTime) {
			return fmt.Errorf("%w: reservation %s-%s", ErrInstructorConflict, mine[i].StartTime, mine[i].EndTime)
		}
	}

	// room vs regular schedule
	roomClasses, err := tx.Schedule.ListActiveByRoomOnDate(ctx, res.RoomID, dow, res.Term, res.ReserveDate)
	if err != nil {
		s.logger.Error("room conflict query failed", zap.Error(err))
		return err
	}
	for i := range roomClasses {
		if overlaps(res.StartTime, res.EndTime, roomClasses[i].StartTime, roomClasses[i].EndTime) {
			return fmt.Errorf("%w: %s", ErrRoomConflict, entryLabel(&roomClasses[i]))
		}
	}

	// room vs live reservations
	booked, err := tx.Reservation.ListLiveByRoomOnDate(ctx, res.RoomID, res.ReserveDate, excludeID)
	if err != nil {
		s.logger.Error("room conflict query failed", zap.Error(err))
		return err
	}
	for i := range booked {
		if overlaps(res.StartTime, res.EndTime, booked[i].StartTime, booked[i].EndTime) {
			return fmt.Errorf("%w: reservation %s-%s", ErrRoomConflict, booked[i].StartTime, booked[i].EndTime)
		}
	}

	return nil
}

// checkQuota enforces the weekly block budget. Usage is counted over the
// Monday-start week containing the reservation date; every catalog block the
// interval touches counts, so misaligned bookings are not cheaper.
func (s *reservationService) checkQuota(ctx context.Context, tx *repository.Repository, res *model.Reservation, excludeID string) error {
	requested := timeblock.CountBlocksOverlapping(res.StartTime, res.EndTime)

	start := weekStart(res.ReserveDate)
	end := start.AddDate(0, 0, 7)
	live, err := tx.Reservation.ListLiveByInstructorBetween(ctx, res.InstructorID, start, end)
	if err != nil {
		s.logger.Error("quota query failed", zap.Error(err))
		return err
	}

	used := 0
	for i := range live {
		if live[i].ReservationID == excludeID {
			continue
		}
		used += timeblock.CountBlocksOverlapping(live[i].StartTime, live[i].EndTime)
	}

	if used+requested > s.cfg.Booking.WeeklyQuotaBlocks {
		return ErrQuotaExceeded
	}
	return nil
}

// clockOnDate combines a date with an "HH:MM" wall-clock time.
func clockOnDate(day time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

func toReservationResponse(r *model.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:         r.ReservationID,
		Instructor: toUserBrief(r.Instructor),
		Room:       toRoomBrief(r.Room),
		Course:     toCourseBrief(r.Course),
		Date:       r.ReserveDate.Format("2006-01-02"),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Blocks:     timeblock.CountBlocksOverlapping(r.StartTime, r.EndTime),
		Motive:     r.Motive,
		Term:       r.Term,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
}
