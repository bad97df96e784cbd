package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aulanet/backend/internal/model"
)

// ReservationRepository one-off room booking data access.
type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	List(ctx context.Context, instructorID, roomID, status, term string, date *time.Time, page, pageSize int) ([]model.Reservation, int64, error)
	// ListLiveByInstructorOnDate returns PENDING/CONFIRMED reservations held
	// by the instructor on one calendar date, excluding excludeID when
	// non-empty.
	ListLiveByInstructorOnDate(ctx context.Context, instructorID string, date time.Time, excludeID string) ([]model.Reservation, error)
	// ListLiveByRoomOnDate mirrors ListLiveByInstructorOnDate for a room.
	ListLiveByRoomOnDate(ctx context.Context, roomID string, date time.Time, excludeID string) ([]model.Reservation, error)
	// ListLiveByInstructorBetween returns live reservations in the half-open
	// date range [from, to) for weekly quota accounting.
	ListLiveByInstructorBetween(ctx context.Context, instructorID string, from, to time.Time) ([]model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	UpdateStatus(ctx context.Context, id, status, updatedBy string) error
	// SweepExpired finalizes live reservations whose date is strictly before
	// the cutoff and returns how many rows changed.
	SweepExpired(ctx context.Context, before time.Time, updatedBy string) (int64, error)
	// AcquireRoomDateLock takes a transaction-scoped advisory lock keyed on
	// room and date. Callers must run it inside a transaction; the lock is
	// released at commit or rollback.
	AcquireRoomDateLock(ctx context.Context, roomID string, date time.Time) error
}

type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepo creates the gorm-backed ReservationRepository.
func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Room").
		Preload("Course").
		Where("reservation_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) List(ctx context.Context, instructorID, roomID, status, term string, date *time.Time, page, pageSize int) ([]model.Reservation, int64, error) {
	var (
		items []model.Reservation
		total int64
	)
	db := r.db.WithContext(ctx).Model(&model.Reservation{})

	if instructorID != "" {
		db = db.Where("instructor_id = ?", instructorID)
	}
	if roomID != "" {
		db = db.Where("room_id = ?", roomID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if term != "" {
		db = db.Where("term = ?", term)
	}
	if date != nil {
		db = db.Where("reserve_date = ?", *date)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Instructor").
		Preload("Room").
		Preload("Course").
		Order("reserve_date DESC, start_time ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *reservationRepo) ListLiveByInstructorOnDate(ctx context.Context, instructorID string, date time.Time, excludeID string) ([]model.Reservation, error) {
	var items []model.Reservation
	db := r.db.WithContext(ctx).
		Where("instructor_id = ? AND reserve_date = ?", instructorID, date).
		Where("status IN ?", []string{model.ReservationPending, model.ReservationConfirmed})
	if excludeID != "" {
		db = db.Where("reservation_id <> ?", excludeID)
	}
	err := db.Find(&items).Error
	return items, err
}

func (r *reservationRepo) ListLiveByRoomOnDate(ctx context.Context, roomID string, date time.Time, excludeID string) ([]model.Reservation, error) {
	var items []model.Reservation
	db := r.db.WithContext(ctx).
		Where("room_id = ? AND reserve_date = ?", roomID, date).
		Where("status IN ?", []string{model.ReservationPending, model.ReservationConfirmed})
	if excludeID != "" {
		db = db.Where("reservation_id <> ?", excludeID)
	}
	err := db.Find(&items).Error
	return items, err
}

func (r *reservationRepo) ListLiveByInstructorBetween(ctx context.Context, instructorID string, from, to time.Time) ([]model.Reservation, error) {
	var items []model.Reservation
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Where("reserve_date >= ? AND reserve_date < ?", from, to).
		Where("status IN ?", []string{model.ReservationPending, model.ReservationConfirmed}).
		Find(&items).Error
	return items, err
}

func (r *reservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservationRepo) UpdateStatus(ctx context.Context, id, status, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("reservation_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *reservationRepo) SweepExpired(ctx context.Context, before time.Time, updatedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("reserve_date < ?", before).
		Where("status IN ?", []string{model.ReservationPending, model.ReservationConfirmed}).
		Updates(map[string]interface{}{
			"status":     model.ReservationFinalized,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

func (r *reservationRepo) AcquireRoomDateLock(ctx context.Context, roomID string, date time.Time) error {
	key := roomID + ":" + date.Format("2006-01-02")
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}
