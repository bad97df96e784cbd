package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aulanet/backend/internal/model"
	pkgerrors "aulanet/backend/pkg/errors"
)

// ScheduleRepository recurring class meeting data access.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	List(ctx context.Context, instructorID, roomID, term string, dayOfWeek *int) ([]model.ScheduleEntry, error)
	// ListActiveByInstructorDay returns active entries for the instructor on
	// one weekday of a term, excluding excludeID when non-empty.
	ListActiveByInstructorDay(ctx context.Context, instructorID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error)
	// ListActiveByRoomDay mirrors ListActiveByInstructorDay for a room.
	ListActiveByRoomDay(ctx context.Context, roomID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error)
	// ListActiveByRoomOnDate restricts ListActiveByRoomDay to entries whose
	// validity window contains the date.
	ListActiveByRoomOnDate(ctx context.Context, roomID string, dayOfWeek int, term string, date time.Time) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Deactivate(ctx context.Context, id string, updatedBy string) error
	// DeactivateTerm flips every active entry of a term to inactive and
	// returns how many rows changed.
	DeactivateTerm(ctx context.Context, term string, updatedBy string) (int64, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the gorm-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Preload("Room").
		Where("schedule_entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) List(ctx context.Context, instructorID, roomID, term string, dayOfWeek *int) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	db := r.db.WithContext(ctx).Where("is_active = ?", true)

	if instructorID != "" {
		db = db.Where("instructor_id = ?", instructorID)
	}
	if roomID != "" {
		db = db.Where("room_id = ?", roomID)
	}
	if term != "" {
		db = db.Where("term = ?", term)
	}
	if dayOfWeek != nil {
		db = db.Where("day_of_week = ?", *dayOfWeek)
	}

	err := db.Preload("Course").
		Preload("Instructor").
		Preload("Room").
		Order("day_of_week ASC, start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ListActiveByInstructorDay(ctx context.Context, instructorID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	db := r.db.WithContext(ctx).
		Where("instructor_id = ? AND day_of_week = ? AND term = ? AND is_active = ?",
			instructorID, dayOfWeek, term, true)
	if excludeID != "" {
		db = db.Where("schedule_entry_id <> ?", excludeID)
	}
	err := db.Preload("Course").Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ListActiveByRoomDay(ctx context.Context, roomID string, dayOfWeek int, term, excludeID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	db := r.db.WithContext(ctx).
		Where("room_id = ? AND day_of_week = ? AND term = ? AND is_active = ?",
			roomID, dayOfWeek, term, true)
	if excludeID != "" {
		db = db.Where("schedule_entry_id <> ?", excludeID)
	}
	err := db.Preload("Course").Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ListActiveByRoomOnDate(ctx context.Context, roomID string, dayOfWeek int, term string, date time.Time) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND day_of_week = ? AND term = ? AND is_active = ?",
			roomID, dayOfWeek, term, true).
		Where("valid_from <= ? AND valid_until >= ?", date, date).
		Preload("Course").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	oldVersion := entry.Version
	result := r.db.WithContext(ctx).
		Model(entry).
		Where("schedule_entry_id = ? AND version = ?", entry.ScheduleEntryID, oldVersion).
		Updates(map[string]interface{}{
			"course_id":     entry.CourseID,
			"instructor_id": entry.InstructorID,
			"room_id":       entry.RoomID,
			"day_of_week":   entry.DayOfWeek,
			"start_time":    entry.StartTime,
			"end_time":      entry.EndTime,
			"class_type":    entry.ClassType,
			"group_label":   entry.GroupLabel,
			"term":          entry.Term,
			"valid_from":    entry.ValidFrom,
			"valid_until":   entry.ValidUntil,
			"is_active":     entry.IsActive,
			"notes":         entry.Notes,
			"updated_by":    entry.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version = oldVersion + 1
	return nil
}

func (r *scheduleRepo) Deactivate(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("schedule_entry_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *scheduleRepo) DeactivateTerm(ctx context.Context, term string, updatedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("term = ? AND is_active = ?", term, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}
