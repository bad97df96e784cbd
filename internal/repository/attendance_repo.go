package repository

import (
	"context"

	"gorm.io/gorm"

	"aulanet/backend/internal/model"
)

// AttendanceRepository check-in logs, location alerts and network allowlist.
type AttendanceRepository interface {
	CreateAccessLog(ctx context.Context, log *model.AccessLog) error
	ListAccessLogs(ctx context.Context, instructorID string, onlyFlagged bool, page, pageSize int) ([]model.AccessLog, int64, error)

	CreateAlert(ctx context.Context, alert *model.IPAlert) error
	ListAlerts(ctx context.Context, unreadOnly bool, page, pageSize int) ([]model.IPAlert, int64, error)
	MarkAlertRead(ctx context.Context, id string) error

	CreateNetwork(ctx context.Context, network *model.AuthorizedNetwork) error
	GetNetworkByID(ctx context.Context, id string) (*model.AuthorizedNetwork, error)
	ListActiveNetworks(ctx context.Context) ([]model.AuthorizedNetwork, error)
	ListNetworks(ctx context.Context) ([]model.AuthorizedNetwork, error)
	UpdateNetwork(ctx context.Context, network *model.AuthorizedNetwork) error
	DeleteNetwork(ctx context.Context, id string) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the gorm-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) CreateAccessLog(ctx context.Context, log *model.AccessLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *attendanceRepo) ListAccessLogs(ctx context.Context, instructorID string, onlyFlagged bool, page, pageSize int) ([]model.AccessLog, int64, error) {
	var (
		items []model.AccessLog
		total int64
	)
	db := r.db.WithContext(ctx).Model(&model.AccessLog{})

	if instructorID != "" {
		db = db.Where("instructor_id = ?", instructorID)
	}
	if onlyFlagged {
		db = db.Where("location_valid = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Instructor").
		Preload("Course").
		Order("checked_in_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *attendanceRepo) CreateAlert(ctx context.Context, alert *model.IPAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *attendanceRepo) ListAlerts(ctx context.Context, unreadOnly bool, page, pageSize int) ([]model.IPAlert, int64, error) {
	var (
		items []model.IPAlert
		total int64
	)
	db := r.db.WithContext(ctx).Model(&model.IPAlert{})
	if unreadOnly {
		db = db.Where("read = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Instructor").
		Order("occurred_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *attendanceRepo) MarkAlertRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.IPAlert{}).
		Where("alert_id = ?", id).
		Update("read", true).Error
}

func (r *attendanceRepo) CreateNetwork(ctx context.Context, network *model.AuthorizedNetwork) error {
	return r.db.WithContext(ctx).Create(network).Error
}

func (r *attendanceRepo) GetNetworkByID(ctx context.Context, id string) (*model.AuthorizedNetwork, error) {
	var network model.AuthorizedNetwork
	err := r.db.WithContext(ctx).
		Where("network_id = ?", id).
		First(&network).Error
	if err != nil {
		return nil, err
	}
	return &network, nil
}

func (r *attendanceRepo) ListActiveNetworks(ctx context.Context) ([]model.AuthorizedNetwork, error) {
	var networks []model.AuthorizedNetwork
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&networks).Error
	return networks, err
}

func (r *attendanceRepo) ListNetworks(ctx context.Context) ([]model.AuthorizedNetwork, error) {
	var networks []model.AuthorizedNetwork
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&networks).Error
	return networks, err
}

func (r *attendanceRepo) UpdateNetwork(ctx context.Context, network *model.AuthorizedNetwork) error {
	return r.db.WithContext(ctx).Save(network).Error
}

func (r *attendanceRepo) DeleteNetwork(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("network_id = ?", id).
		Delete(&model.AuthorizedNetwork{}).Error
}
