package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/model"
	"aulanet/backend/internal/repository"
)

var (
	ErrRoomNotFound   = errors.New("room does not exist")
	ErrRoomCodeTaken  = errors.New("room code already in use")
)

// RoomService teaching-space management interface.
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.RoomResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService creates the RoomService instance.
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	if _, err := s.repo.Room.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrRoomCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("room lookup failed", zap.Error(err))
		return nil, err
	}

	room := &model.Room{
		Code:     req.Code,
		Name:     req.Name,
		Capacity: req.Capacity,
		Building: req.Building,
		Floor:    req.Floor,
		IsActive: true,
	}
	room.CreatedBy = &callerID

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("room creation failed", zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("room lookup failed", zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) List(ctx context.Context, activeOnly bool) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("room list failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResponse(&rooms[i]))
	}
	return out, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("room lookup failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Building != nil {
		room.Building = *req.Building
	}
	if req.Floor != nil {
		room.Floor = req.Floor
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("room update failed", zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("room lookup failed", zap.Error(err))
		return err
	}
	if err := s.repo.Room.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("room deletion failed", zap.Error(err))
		return err
	}
	return nil
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:        r.RoomID,
		Code:      r.Code,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Building:  r.Building,
		Floor:     r.Floor,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

func toRoomBrief(r *model.Room) *dto.RoomBrief {
	if r == nil {
		return nil
	}
	return &dto.RoomBrief{ID: r.RoomID, Code: r.Code, Name: r.Name}
}
