package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	"aulanet/backend/pkg/response"
)

// RoomHandler teaching-space endpoints.
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler creates the RoomHandler.
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Create registers a room (admin).
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrRoomCodeTaken) {
			response.Conflict(c, 21002, "room code already in use")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, room)
}

// GetByID returns one room.
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	room, err := h.roomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 21001, "room does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, room)
}

// List returns rooms; ?active_only=true hides retired rooms.
// GET /api/v1/rooms
func (h *RoomHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	rooms, err := h.roomSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, rooms)
}

// Update modifies a room (admin).
// PATCH /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 21001, "room does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, room)
}

// Delete removes a room (admin).
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.roomSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.NotFound(c, 21001, "room does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
