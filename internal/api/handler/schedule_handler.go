package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	pkgerrors "aulanet/backend/pkg/errors"
	"aulanet/backend/pkg/response"
)

// ScheduleHandler recurring weekly schedule endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates the ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// handleScheduleError maps schedule business errors to HTTP responses.
func handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleEntryNotFound):
		response.NotFound(c, 23001, "schedule entry does not exist")
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 23002, "start time must be before end time")
	case errors.Is(err, service.ErrOutsideTeachingHours):
		response.BadRequest(c, 23003, "interval falls outside the instructional day")
	case errors.Is(err, service.ErrInvalidValidityWindow):
		response.BadRequest(c, 23004, "valid_from must not be after valid_until")
	case errors.Is(err, service.ErrInstructorConflict):
		response.Conflict(c, 23005, "instructor already has a class in this interval")
	case errors.Is(err, service.ErrRoomConflict):
		response.Conflict(c, 23006, "room is already occupied in this interval")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 23007, "entry was modified concurrently, reload and retry")
	default:
		response.InternalError(c)
	}
}

// Create adds a schedule entry (secretary/admin).
// POST /api/v1/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	entry, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Created(c, entry)
}

// GetByID returns one schedule entry.
// GET /api/v1/schedule/:id
func (h *ScheduleHandler) GetByID(c *gin.Context) {
	entry, err := h.scheduleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, entry)
}

// List returns active entries, filterable by instructor, room, term, day.
// GET /api/v1/schedule
func (h *ScheduleHandler) List(c *gin.Context) {
	var req dto.ScheduleEntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	entries, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, entries)
}

// MySchedule returns the authenticated instructor's entries.
// GET /api/v1/schedule/mine
func (h *ScheduleHandler) MySchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleEntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	req.InstructorID = userID

	entries, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, entries)
}

// Update replaces a schedule entry (secretary/admin).
// PUT /api/v1/schedule/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	entry, err := h.scheduleSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, entry)
}

// Deactivate retires a schedule entry (secretary/admin).
// DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) Deactivate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Deactivate(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeactivateTerm retires every active entry of a term (admin).
// POST /api/v1/schedule/deactivate-term
func (h *ScheduleHandler) DeactivateTerm(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DeactivateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	n, err := h.scheduleSvc.DeactivateTerm(c.Request.Context(), req.Term, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"deactivated": n})
}

// RoomOccupancy merges classes and reservations for one room and date.
// GET /api/v1/rooms/:id/occupancy
func (h *ScheduleHandler) RoomOccupancy(c *gin.Context) {
	var req dto.RoomOccupancyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	occupancy, err := h.scheduleSvc.RoomOccupancy(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, occupancy)
}
