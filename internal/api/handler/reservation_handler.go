package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	"aulanet/backend/pkg/response"
)

// ReservationHandler one-off room booking endpoints.
type ReservationHandler struct {
	reservationSvc service.ReservationService
}

// NewReservationHandler creates the ReservationHandler.
func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// handleReservationError maps reservation business errors to HTTP responses.
func handleReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		response.NotFound(c, 24001, "reservation does not exist")
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 24002, "start time must be before end time")
	case errors.Is(err, service.ErrOutsideTeachingHours):
		response.BadRequest(c, 24003, "interval falls outside the instructional day")
	case errors.Is(err, service.ErrPastDateRejected):
		response.BadRequest(c, 24004, "reservation date is in the past")
	case errors.Is(err, service.ErrLeadTimeTooShort):
		response.BadRequest(c, 24005, "same-day reservations need more advance notice")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 21001, "room does not exist")
	case errors.Is(err, service.ErrRoomInactive):
		response.BadRequest(c, 24006, "room is not available for reservations")
	case errors.Is(err, service.ErrInstructorConflict):
		response.Conflict(c, 24007, "you already have a class or reservation in this interval")
	case errors.Is(err, service.ErrRoomConflict):
		response.Conflict(c, 24008, "room is already occupied in this interval")
	case errors.Is(err, service.ErrQuotaExceeded):
		response.Conflict(c, 24009, "weekly reservation quota exceeded")
	case errors.Is(err, service.ErrBlockAlignment):
		response.BadRequest(c, 24010, "start time must sit on an academic-hour boundary")
	case errors.Is(err, service.ErrEndTimeRequired):
		response.BadRequest(c, 24011, "either end_time or block_count is required")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 24012, "reservation state does not allow this operation")
	case errors.Is(err, service.ErrNotReservationOwner):
		response.Forbidden(c, 24013, "reservation belongs to another instructor")
	default:
		response.InternalError(c)
	}
}

// Create books a room (professor).
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	reservation, err := h.reservationSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		handleReservationError(c, err)
		return
	}

	response.Created(c, reservation)
}

// GetByID returns one reservation.
// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
	reservation, err := h.reservationSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleReservationError(c, err)
		return
	}

	response.OK(c, reservation)
}

// List returns reservations with filters.
// GET /api/v1/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	items, total, err := h.reservationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.Page, req.PageSize)
}

// MyReservations returns the authenticated instructor's reservations.
// GET /api/v1/reservations/mine
func (h *ReservationHandler) MyReservations(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	req.InstructorID = userID

	items, total, err := h.reservationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, req.Page, req.PageSize)
}

// Confirm approves a pending reservation (secretary/admin).
// POST /api/v1/reservations/:id/confirm
func (h *ReservationHandler) Confirm(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reservation, err := h.reservationSvc.Confirm(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		handleReservationError(c, err)
		return
	}

	response.OK(c, reservation)
}

// Cancel withdraws a reservation (owner, secretary or admin).
// POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	reservation, err := h.reservationSvc.Cancel(c.Request.Context(), c.Param("id"), callerID, callerRole)
	if err != nil {
		handleReservationError(c, err)
		return
	}

	response.OK(c, reservation)
}

// Sweep finalizes past live reservations (admin).
// POST /api/v1/reservations/sweep
func (h *ReservationHandler) Sweep(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.reservationSvc.Sweep(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Quota reports the authenticated instructor's weekly block usage.
// GET /api/v1/reservations/quota?date=2025-09-01
func (h *ReservationHandler) Quota(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, 10001, "validation failed")
			return
		}
		date = parsed
	}

	quota, err := h.reservationSvc.Quota(c.Request.Context(), userID, date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, quota)
}
