package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	"aulanet/backend/pkg/response"
)

// AttendanceHandler professor check-in and location policy endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates the AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// CheckIn records the professor's attendance.
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.attendanceSvc.CheckIn(c.Request.Context(), userID, c.ClientIP(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListAccessLogs returns the check-in history (secretary/admin).
// GET /api/v1/attendance/logs
func (h *AttendanceHandler) ListAccessLogs(c *gin.Context) {
	var req dto.AccessLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	logs, total, err := h.attendanceSvc.ListAccessLogs(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, logs, total, req.Page, req.PageSize)
}

// ListAlerts returns unauthorized-location alerts (secretary/admin).
// GET /api/v1/attendance/alerts
func (h *AttendanceHandler) ListAlerts(c *gin.Context) {
	var req dto.AlertListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	alerts, total, err := h.attendanceSvc.ListAlerts(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, alerts, total, req.Page, req.PageSize)
}

// MarkAlertRead acknowledges an alert (secretary/admin).
// POST /api/v1/attendance/alerts/:id/read
func (h *AttendanceHandler) MarkAlertRead(c *gin.Context) {
	if err := h.attendanceSvc.MarkAlertRead(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			response.NotFound(c, 25001, "alert does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// CreateNetwork registers an authorized campus network (admin).
// POST /api/v1/attendance/networks
func (h *AttendanceHandler) CreateNetwork(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	network, err := h.attendanceSvc.CreateNetwork(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrNetworkPrefixTaken) {
			response.Conflict(c, 25003, "network prefix already registered")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, network)
}

// ListNetworks returns the network allowlist (admin).
// GET /api/v1/attendance/networks
func (h *AttendanceHandler) ListNetworks(c *gin.Context) {
	networks, err := h.attendanceSvc.ListNetworks(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, networks)
}

// UpdateNetwork modifies a network (admin).
// PATCH /api/v1/attendance/networks/:id
func (h *AttendanceHandler) UpdateNetwork(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	network, err := h.attendanceSvc.UpdateNetwork(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrNetworkNotFound) {
			response.NotFound(c, 25002, "authorized network does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, network)
}

// DeleteNetwork removes a network (admin).
// DELETE /api/v1/attendance/networks/:id
func (h *AttendanceHandler) DeleteNetwork(c *gin.Context) {
	if err := h.attendanceSvc.DeleteNetwork(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNetworkNotFound) {
			response.NotFound(c, 25002, "authorized network does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
