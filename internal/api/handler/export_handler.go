package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/service"
	"aulanet/backend/pkg/response"
)

// ExportHandler timetable export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TimetableExcel downloads the weekly grid as .xlsx.
// GET /api/v1/export/timetable.xlsx?instructor_id=&room_id=&term=
func (h *ExportHandler) TimetableExcel(c *gin.Context) {
	instructorID := c.Query("instructor_id")
	roomID := c.Query("room_id")
	term := c.Query("term")
	if term == "" {
		response.BadRequest(c, 10001, "term is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableExcel(c.Request.Context(), instructorID, roomID, term)
	if err != nil {
		if errors.Is(err, service.ErrExportNoEntries) {
			response.NotFound(c, 26001, "no schedule entries to export")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// MyTimetableICS downloads the authenticated instructor's calendar feed.
// GET /api/v1/export/timetable.ics?term=
func (h *ExportHandler) MyTimetableICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	term := c.Query("term")
	if term == "" {
		response.BadRequest(c, 10001, "term is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportInstructorICS(c.Request.Context(), userID, term)
	if err != nil {
		if errors.Is(err, service.ErrExportNoEntries) {
			response.NotFound(c, 26001, "no schedule entries to export")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
