package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/service"
	"aulanet/backend/pkg/response"
)

// CourseHandler catalog endpoints.
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates the CourseHandler.
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create registers a course (secretary/admin).
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrCourseCodeTaken) {
			response.Conflict(c, 22002, "course code already in use")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, course)
}

// GetByID returns one course.
// GET /api/v1/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 22001, "course does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, course)
}

// List returns active courses, filterable by term.
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), req.Term)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, courses)
}

// Update modifies a course (secretary/admin).
// PATCH /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 22001, "course does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, course)
}

// Delete removes a course (secretary/admin).
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 22001, "course does not exist")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
