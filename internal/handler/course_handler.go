package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/courseloom/courseloom-backend/internal/middleware"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/response"
	"github.com/courseloom/courseloom-backend/internal/service"
	"github.com/courseloom/courseloom-backend/internal/validator"
)

// CourseHandler handles course and version endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses godoc
// GET /api/v1/courses
// Lists the instructor's courses with optional search and pagination.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	first, _ := strconv.Atoi(c.Query("first"))

	courses, pagination, err := h.courseService.ListCourses(
		c.Request.Context(),
		middleware.Token(c),
		c.Query("search"),
		first,
		c.Query("after"),
	)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses},
		&response.Pagination{First: pagination.First, After: pagination.After})
}

// CreateCourse godoc
// POST /api/v1/courses
// Creates a course under an organization.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), middleware.Token(c), &req)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// GetCourse godoc
// GET /api/v1/courses/:course_id
// Fetches one course with its version history.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetCourse(c.Request.Context(), middleware.Token(c), c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// AddVersion godoc
// POST /api/v1/courses/:course_id/versions
// Creates a new draft version for a course.
func (h *CourseHandler) AddVersion(c *gin.Context) {
	version, err := h.courseService.AddVersion(c.Request.Context(), middleware.Token(c), c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"version": version})
}

// GetVersion godoc
// GET /api/v1/versions/:version_id
// Fetches the instructor view of one version.
func (h *CourseHandler) GetVersion(c *gin.Context) {
	detail, err := h.courseService.GetVersion(c.Request.Context(), middleware.Token(c), c.Param("version_id"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"version": detail})
}

// ListVersionQuestions godoc
// GET /api/v1/versions/:version_id/questions
// Lists the persisted questions of a version.
func (h *CourseHandler) ListVersionQuestions(c *gin.Context) {
	first, _ := strconv.Atoi(c.Query("first"))

	questions, pagination, err := h.courseService.ListVersionQuestions(
		c.Request.Context(),
		middleware.Token(c),
		c.Param("version_id"),
		c.Query("search"),
		first,
		c.Query("after"),
	)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions},
		&response.Pagination{First: pagination.First, After: pagination.After})
}

// RequestReview godoc
// POST /api/v1/versions/:version_id/review-request
// Asks for a review of a version.
func (h *CourseHandler) RequestReview(c *gin.Context) {
	id, err := h.courseService.RequestReview(c.Request.Context(), middleware.Token(c), c.Param("version_id"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review_request": gin.H{"id": id}})
}
