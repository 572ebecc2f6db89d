package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseloom/courseloom-backend/internal/middleware"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/response"
	"github.com/courseloom/courseloom-backend/internal/service"
	"github.com/courseloom/courseloom-backend/internal/validator"
)

// ReviewHandler handles review, issue and question-update endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetReview godoc
// GET /api/v1/reviews/:review_id
// Fetches one review with questions grouped by their correlated issues.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	view, err := h.reviewService.GetReview(c.Request.Context(), middleware.Token(c), c.Param("review_id"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": view})
}

// UpdateIssue godoc
// PUT /api/v1/reviews/:review_id/issues/:issue_id
// Records the instructor's response to an actionable issue.
func (h *ReviewHandler) UpdateIssue(c *gin.Context) {
	var req model.UpdateIssueRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	issue, err := h.reviewService.UpdateIssue(
		c.Request.Context(),
		middleware.Token(c),
		c.Param("review_id"),
		c.Param("issue_id"),
		&req,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrIssueNotActionable):
			response.Fail(c, http.StatusConflict, response.ErrIssueNotActionable)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"issue": issue})
}

// UpdateQuestion godoc
// PUT /api/v1/reviews/:review_id/questions/:question_id
// Replaces a persisted question's fields.
func (h *ReviewHandler) UpdateQuestion(c *gin.Context) {
	var req model.QuestionPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, fields, err := h.reviewService.UpdateQuestion(
		c.Request.Context(),
		middleware.Token(c),
		c.Param("review_id"),
		c.Param("question_id"),
		&req,
	)
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		return
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}
