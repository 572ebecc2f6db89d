package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/courseloom/courseloom-backend/internal/editor"
	"github.com/courseloom/courseloom-backend/internal/middleware"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/response"
	"github.com/courseloom/courseloom-backend/internal/service"
	"github.com/courseloom/courseloom-backend/internal/suite"
	"github.com/courseloom/courseloom-backend/internal/validator"
)

// EditorHandler handles the question-assembly workflow: session
// lifecycle, the four list primitives, bulk import, and submission.
type EditorHandler struct {
	editorService *service.EditorService
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(editorService *service.EditorService) *EditorHandler {
	return &EditorHandler{editorService: editorService}
}

// addQuestionRequest wraps the manual form with an optional insert
// position. A nil position appends.
type addQuestionRequest struct {
	Position *int                  `json:"position" binding:"omitempty,min=0"`
	Question model.QuestionPayload `json:"question" binding:"required"`
}

// editQuestionRequest carries the replacement form for an existing
// question; the target is the question_number inside the form.
type editQuestionRequest struct {
	Question model.QuestionPayload `json:"question" binding:"required"`
}

// OpenSession godoc
// POST /api/v1/versions/:version_id/editor
// Opens a fresh editing session for a version.
func (h *EditorHandler) OpenSession(c *gin.Context) {
	snapshot := h.editorService.Open(c.Param("version_id"))
	response.Success(c, http.StatusCreated, gin.H{"editor": snapshot})
}

// GetSession godoc
// GET /api/v1/editor/:session_id
// Returns the current session state.
func (h *EditorHandler) GetSession(c *gin.Context) {
	snapshot, err := h.editorService.Snapshot(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"editor": snapshot})
}

// AddQuestion godoc
// POST /api/v1/editor/:session_id/questions
// Appends a manually entered question, or splices it in when a position
// is given.
func (h *EditorHandler) AddQuestion(c *gin.Context) {
	var req addQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snapshot, fields, err := h.editorService.AddQuestion(c.Param("session_id"), &req.Question, req.Position)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"editor": snapshot})
}

// EditQuestion godoc
// PUT /api/v1/editor/:session_id/questions/:question_number
// Replaces the question with the given number.
func (h *EditorHandler) EditQuestion(c *gin.Context) {
	questionNumber, err := strconv.Atoi(c.Param("question_number"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	var req editQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.Question.QuestionNumber != questionNumber {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"question_number": "must match the question being edited"})
		return
	}

	snapshot, fields, err := h.editorService.EditQuestion(c.Param("session_id"), &req.Question)
	if err != nil {
		h.failEditorError(c, err)
		return
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"editor": snapshot})
}

// DeleteQuestion godoc
// DELETE /api/v1/editor/:session_id/questions/:question_number
// Removes the question with the given number.
func (h *EditorHandler) DeleteQuestion(c *gin.Context) {
	questionNumber, err := strconv.Atoi(c.Param("question_number"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	snapshot, err := h.editorService.DeleteQuestion(c.Param("session_id"), questionNumber)
	if err != nil {
		h.failEditorError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"editor": snapshot})
}

// ImportSuite godoc
// POST /api/v1/editor/:session_id/import
// Validates an uploaded suite document and merges it into the session.
func (h *EditorHandler) ImportSuite(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	snapshot, err := h.editorService.Import(
		c.Param("session_id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		h.failImportError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"editor": snapshot})
}

// Submit godoc
// POST /api/v1/editor/:session_id/submit
// Pushes the assembled batch upstream and destroys the session.
func (h *EditorHandler) Submit(c *gin.Context) {
	id, err := h.editorService.Submit(c.Request.Context(), middleware.Token(c), c.Param("session_id"))
	if err != nil {
		var dup *editor.DuplicateNumberError
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.As(err, &dup):
			response.FailWithFields(c, http.StatusConflict, response.ErrDuplicateNumber,
				map[string]string{"question_number": dup.Error()})
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"suite": gin.H{"id": id}})
}

// DiscardSession godoc
// DELETE /api/v1/editor/:session_id
// Tears the session down without submitting.
func (h *EditorHandler) DiscardSession(c *gin.Context) {
	h.editorService.Discard(c.Param("session_id"))
	response.Success(c, http.StatusOK, gin.H{"discarded": true})
}

func (h *EditorHandler) failEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, editor.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func (h *EditorHandler) failImportError(c *gin.Context, err error) {
	var ve *suite.ValidationError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, suite.ErrNotJSON),
		errors.Is(err, suite.ErrTooLarge),
		errors.Is(err, suite.ErrMalformed):
		response.FailMessage(c, http.StatusBadRequest, response.ErrInvalidSuite, err.Error())
	case errors.As(err, &ve):
		response.FailMessage(c, http.StatusUnprocessableEntity, response.ErrInvalidSuite, ve.Message)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
