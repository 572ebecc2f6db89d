package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloom/courseloom-backend/internal/editor"
	"github.com/courseloom/courseloom-backend/internal/middleware"
	"github.com/courseloom/courseloom-backend/internal/response"
	"github.com/courseloom/courseloom-backend/internal/service"
	"github.com/courseloom/courseloom-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func newEditorRouter() (*gin.Engine, *service.EditorService) {
	svc := service.NewEditorService(editor.NewStore(time.Hour), nil, zerolog.Nop())
	h := NewEditorHandler(svc)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	api := r.Group("/api/v1")
	api.Use(middleware.RequireInstructorToken())
	{
		api.POST("/versions/:version_id/editor", h.OpenSession)
		api.GET("/editor/:session_id", h.GetSession)
		api.POST("/editor/:session_id/questions", h.AddQuestion)
		api.PUT("/editor/:session_id/questions/:question_number", h.EditQuestion)
		api.DELETE("/editor/:session_id/questions/:question_number", h.DeleteQuestion)
		api.POST("/editor/:session_id/import", h.ImportSuite)
		api.DELETE("/editor/:session_id", h.DiscardSession)
	}
	return r, svc
}

func doRequest(t *testing.T, r *gin.Engine, method, path, contentType string, body *bytes.Buffer) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer test-token")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func openTestSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/versions/ver-1/editor", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	data := envelope["data"].(map[string]any)
	ed := data["editor"].(map[string]any)
	return ed["session_id"].(string)
}

func TestOpenSessionRequiresToken(t *testing.T) {
	r, _ := newEditorRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/versions/ver-1/editor", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), string(response.ErrTokenRequired))
}

func TestAddQuestionRoundTrip(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	payload := `{
		"question": {
			"question_number": 1,
			"description": "What is latency?",
			"options": ["delay", "throughput"],
			"correct_answer": "delay",
			"difficulty": "EASY",
			"type": "MULTIPLE_CHOICE",
			"tags": ["TAG_NETWORK"],
			"estimated_time_in_seconds": 45
		}
	}`

	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/editor/"+sessionID+"/questions",
		"application/json", bytes.NewBufferString(payload))
	require.Equal(t, http.StatusCreated, w.Code)

	ed := envelope["data"].(map[string]any)["editor"].(map[string]any)
	questions := ed["questions"].([]any)
	require.Len(t, questions, 1)

	q := questions[0].(map[string]any)
	assert.Equal(t, float64(1), q["question_number"])
	// Seconds are converted to milliseconds on the way in.
	assert.Equal(t, float64(45000), q["estimated_time_in_ms"])
}

func TestAddQuestionBindingErrors(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	// Only one option and an unknown tag: binding rejects both.
	payload := `{
		"question": {
			"question_number": 1,
			"description": "Broken",
			"options": ["only"],
			"correct_answer": "only",
			"difficulty": "EASY",
			"type": "MULTIPLE_CHOICE",
			"tags": ["TAG_UNKNOWN"],
			"estimated_time_in_seconds": 45
		}
	}`

	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/editor/"+sessionID+"/questions",
		"application/json", bytes.NewBufferString(payload))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errBody := envelope["error"].(map[string]any)
	assert.Equal(t, string(response.ErrValidation), errBody["code"])
	assert.NotEmpty(t, errBody["fields"])
}

func TestEditQuestionNumberMismatch(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	payload := `{
		"question": {
			"question_number": 2,
			"description": "Renumber attempt",
			"options": ["A", "B"],
			"correct_answer": "A",
			"difficulty": "EASY",
			"type": "MULTIPLE_CHOICE",
			"tags": ["TAG_GENERAL"],
			"estimated_time_in_seconds": 30
		}
	}`

	w, _ := doRequest(t, r, http.MethodPut, "/api/v1/editor/"+sessionID+"/questions/1",
		"application/json", bytes.NewBufferString(payload))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnknownQuestion(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	w, envelope := doRequest(t, r, http.MethodDelete, "/api/v1/editor/"+sessionID+"/questions/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	errBody := envelope["error"].(map[string]any)
	assert.Equal(t, string(response.ErrQuestionNotFound), errBody["code"])
}

func multipartSuite(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportSuite(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	doc := `{
		"suite_title": "Upload Suite",
		"suite_description": "A suite uploaded through the handler.",
		"suite_keywords": ["upload"],
		"questions": [{
			"question_number": 7,
			"description": "Imported",
			"options": ["A", "B"],
			"correct_answer": "B",
			"difficulty": "MEDIUM",
			"type": "MULTIPLE_CHOICE",
			"estimated_time_in_ms": 60000,
			"tags": ["TAG_GENERAL"]
		}]
	}`

	body, contentType := multipartSuite(t, "suite.json", doc)
	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/editor/"+sessionID+"/import", contentType, body)
	require.Equal(t, http.StatusOK, w.Code)

	ed := envelope["data"].(map[string]any)["editor"].(map[string]any)
	assert.Equal(t, "Upload Suite", ed["suite_title"])
	assert.Len(t, ed["questions"].([]any), 1)
}

func TestImportSuiteSurfacesViolationMessage(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	doc := `{
		"suite_title": "ab",
		"suite_description": "Long enough description.",
		"suite_keywords": ["kw"],
		"questions": []
	}`

	body, contentType := multipartSuite(t, "suite.json", doc)
	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/editor/"+sessionID+"/import", contentType, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errBody := envelope["error"].(map[string]any)
	assert.Equal(t, "suite_title must be at least 3 characters long", errBody["message"])
}

func TestImportSuiteMissingFile(t *testing.T) {
	r, _ := newEditorRouter()
	sessionID := openTestSession(t, r)

	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/editor/"+sessionID+"/import",
		"application/json", bytes.NewBufferString("{}"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errBody := envelope["error"].(map[string]any)
	assert.Equal(t, string(response.ErrFileRequired), errBody["code"])
}

func TestSessionNotFound(t *testing.T) {
	r, _ := newEditorRouter()

	w, envelope := doRequest(t, r, http.MethodGet, "/api/v1/editor/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	errBody := envelope["error"].(map[string]any)
	assert.Equal(t, string(response.ErrSessionNotFound), errBody["code"])
}

func TestDiscardSession(t *testing.T) {
	r, svc := newEditorRouter()
	sessionID := openTestSession(t, r)

	w, _ := doRequest(t, r, http.MethodDelete, "/api/v1/editor/"+sessionID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := svc.Snapshot(sessionID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
