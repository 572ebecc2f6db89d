package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/editor"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/suite"
	"github.com/courseloom/courseloom-backend/internal/upstream"
)

// ErrSessionNotFound reports an unknown or expired editing session.
var ErrSessionNotFound = fmt.Errorf("editing session not found")

// EditorService drives the question-assembly workflow: it owns the
// session store and is the only code that moves a batch from a session
// to the upstream mutation.
type EditorService struct {
	store *editor.Store
	up    *upstream.Client
	log   zerolog.Logger
}

// NewEditorService creates a new EditorService.
func NewEditorService(store *editor.Store, up *upstream.Client, log zerolog.Logger) *EditorService {
	return &EditorService{
		store: store,
		up:    up,
		log:   log.With().Str("component", "editor_service").Logger(),
	}
}

// Open starts a fresh editing session for a course version.
func (s *EditorService) Open(versionID string) editor.Snapshot {
	session := s.store.Open(versionID)
	s.log.Debug().Str("session_id", session.ID).Str("version_id", versionID).Msg("Editing session opened")
	return session.Snapshot()
}

// Snapshot returns the current state of a session.
func (s *EditorService) Snapshot(sessionID string) (editor.Snapshot, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return editor.Snapshot{}, ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// AddQuestion commits a manually entered question, appending it or, when
// position is non-nil, splicing it in at that 0-based position. The
// payload has already passed binding validation; the remaining
// trim-level checks surface as field errors.
func (s *EditorService) AddQuestion(sessionID string, payload *model.QuestionPayload, position *int) (editor.Snapshot, model.FieldErrors, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return editor.Snapshot{}, nil, ErrSessionNotFound
	}

	question, fields := payload.ToQuestion()
	if fields != nil {
		return editor.Snapshot{}, fields, nil
	}

	if position != nil {
		session.InsertAt(*position, question)
	} else {
		session.Append(question)
	}
	return session.Snapshot(), nil, nil
}

// EditQuestion replaces the question whose number matches the payload's
// question_number. Returns editor.ErrQuestionNotFound when absent.
func (s *EditorService) EditQuestion(sessionID string, payload *model.QuestionPayload) (editor.Snapshot, model.FieldErrors, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return editor.Snapshot{}, nil, ErrSessionNotFound
	}

	question, fields := payload.ToQuestion()
	if fields != nil {
		return editor.Snapshot{}, fields, nil
	}

	if err := session.Edit(question); err != nil {
		return editor.Snapshot{}, nil, err
	}
	return session.Snapshot(), nil, nil
}

// DeleteQuestion removes the question with the given number. Returns
// editor.ErrQuestionNotFound when absent.
func (s *EditorService) DeleteQuestion(sessionID string, questionNumber int) (editor.Snapshot, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return editor.Snapshot{}, ErrSessionNotFound
	}
	if err := session.Delete(questionNumber); err != nil {
		return editor.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Import validates an uploaded suite document and merges it into the
// session. The whole file is rejected on the first violation; on success
// the suite's questions are appended in file order and its metadata
// overwrites the session's (last import wins).
func (s *EditorService) Import(sessionID, filename, contentType string, size int64, content io.Reader) (editor.Snapshot, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return editor.Snapshot{}, ErrSessionNotFound
	}

	if err := suite.CheckUpload(filename, contentType, size); err != nil {
		return editor.Snapshot{}, err
	}

	data, err := io.ReadAll(io.LimitReader(content, suite.MaxDocumentBytes+1))
	if err != nil {
		return editor.Snapshot{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > suite.MaxDocumentBytes {
		return editor.Snapshot{}, suite.ErrTooLarge
	}

	parsed, err := suite.Parse(data)
	if err != nil {
		return editor.Snapshot{}, err
	}

	session.MergeImport(parsed)
	s.log.Info().
		Str("session_id", sessionID).
		Int("questions", len(parsed.Questions)).
		Msg("Suite imported")
	return session.Snapshot(), nil
}

// Submit pushes the assembled batch upstream and destroys the session on
// success. A failed round trip leaves the session untouched so the user
// can retry.
func (s *EditorService) Submit(ctx context.Context, token, sessionID string) (string, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}

	batch, err := session.Batch()
	if err != nil {
		return "", err
	}

	id, err := s.up.AddQuestionsToCourseVersion(ctx, token, batch.VersionID,
		batch.Questions, batch.SuiteTitle, batch.SuiteDescription, batch.SuiteKeywords)
	if err != nil {
		return "", err
	}

	s.store.Close(sessionID)
	s.log.Info().
		Str("session_id", sessionID).
		Str("version_id", batch.VersionID).
		Int("questions", len(batch.Questions)).
		Msg("Question batch submitted")
	return id, nil
}

// Discard tears the session down without submitting.
func (s *EditorService) Discard(sessionID string) {
	s.store.Close(sessionID)
}
