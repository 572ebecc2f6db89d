// Package editor owns the ordered question list being assembled for one
// course version. A Session is the single writer for its list: every
// mutation is a synchronous in-memory operation, and nothing is persisted
// until the batch is explicitly submitted upstream.
package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/courseloom/courseloom-backend/internal/model"
)

// ErrQuestionNotFound reports an edit or delete whose target
// question_number is absent from the list. Callers can distinguish
// "nothing changed because already absent" from a successful removal.
var ErrQuestionNotFound = errors.New("question not found")

// DuplicateNumberError rejects a submission whose question_number values
// are not unique. Duplicates are representable mid-edit (insertion never
// renumbers) but may not leave the session.
type DuplicateNumberError struct {
	Number int
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("duplicate question_number %d", e.Number)
}

// Session is the editing aggregate for one course version. Created when
// the version-edit view opens, destroyed on discard or successful submit.
type Session struct {
	ID        string
	VersionID string
	CreatedAt time.Time

	mu               sync.Mutex
	touchedAt        time.Time
	suiteTitle       string
	suiteDescription string
	suiteKeywords    []string
	questions        []model.Question
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	SessionID        string           `json:"session_id"`
	VersionID        string           `json:"version_id"`
	SuiteTitle       string           `json:"suite_title"`
	SuiteDescription string           `json:"suite_description"`
	SuiteKeywords    []string         `json:"suite_keywords"`
	Questions        []model.Question `json:"questions"`
}

// Batch is the submission payload handed to the upstream mutation.
type Batch struct {
	VersionID        string
	SuiteTitle       string
	SuiteDescription string
	SuiteKeywords    []string
	Questions        []model.Question
}

// Append adds a question to the end of the list.
func (s *Session) Append(q model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.questions = append(s.questions, q)
}

// InsertAt splices a question into the list at a 0-based position; later
// elements shift right. The position is clamped to the list bounds. No
// element's question_number is renumbered.
func (s *Session) InsertAt(position int, q model.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if position < 0 {
		position = 0
	}
	if position > len(s.questions) {
		position = len(s.questions)
	}
	s.questions = append(s.questions, model.Question{})
	copy(s.questions[position+1:], s.questions[position:])
	s.questions[position] = q
}

// Edit replaces the element whose question_number matches the incoming
// value. Returns ErrQuestionNotFound when no such element exists.
func (s *Session) Edit(q model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	for i := range s.questions {
		if s.questions[i].QuestionNumber == q.QuestionNumber {
			s.questions[i] = q
			return nil
		}
	}
	return ErrQuestionNotFound
}

// Delete removes the element with the given question_number. Returns
// ErrQuestionNotFound when no such element exists.
func (s *Session) Delete(questionNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	for i := range s.questions {
		if s.questions[i].QuestionNumber == questionNumber {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return ErrQuestionNotFound
}

// MergeImport appends every question of a validated suite to the end of
// the list, in suite order, and overwrites the session's suite metadata
// unconditionally. Last import wins.
func (s *Session) MergeImport(suite *model.Suite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.suiteTitle = suite.Title
	s.suiteDescription = suite.Description
	s.suiteKeywords = append([]string(nil), suite.Keywords...)
	s.questions = append(s.questions, suite.Questions...)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SessionID:        s.ID,
		VersionID:        s.VersionID,
		SuiteTitle:       s.suiteTitle,
		SuiteDescription: s.suiteDescription,
		SuiteKeywords:    append(make([]string, 0, len(s.suiteKeywords)), s.suiteKeywords...),
		Questions:        append(make([]model.Question, 0, len(s.questions)), s.questions...),
	}
}

// Batch validates that every question_number is unique and returns the
// submission payload. The list itself is left untouched so a rejected
// submission remains editable.
func (s *Session) Batch() (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{}, len(s.questions))
	for _, q := range s.questions {
		if _, dup := seen[q.QuestionNumber]; dup {
			return nil, &DuplicateNumberError{Number: q.QuestionNumber}
		}
		seen[q.QuestionNumber] = struct{}{}
	}
	return &Batch{
		VersionID:        s.VersionID,
		SuiteTitle:       s.suiteTitle,
		SuiteDescription: s.suiteDescription,
		SuiteKeywords:    append([]string(nil), s.suiteKeywords...),
		Questions:        append([]model.Question(nil), s.questions...),
	}, nil
}

// IdleSince reports the last time the session was read or mutated.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

func (s *Session) touch() {
	s.touchedAt = time.Now()
}
