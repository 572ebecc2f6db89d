package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloom/courseloom-backend/internal/model"
)

func question(number int) model.Question {
	return model.Question{
		QuestionNumber:  number,
		Description:     "placeholder",
		Options:         []string{"A", "B"},
		CorrectAnswer:   "A",
		Hints:           []string{},
		SolutionSteps:   []string{},
		Difficulty:      model.DifficultyEasy,
		Type:            model.QuestionTypeMultipleChoice,
		Tags:            []model.QuestionTag{model.TagGeneral},
		EstimatedTimeMS: 30000,
	}
}

func numbers(snapshot Snapshot) []int {
	out := make([]int, len(snapshot.Questions))
	for i, q := range snapshot.Questions {
		out[i] = q.QuestionNumber
	}
	return out
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return NewStore(time.Hour).Open("version-1")
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	s := newSession(t)
	s.Append(question(5))
	s.Append(question(2))
	s.Append(question(9))

	// question_number is an identity key, not a position: the list keeps
	// arrival order regardless of numbering.
	assert.Equal(t, []int{5, 2, 9}, numbers(s.Snapshot()))
}

func TestInsertAtSplices(t *testing.T) {
	s := newSession(t)
	s.Append(question(5))
	s.InsertAt(0, question(2))

	assert.Equal(t, []int{2, 5}, numbers(s.Snapshot()))
}

func TestInsertAtClampsOutOfRange(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))

	s.InsertAt(-3, question(2))
	s.InsertAt(100, question(3))

	assert.Equal(t, []int{2, 1, 3}, numbers(s.Snapshot()))
}

func TestEditReplacesByNumber(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))
	s.Append(question(2))

	edited := question(2)
	edited.Description = "updated"
	require.NoError(t, s.Edit(edited))

	snapshot := s.Snapshot()
	assert.Equal(t, []int{1, 2}, numbers(snapshot))
	assert.Equal(t, "updated", snapshot.Questions[1].Description)
}

func TestEditMissingNumber(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))

	err := s.Edit(question(7))
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.Equal(t, []int{1}, numbers(s.Snapshot()))
}

func TestDeleteRemovesWithoutRenumbering(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))
	s.Append(question(2))
	s.Append(question(3))

	require.NoError(t, s.Delete(2))
	assert.Equal(t, []int{1, 3}, numbers(s.Snapshot()))

	err := s.Delete(2)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestMergeImportAppendsAndOverwritesMetadata(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))

	s.MergeImport(&model.Suite{
		Title:       "First Import",
		Description: "first import description",
		Keywords:    []string{"one"},
		Questions:   []model.Question{question(10), question(11)},
	})
	s.MergeImport(&model.Suite{
		Title:       "Second Import",
		Description: "second import description",
		Keywords:    []string{"two"},
		Questions:   []model.Question{question(20)},
	})

	snapshot := s.Snapshot()
	assert.Equal(t, []int{1, 10, 11, 20}, numbers(snapshot))
	assert.Equal(t, "Second Import", snapshot.SuiteTitle)
	assert.Equal(t, []string{"two"}, snapshot.SuiteKeywords)
}

func TestSnapshotEmptyListsAreNotNil(t *testing.T) {
	s := newSession(t)
	snapshot := s.Snapshot()

	assert.NotNil(t, snapshot.SuiteKeywords)
	assert.NotNil(t, snapshot.Questions)
}

func TestBatchRejectsDuplicateNumbers(t *testing.T) {
	s := newSession(t)
	s.Append(question(1))
	s.Append(question(2))
	s.Append(question(1))

	_, err := s.Batch()
	var dup *DuplicateNumberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.Number)

	// A rejected submission leaves the list untouched so the duplicate
	// can be fixed in place.
	assert.Equal(t, []int{1, 2, 1}, numbers(s.Snapshot()))
}

func TestBatchCarriesSessionState(t *testing.T) {
	s := newSession(t)
	s.MergeImport(&model.Suite{
		Title:       "Batch Suite",
		Description: "carried over on submit",
		Keywords:    []string{"kw"},
		Questions:   []model.Question{question(1), question(2)},
	})

	batch, err := s.Batch()
	require.NoError(t, err)
	assert.Equal(t, "version-1", batch.VersionID)
	assert.Equal(t, "Batch Suite", batch.SuiteTitle)
	assert.Len(t, batch.Questions, 2)
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(time.Hour)

	s := store.Open("version-9")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "version-9", s.VersionID)

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	store.Close(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)
}

func TestStoreSweepDropsIdleSessions(t *testing.T) {
	store := NewStore(time.Minute)
	s := store.Open("version-1")
	fresh := store.Open("version-2")

	removed := store.Sweep(time.Now())
	assert.Zero(t, removed)
	assert.Equal(t, 2, store.Len())

	removed = store.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 2, removed)
	assert.Zero(t, store.Len())

	_, ok := store.Get(s.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.False(t, ok)
}
