package suite

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloom/courseloom-backend/internal/model"
)

func validDoc() map[string]any {
	return map[string]any{
		"suite_title":       "Intro to Networks",
		"suite_description": "Covers the transport and application layers.",
		"suite_keywords":    []any{"networking", "tcp"},
		"questions": []any{
			validQuestion(1),
			validQuestion(2),
		},
	}
}

func validQuestion(number int) map[string]any {
	return map[string]any{
		"question_number":      float64(number),
		"description":          fmt.Sprintf("What does question %d ask?", number),
		"options":              []any{"A", "B", "C"},
		"correct_answer":       "B",
		"hints":                []any{"think about ports"},
		"solution_steps":       []any{"step one"},
		"difficulty":           "MEDIUM",
		"type":                 "MULTIPLE_CHOICE",
		"estimated_time_in_ms": float64(60000),
		"tags":                 []any{"TAG_NETWORK"},
	}
}

func mustJSON(t *testing.T, doc map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestParseValidDocument(t *testing.T) {
	doc, err := Parse(mustJSON(t, validDoc()))
	require.NoError(t, err)

	assert.Equal(t, "Intro to Networks", doc.Title)
	assert.Equal(t, []string{"networking", "tcp"}, doc.Keywords)
	require.Len(t, doc.Questions, 2)

	q := doc.Questions[0]
	assert.Equal(t, 1, q.QuestionNumber)
	assert.Equal(t, []string{"A", "B", "C"}, q.Options)
	assert.Equal(t, "B", q.CorrectAnswer)
	assert.Equal(t, model.DifficultyMedium, q.Difficulty)
	assert.Equal(t, model.QuestionTypeMultipleChoice, q.Type)
	assert.Equal(t, []model.QuestionTag{model.TagNetwork}, q.Tags)
	assert.Equal(t, float64(60000), q.EstimatedTimeMS)
}

func TestParseNormalizesSuiteFields(t *testing.T) {
	raw := validDoc()
	raw["suite_title"] = "  Intro to Networks  "
	raw["suite_description"] = "  Covers the transport and application layers.  "
	raw["suite_keywords"] = []any{" networking "}

	doc, err := Parse(mustJSON(t, raw))
	require.NoError(t, err)

	assert.Equal(t, "Intro to Networks", doc.Title)
	assert.Equal(t, "Covers the transport and application layers.", doc.Description)
	assert.Equal(t, []string{"networking"}, doc.Keywords)
}

func TestParseDefaultsOptionalArrays(t *testing.T) {
	q := validQuestion(1)
	delete(q, "hints")
	delete(q, "solution_steps")
	raw := validDoc()
	raw["questions"] = []any{q}

	doc, err := Parse(mustJSON(t, raw))
	require.NoError(t, err)

	// Absent hints and solution steps become empty slices, never nil,
	// so they serialize as [] downstream.
	assert.NotNil(t, doc.Questions[0].Hints)
	assert.Empty(t, doc.Questions[0].Hints)
	assert.NotNil(t, doc.Questions[0].SolutionSteps)
	assert.Empty(t, doc.Questions[0].SolutionSteps)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"suite_title": "abc",`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseSuiteFieldViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc map[string]any)
		message string
	}{
		{
			name:    "missing title",
			mutate:  func(doc map[string]any) { delete(doc, "suite_title") },
			message: "Missing or invalid suite_title",
		},
		{
			name:    "short title",
			mutate:  func(doc map[string]any) { doc["suite_title"] = "ab" },
			message: "suite_title must be at least 3 characters long",
		},
		{
			name:    "whitespace-padded short title",
			mutate:  func(doc map[string]any) { doc["suite_title"] = "  ab  " },
			message: "suite_title must be at least 3 characters long",
		},
		{
			name:    "short description",
			mutate:  func(doc map[string]any) { doc["suite_description"] = "too short" },
			message: "suite_description must be at least 10 characters long",
		},
		{
			name:    "keywords not an array",
			mutate:  func(doc map[string]any) { doc["suite_keywords"] = "networking" },
			message: "suite_keywords must be an array",
		},
		{
			name:    "empty keywords",
			mutate:  func(doc map[string]any) { doc["suite_keywords"] = []any{} },
			message: "suite_keywords must have at least one keyword",
		},
		{
			name:    "blank keyword",
			mutate:  func(doc map[string]any) { doc["suite_keywords"] = []any{"networking", "  "} },
			message: "suite_keywords[1] cannot be empty",
		},
		{
			name:    "missing questions",
			mutate:  func(doc map[string]any) { delete(doc, "questions") },
			message: "JSON must contain a 'questions' array",
		},
		{
			name:    "empty questions",
			mutate:  func(doc map[string]any) { doc["questions"] = []any{} },
			message: "No questions found in the file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validDoc()
			tt.mutate(raw)

			_, err := Parse(mustJSON(t, raw))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestParseQuestionViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q map[string]any)
		message string
	}{
		{
			name:    "zero question_number",
			mutate:  func(q map[string]any) { q["question_number"] = float64(0) },
			message: "Question 2: Missing or invalid question_number",
		},
		{
			name:    "fractional question_number",
			mutate:  func(q map[string]any) { q["question_number"] = 2.5 },
			message: "Question 2: Missing or invalid question_number",
		},
		{
			name:    "missing description",
			mutate:  func(q map[string]any) { q["description"] = "" },
			message: "Question 2: Missing or invalid description",
		},
		{
			name:    "single option",
			mutate:  func(q map[string]any) { q["options"] = []any{"A"} },
			message: "Question 2: Must have at least 2 options",
		},
		{
			name:    "missing correct_answer",
			mutate:  func(q map[string]any) { delete(q, "correct_answer") },
			message: "Question 2: Missing or invalid correct_answer",
		},
		{
			name:    "correct_answer not among options",
			mutate:  func(q map[string]any) { q["correct_answer"] = "Z" },
			message: "Question 2: correct_answer must be one of the options",
		},
		{
			name:    "bad difficulty",
			mutate:  func(q map[string]any) { q["difficulty"] = "BRUTAL" },
			message: "Question 2: Invalid difficulty (must be EASY, MEDIUM, or HARD)",
		},
		{
			name:    "bad type",
			mutate:  func(q map[string]any) { q["type"] = "ESSAY" },
			message: "Question 2: Invalid type (must be MULTIPLE_CHOICE, MULTIPLE_SELECT, or FILL_IN)",
		},
		{
			name:    "zero estimated time",
			mutate:  func(q map[string]any) { q["estimated_time_in_ms"] = float64(0) },
			message: "Question 2: Missing or invalid estimated_time_in_ms",
		},
		{
			name:    "no tags",
			mutate:  func(q map[string]any) { q["tags"] = []any{} },
			message: "Question 2: Must have at least one tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Violations always injected into the second question so the
			// message position is exercised.
			q := validQuestion(2)
			tt.mutate(q)
			raw := validDoc()
			raw["questions"] = []any{validQuestion(1), q}

			_, err := Parse(mustJSON(t, raw))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestParseInvalidTagNamesVocabulary(t *testing.T) {
	q := validQuestion(1)
	q["tags"] = []any{"TAG_COOKING"}
	raw := validDoc()
	raw["questions"] = []any{q}

	_, err := Parse(mustJSON(t, raw))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, `Question 1: Invalid tag "TAG_COOKING"`)
	assert.Contains(t, ve.Message, "TAG_GENERAL")
	assert.Contains(t, ve.Message, "TAG_WEB")
}

func TestParseShortCircuitsOnFirstViolation(t *testing.T) {
	// Both the title and the first question are broken. The title check
	// runs first, so only its message surfaces.
	raw := validDoc()
	raw["suite_title"] = "ab"
	raw["questions"] = []any{map[string]any{}}

	_, err := Parse(mustJSON(t, raw))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "suite_title must be at least 3 characters long", ve.Message)
}

func TestCheckUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		want        error
	}{
		{"json mime", "suite.bin", "application/json", 512, nil},
		{"json suffix", "suite.json", "application/octet-stream", 512, nil},
		{"not json", "suite.txt", "text/plain", 512, ErrNotJSON},
		{"too large", "suite.json", "application/json", MaxDocumentBytes + 1, ErrTooLarge},
		{"at the limit", "suite.json", "application/json", MaxDocumentBytes, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(tt.filename, tt.contentType, tt.size)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
