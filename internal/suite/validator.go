// Package suite validates externally supplied question-suite documents
// before they may enter an editing session. Validation is ordered and
// short-circuiting: the first violation wins and later checks never run.
package suite

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/courseloom/courseloom-backend/internal/model"
)

// MaxDocumentBytes is the upload size ceiling for suite documents.
const MaxDocumentBytes = 10 * 1024 * 1024

// Sentinel errors for the pre-parse gates.
var (
	ErrNotJSON   = errors.New("Please upload a valid JSON file")
	ErrTooLarge  = errors.New("File size must be less than 10MB")
	ErrMalformed = errors.New("Invalid JSON format. Please check your file.")
)

// ValidationError is the first structural or semantic violation found in
// an otherwise parseable document. The message is user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func violation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var validDifficulties = map[string]model.QuestionDifficulty{
	"EASY":   model.DifficultyEasy,
	"MEDIUM": model.DifficultyMedium,
	"HARD":   model.DifficultyHard,
}

var validTypes = map[string]model.QuestionType{
	"MULTIPLE_CHOICE": model.QuestionTypeMultipleChoice,
	"MULTIPLE_SELECT": model.QuestionTypeMultipleSelect,
	"FILL_IN":         model.QuestionTypeFillIn,
}

// CheckUpload rejects a file before its content is read: the declared
// media type must indicate JSON (by MIME type or .json suffix) and the
// size must not exceed MaxDocumentBytes.
func CheckUpload(filename, contentType string, size int64) error {
	if contentType != "application/json" && !strings.HasSuffix(filename, ".json") {
		return ErrNotJSON
	}
	if size > MaxDocumentBytes {
		return ErrTooLarge
	}
	return nil
}

// Parse decides whether raw document content may be accepted as a Suite.
// It returns either a normalized Suite (title, description and keywords
// trimmed, hints and solution steps defaulted to empty) or the first
// violation found. Pure function of its input; no side effects.
func Parse(data []byte) (*model.Suite, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrMalformed
	}

	title, err := suiteTitle(doc)
	if err != nil {
		return nil, err
	}
	description, err := suiteDescription(doc)
	if err != nil {
		return nil, err
	}
	keywords, err := suiteKeywords(doc)
	if err != nil {
		return nil, err
	}

	rawQuestions, ok := doc["questions"].([]any)
	if !ok {
		return nil, violation("JSON must contain a 'questions' array")
	}
	if len(rawQuestions) == 0 {
		return nil, violation("No questions found in the file")
	}

	questions := make([]model.Question, 0, len(rawQuestions))
	for i, raw := range rawQuestions {
		// Error messages use the 1-based position in the file, which is
		// unrelated to the question_number field.
		q, err := parseQuestion(raw, i+1)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return &model.Suite{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Questions:   questions,
	}, nil
}

func suiteTitle(doc map[string]any) (string, error) {
	s, ok := doc["suite_title"].(string)
	if !ok || s == "" {
		return "", violation("Missing or invalid suite_title")
	}
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 3 {
		return "", violation("suite_title must be at least 3 characters long")
	}
	return trimmed, nil
}

func suiteDescription(doc map[string]any) (string, error) {
	s, ok := doc["suite_description"].(string)
	if !ok || s == "" {
		return "", violation("Missing or invalid suite_description")
	}
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 10 {
		return "", violation("suite_description must be at least 10 characters long")
	}
	return trimmed, nil
}

func suiteKeywords(doc map[string]any) ([]string, error) {
	raw, ok := doc["suite_keywords"].([]any)
	if !ok {
		return nil, violation("suite_keywords must be an array")
	}
	if len(raw) == 0 {
		return nil, violation("suite_keywords must have at least one keyword")
	}
	keywords := make([]string, len(raw))
	for i, kw := range raw {
		s, ok := kw.(string)
		if !ok {
			return nil, violation("suite_keywords[%d] must be a string", i)
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, violation("suite_keywords[%d] cannot be empty", i)
		}
		keywords[i] = trimmed
	}
	return keywords, nil
}

// parseQuestion validates one question in the fixed field order and
// converts it, passing all accepted values through unchanged.
func parseQuestion(raw any, pos int) (model.Question, error) {
	var zero model.Question

	q, ok := raw.(map[string]any)
	if !ok {
		return zero, violation("Question %d: Missing or invalid question_number", pos)
	}

	// JSON numbers arrive as float64; a fractional value is not a valid
	// question number and must not be truncated into one.
	number, ok := q["question_number"].(float64)
	if !ok || number == 0 || number != math.Trunc(number) {
		return zero, violation("Question %d: Missing or invalid question_number", pos)
	}

	description, ok := q["description"].(string)
	if !ok || description == "" {
		return zero, violation("Question %d: Missing or invalid description", pos)
	}

	rawOptions, ok := q["options"].([]any)
	if !ok || len(rawOptions) < 2 {
		return zero, violation("Question %d: Must have at least 2 options", pos)
	}
	options := make([]string, len(rawOptions))
	for i, opt := range rawOptions {
		s, ok := opt.(string)
		if !ok {
			return zero, violation("Question %d: Missing or invalid options", pos)
		}
		options[i] = s
	}

	correctAnswer, ok := q["correct_answer"].(string)
	if !ok || correctAnswer == "" {
		return zero, violation("Question %d: Missing or invalid correct_answer", pos)
	}
	if !contains(options, correctAnswer) {
		return zero, violation("Question %d: correct_answer must be one of the options", pos)
	}

	difficultyStr, _ := q["difficulty"].(string)
	difficulty, ok := validDifficulties[difficultyStr]
	if !ok {
		return zero, violation("Question %d: Invalid difficulty (must be EASY, MEDIUM, or HARD)", pos)
	}

	typeStr, _ := q["type"].(string)
	questionType, ok := validTypes[typeStr]
	if !ok {
		return zero, violation("Question %d: Invalid type (must be MULTIPLE_CHOICE, MULTIPLE_SELECT, or FILL_IN)", pos)
	}

	estimatedTime, ok := q["estimated_time_in_ms"].(float64)
	if !ok || estimatedTime == 0 {
		return zero, violation("Question %d: Missing or invalid estimated_time_in_ms", pos)
	}

	rawTags, ok := q["tags"].([]any)
	if !ok || len(rawTags) == 0 {
		return zero, violation("Question %d: Must have at least one tag", pos)
	}
	tags := make([]model.QuestionTag, len(rawTags))
	for i, rawTag := range rawTags {
		s, ok := rawTag.(string)
		if !ok || !validTag(s) {
			return zero, violation("Question %d: Invalid tag %q (must be one of: %s)", pos, rawTag, tagList())
		}
		tags[i] = model.QuestionTag(s)
	}

	return model.Question{
		QuestionNumber:  int(number),
		Description:     description,
		Options:         options,
		CorrectAnswer:   correctAnswer,
		Hints:           stringSlice(q["hints"]),
		SolutionSteps:   stringSlice(q["solution_steps"]),
		Difficulty:      difficulty,
		Type:            questionType,
		Tags:            tags,
		EstimatedTimeMS: estimatedTime,
	}, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func validTag(s string) bool {
	for _, tag := range model.AllTags {
		if string(tag) == s {
			return true
		}
	}
	return false
}

func tagList() string {
	names := make([]string, len(model.AllTags))
	for i, tag := range model.AllTags {
		names[i] = string(tag)
	}
	return strings.Join(names, ", ")
}

// stringSlice converts an optional array field, defaulting to an empty
// slice when absent and keeping only string elements.
func stringSlice(raw any) []string {
	arr, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
