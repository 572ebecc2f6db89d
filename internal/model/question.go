package model

import "strings"

// QuestionDifficulty enumerates the difficulty levels a question may carry.
type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "EASY"
	DifficultyMedium QuestionDifficulty = "MEDIUM"
	DifficultyHard   QuestionDifficulty = "HARD"
)

// QuestionType enumerates the supported answer formats.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeMultipleSelect QuestionType = "MULTIPLE_SELECT"
	QuestionTypeFillIn         QuestionType = "FILL_IN"
)

// QuestionTag enumerates the fixed topic tag vocabulary.
type QuestionTag string

const (
	TagGeneral       QuestionTag = "TAG_GENERAL"
	TagAlgorithm     QuestionTag = "TAG_ALGORITHM"
	TagDataStructure QuestionTag = "TAG_DATA_STRUCTURE"
	TagDatabase      QuestionTag = "TAG_DATABASE"
	TagNetwork       QuestionTag = "TAG_NETWORK"
	TagSecurity      QuestionTag = "TAG_SECURITY"
	TagSystem        QuestionTag = "TAG_SYSTEM"
	TagWeb           QuestionTag = "TAG_WEB"
)

// AllTags lists every valid tag in display order.
var AllTags = []QuestionTag{
	TagGeneral,
	TagAlgorithm,
	TagDataStructure,
	TagDatabase,
	TagNetwork,
	TagSecurity,
	TagSystem,
	TagWeb,
}

// Question is a single assessable item. QuestionNumber is the identity key
// used by edit and delete; insertion never renumbers it, and uniqueness is
// only enforced when a batch is submitted upstream.
type Question struct {
	ID              string             `json:"id,omitempty"`
	QuestionNumber  int                `json:"question_number"`
	Description     string             `json:"description"`
	Options         []string           `json:"options"`
	CorrectAnswer   string             `json:"correct_answer"`
	Hints           []string           `json:"hints"`
	SolutionSteps   []string           `json:"solution_steps"`
	Difficulty      QuestionDifficulty `json:"difficulty"`
	Type            QuestionType       `json:"type"`
	Tags            []QuestionTag      `json:"tags"`
	EstimatedTimeMS float64            `json:"estimated_time_in_ms"`
}

// QuestionPayload is the manual-entry form for a single question. It is
// stricter than the import path: every option must be non-blank and the
// estimated time is entered in seconds (stored as seconds * 1000).
type QuestionPayload struct {
	QuestionNumber       int      `json:"question_number" binding:"required,gt=0"`
	Description          string   `json:"description" binding:"required"`
	Options              []string `json:"options" binding:"required,min=2"`
	CorrectAnswer        string   `json:"correct_answer" binding:"required"`
	Hints                []string `json:"hints" binding:"omitempty"`
	SolutionSteps        []string `json:"solution_steps" binding:"omitempty"`
	Difficulty           string   `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	Type                 string   `json:"type" binding:"required,oneof=MULTIPLE_CHOICE MULTIPLE_SELECT FILL_IN"`
	Tags                 []string `json:"tags" binding:"required,min=1,dive,oneof=TAG_GENERAL TAG_ALGORITHM TAG_DATA_STRUCTURE TAG_DATABASE TAG_NETWORK TAG_SECURITY TAG_SYSTEM TAG_WEB"`
	EstimatedTimeSeconds float64  `json:"estimated_time_in_seconds" binding:"required,gt=0"`
}

// FieldErrors maps field names to human-readable validation messages.
type FieldErrors map[string]string

// ToQuestion applies the trim-and-drop-blank policy and converts the form
// into a committed Question. Returns field errors for violations the
// binding layer cannot express (blank-after-trim values).
func (p *QuestionPayload) ToQuestion() (Question, FieldErrors) {
	fields := FieldErrors{}

	description := strings.TrimSpace(p.Description)
	if description == "" {
		fields["description"] = "Description is required"
	}

	options := make([]string, 0, len(p.Options))
	for _, opt := range p.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			fields["options"] = "Option cannot be empty"
			continue
		}
		options = append(options, trimmed)
	}
	if _, dup := fields["options"]; !dup && len(options) < 2 {
		fields["options"] = "At least 2 options are required"
	}

	if strings.TrimSpace(p.CorrectAnswer) == "" {
		fields["correct_answer"] = "Please select a correct answer"
	}

	if len(fields) > 0 {
		return Question{}, fields
	}

	tags := make([]QuestionTag, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = QuestionTag(t)
	}

	return Question{
		QuestionNumber:  p.QuestionNumber,
		Description:     description,
		Options:         options,
		CorrectAnswer:   p.CorrectAnswer,
		Hints:           dropBlank(p.Hints),
		SolutionSteps:   dropBlank(p.SolutionSteps),
		Difficulty:      QuestionDifficulty(p.Difficulty),
		Type:            QuestionType(p.Type),
		Tags:            tags,
		EstimatedTimeMS: p.EstimatedTimeSeconds * 1000,
	}, nil
}

func dropBlank(values []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return kept
}
