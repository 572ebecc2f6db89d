package model

// Suite is the batch-import envelope for a set of questions. It exists
// only transiently: parsed from an uploaded document, merged into an
// editor session, then discarded once the batch is submitted upstream.
type Suite struct {
	Title       string     `json:"suite_title"`
	Description string     `json:"suite_description"`
	Keywords    []string   `json:"suite_keywords"`
	Questions   []Question `json:"questions"`
}
