package model

// ReviewStatus enumerates the lifecycle states of a review.
type ReviewStatus string

const (
	ReviewStatusOpen   ReviewStatus = "OPEN"
	ReviewStatusClosed ReviewStatus = "CLOSED"
)

// IssueStatus enumerates the lifecycle states of a reviewer-raised issue.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "OPEN"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusClosed     IssueStatus = "CLOSED"
)

// Issue is a reviewer-raised problem. The upstream API carries the target
// question only as a "Question N:" prefix inside the description; the
// correlator lifts it into QuestionNumber once, at fetch time, and
// everything downstream reads the explicit field.
type Issue struct {
	ID             string      `json:"id"`
	Description    string      `json:"description"`
	Status         IssueStatus `json:"status"`
	Response       *string     `json:"response,omitempty"`
	QuestionNumber *int        `json:"question_number,omitempty"`
}

// ReviewVersion is the reviewed snapshot embedded in a review payload.
type ReviewVersion struct {
	VersionNumber int           `json:"version_number"`
	Course        VersionCourse `json:"course"`
	Questions     []Question    `json:"questions"`
}

// Review is a reviewer's evaluation of one course version.
type Review struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Message       string        `json:"message"`
	Status        ReviewStatus  `json:"status"`
	InsertedAt    string        `json:"inserted_at"`
	CourseVersion ReviewVersion `json:"course_version"`
	Issues        []Issue       `json:"issues"`
}

// ReviewSummary is the review shape embedded in a version detail.
type ReviewSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	InsertedAt  string       `json:"inserted_at"`
	Status      ReviewStatus `json:"status"`
	TotalIssues int          `json:"total_issues"`
}

// UpdateIssueRequest is the payload for responding to an issue.
type UpdateIssueRequest struct {
	Status   string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	Response string `json:"response" binding:"required,min=1"`
}

// InstructorSession is the upstream login result, token included. The
// token is opaque here: it is handed back to the client and forwarded on
// subsequent calls, never verified locally.
type InstructorSession struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Token         string `json:"token"`
	Organizations []Ref  `json:"organizations"`
}

// LoginRequest is the instructor login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
