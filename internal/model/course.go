package model

// VersionStatus enumerates the approval states of a course version.
type VersionStatus string

const (
	VersionStatusPending  VersionStatus = "PENDING"
	VersionStatusApproved VersionStatus = "APPROVED"
)

// Admin is the reviewer assigned to a version, as exposed upstream.
type Admin struct {
	Name string `json:"name"`
}

// Ref is a bare reference to an upstream entity, carrying only its
// identity. Listings return refs so counts can be derived without the
// full payload.
type Ref struct {
	ID string `json:"id"`
}

// CourseVersion is a snapshot of a course's question set.
type CourseVersion struct {
	ID            string        `json:"id"`
	VersionNumber int           `json:"version_number"`
	Status        VersionStatus `json:"status"`
	InsertedAt    string        `json:"inserted_at"`
	AssignedAdmin *Admin        `json:"assigned_admin,omitempty"`
	Questions     []Ref         `json:"questions,omitempty"`
}

// Course aggregates a course with its approved version and version history.
type Course struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ApprovedVersion *CourseVersion  `json:"approved_version,omitempty"`
	Versions        []CourseVersion `json:"versions"`
}

// CourseListItem is the trimmed course shape returned by listings.
type CourseListItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ApprovedVersion *Ref   `json:"approved_version,omitempty"`
	Versions        []Ref  `json:"versions"`
}

// CourseRef is the minimal acknowledgement returned by course creation.
type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// VersionDetail is the instructor-facing view of one version: its course,
// review history, and aggregate totals.
type VersionDetail struct {
	ID             string          `json:"id"`
	VersionNumber  int             `json:"version_number"`
	Status         VersionStatus   `json:"status"`
	Course         VersionCourse   `json:"course"`
	ReviewRequest  *ReviewRequest  `json:"review_request,omitempty"`
	Reviews        []ReviewSummary `json:"reviews"`
	TotalQuestions int             `json:"total_questions"`
	TotalReviews   int             `json:"total_reviews"`
}

// VersionCourse is the course header embedded in a version detail.
type VersionCourse struct {
	Title      string `json:"title"`
	Instructor *Admin `json:"instructor,omitempty"`
}

// ReviewRequest records when a review was requested for a version.
type ReviewRequest struct {
	InsertedAt string `json:"inserted_at"`
}

// CreateCourseRequest is the payload for creating a new course.
type CreateCourseRequest struct {
	OrganizationID string     `json:"organization_id" binding:"required"`
	Course         CourseInfo `json:"course" binding:"required"`
}

// CourseInfo carries the course attributes forwarded to the upstream
// CourseInfoInput.
type CourseInfo struct {
	Title       string   `json:"title" binding:"required,min=3,max=255"`
	Description string   `json:"description" binding:"required,min=10"`
	AvatarURL   string   `json:"avatar_url" binding:"omitempty,url"`
	Level       string   `json:"level" binding:"required"`
	Currency    string   `json:"currency" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	Domains     []string `json:"domains" binding:"required,min=1"`
}
