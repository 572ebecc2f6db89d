package upstream

import (
	"context"

	"github.com/machinebox/graphql"

	"github.com/courseloom/courseloom-backend/internal/model"
)

const loginInstructorQuery = `query LoginInstructor($email: String!, $password: String!) {
  loginInstructor(email: $email, password: $password) {
    id
    email
    name
    token
    organizations {
      id
    }
  }
}`

// LoginInstructor exchanges credentials for an upstream session token.
func (c *Client) LoginInstructor(ctx context.Context, email, password string) (*model.InstructorSession, error) {
	req := graphql.NewRequest(loginInstructorQuery)
	req.Var("email", email)
	req.Var("password", password)

	var resp struct {
		LoginInstructor model.InstructorSession `json:"loginInstructor"`
	}
	if err := c.run(ctx, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.LoginInstructor, nil
}

const listCoursesQuery = `query ListCourses($searchTerm: String, $pagination: PaginationInput) {
  listCourses(searchTerm: $searchTerm, pagination: $pagination) {
    edges {
      node {
        id
        title
        approved_version {
          id
        }
        versions {
          id
        }
      }
    }
  }
}`

// Pagination is the upstream cursor pagination input.
type Pagination struct {
	First int    `json:"first,omitempty"`
	After string `json:"after,omitempty"`
}

// ListCourses returns the instructor's courses matching an optional
// search term.
func (c *Client) ListCourses(ctx context.Context, token, searchTerm string, pagination *Pagination) ([]model.CourseListItem, error) {
	req := graphql.NewRequest(listCoursesQuery)
	if searchTerm != "" {
		req.Var("searchTerm", searchTerm)
	}
	if pagination != nil {
		req.Var("pagination", pagination)
	}

	var resp struct {
		ListCourses struct {
			Edges []struct {
				Node model.CourseListItem `json:"node"`
			} `json:"edges"`
		} `json:"listCourses"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}

	courses := make([]model.CourseListItem, len(resp.ListCourses.Edges))
	for i, edge := range resp.ListCourses.Edges {
		courses[i] = edge.Node
	}
	return courses, nil
}

const getCourseQuery = `query GetCourse($courseId: String!) {
  getCourse(courseId: $courseId) {
    id
    title
    description
    approved_version {
      id
      version_number
      status
      inserted_at
      questions {
        id
      }
      assigned_admin {
        name
      }
    }
    versions {
      id
      version_number
      inserted_at
      status
      assigned_admin {
        name
      }
      questions {
        id
      }
    }
  }
}`

// GetCourse fetches one course with its approved version and history.
func (c *Client) GetCourse(ctx context.Context, token, courseID string) (*model.Course, error) {
	req := graphql.NewRequest(getCourseQuery)
	req.Var("courseId", courseID)

	var resp struct {
		GetCourse model.Course `json:"getCourse"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.GetCourse, nil
}

const createCourseMutation = `mutation CreateCourse($organizationId: String!, $courseInfo: CourseInfoInput!) {
  createCourse(organizationId: $organizationId, courseInfo: $courseInfo) {
    id
    title
  }
}`

// CreateCourse creates a course under an organization.
func (c *Client) CreateCourse(ctx context.Context, token, organizationID string, info model.CourseInfo) (*model.CourseRef, error) {
	req := graphql.NewRequest(createCourseMutation)
	req.Var("organizationId", organizationID)
	req.Var("courseInfo", info)

	var resp struct {
		CreateCourse model.CourseRef `json:"createCourse"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreateCourse, nil
}

const addCourseVersionMutation = `mutation AddCourseVersion($courseId: String!) {
  addCourseVersion(courseId: $courseId) {
    id
    version_number
    status
    inserted_at
  }
}`

// AddCourseVersion creates a new draft version for a course.
func (c *Client) AddCourseVersion(ctx context.Context, token, courseID string) (*model.CourseVersion, error) {
	req := graphql.NewRequest(addCourseVersionMutation)
	req.Var("courseId", courseID)

	var resp struct {
		AddCourseVersion model.CourseVersion `json:"addCourseVersion"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.AddCourseVersion, nil
}

const getVersionQuery = `query GetInstructorCourseVersion($versionId: String!) {
  getInstructorCourseVersion(versionId: $versionId) {
    id
    version_number
    status
    course {
      title
      instructor {
        name
      }
    }
    review_request {
      inserted_at
    }
    reviews {
      id
      title
      message
      inserted_at
      status
      total_issues
    }
    total_questions
    total_reviews
  }
}`

// GetInstructorCourseVersion fetches the instructor view of one version.
func (c *Client) GetInstructorCourseVersion(ctx context.Context, token, versionID string) (*model.VersionDetail, error) {
	req := graphql.NewRequest(getVersionQuery)
	req.Var("versionId", versionID)

	var resp struct {
		GetInstructorCourseVersion model.VersionDetail `json:"getInstructorCourseVersion"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.GetInstructorCourseVersion, nil
}

const listQuestionsQuery = `query ListInstructorQuestionsForVersion($versionId: String!, $searchTerm: String, $pagination: PaginationInput) {
  listInstructorQuestionsForVersion(
    versionId: $versionId
    searchTerm: $searchTerm
    pagination: $pagination
  ) {
    edges {
      node {
        id
        correct_answer
        description
        difficulty
        estimated_time_in_ms
        hints
        options
        question_number
        solution_steps
        tags
        type
      }
    }
  }
}`

// ListQuestionsForVersion fetches the persisted questions of a version.
func (c *Client) ListQuestionsForVersion(ctx context.Context, token, versionID, searchTerm string, pagination *Pagination) ([]model.Question, error) {
	req := graphql.NewRequest(listQuestionsQuery)
	req.Var("versionId", versionID)
	if searchTerm != "" {
		req.Var("searchTerm", searchTerm)
	}
	if pagination != nil {
		req.Var("pagination", pagination)
	}

	var resp struct {
		ListInstructorQuestionsForVersion struct {
			Edges []struct {
				Node model.Question `json:"node"`
			} `json:"edges"`
		} `json:"listInstructorQuestionsForVersion"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}

	questions := make([]model.Question, len(resp.ListInstructorQuestionsForVersion.Edges))
	for i, edge := range resp.ListInstructorQuestionsForVersion.Edges {
		questions[i] = edge.Node
	}
	return questions, nil
}

const addQuestionsMutation = `mutation AddQuestionsToCourseVersion($versionId: String!, $questions: [QuestionInput!]!, $suiteTitle: String!, $suiteDescription: String!, $suiteKeywords: [String!]!) {
  addQuestionsToCourseVersion(
    versionId: $versionId
    questions: $questions
    suiteTitle: $suiteTitle
    suiteDescription: $suiteDescription
    suiteKeywords: $suiteKeywords
  ) {
    id
  }
}`

// AddQuestionsToCourseVersion submits an assembled question batch. On
// success the server copy becomes authoritative and the local editing
// session should be discarded.
func (c *Client) AddQuestionsToCourseVersion(ctx context.Context, token, versionID string, questions []model.Question, suiteTitle, suiteDescription string, suiteKeywords []string) (string, error) {
	req := graphql.NewRequest(addQuestionsMutation)
	req.Var("versionId", versionID)
	req.Var("questions", questions)
	req.Var("suiteTitle", suiteTitle)
	req.Var("suiteDescription", suiteDescription)
	req.Var("suiteKeywords", suiteKeywords)

	var resp struct {
		AddQuestionsToCourseVersion struct {
			ID string `json:"id"`
		} `json:"addQuestionsToCourseVersion"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return "", err
	}
	return resp.AddQuestionsToCourseVersion.ID, nil
}

const requestReviewMutation = `mutation RequestCourseVersionReview($versionId: String!) {
  requestCourseVersionReview(versionId: $versionId) {
    id
  }
}`

// RequestCourseVersionReview asks for a review of a version.
func (c *Client) RequestCourseVersionReview(ctx context.Context, token, versionID string) (string, error) {
	req := graphql.NewRequest(requestReviewMutation)
	req.Var("versionId", versionID)

	var resp struct {
		RequestCourseVersionReview struct {
			ID string `json:"id"`
		} `json:"requestCourseVersionReview"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return "", err
	}
	return resp.RequestCourseVersionReview.ID, nil
}

const getReviewQuery = `query GetInstructorVersionReview($reviewId: String!) {
  getInstructorVersionReview(reviewId: $reviewId) {
    id
    inserted_at
    message
    status
    title
    course_version {
      version_number
      course {
        title
      }
      questions {
        id
        question_number
        correct_answer
        description
        difficulty
        estimated_time_in_ms
        hints
        options
        solution_steps
        tags
        type
      }
    }
    issues {
      id
      description
      status
      response
    }
  }
}`

// GetInstructorVersionReview fetches one review with the reviewed
// question set and its issues.
func (c *Client) GetInstructorVersionReview(ctx context.Context, token, reviewID string) (*model.Review, error) {
	req := graphql.NewRequest(getReviewQuery)
	req.Var("reviewId", reviewID)

	var resp struct {
		GetInstructorVersionReview model.Review `json:"getInstructorVersionReview"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.GetInstructorVersionReview, nil
}

const updateIssueMutation = `mutation UpdateIssue($issueId: String!, $issueStatus: IssueStatusType!, $response: String!) {
  updateIssue(issueId: $issueId, issueStatus: $issueStatus, response: $response) {
    id
    description
    response
    status
  }
}`

// UpdateIssue sets an issue's status and response in one round trip.
func (c *Client) UpdateIssue(ctx context.Context, token, issueID string, status model.IssueStatus, responseText string) (*model.Issue, error) {
	req := graphql.NewRequest(updateIssueMutation)
	req.Var("issueId", issueID)
	req.Var("issueStatus", status)
	req.Var("response", responseText)

	var resp struct {
		UpdateIssue model.Issue `json:"updateIssue"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.UpdateIssue, nil
}

const updateQuestionMutation = `mutation UpdateQuestion($questionId: String!, $question: QuestionInput!) {
  updateQuestion(questionId: $questionId, question: $question) {
    id
    correct_answer
    description
    difficulty
    estimated_time_in_ms
    hints
    options
    question_number
    solution_steps
    tags
    type
  }
}`

// questionInput strips the read-only id field from a question payload.
type questionInput struct {
	QuestionNumber  int                      `json:"question_number"`
	Description     string                   `json:"description"`
	Options         []string                 `json:"options"`
	CorrectAnswer   string                   `json:"correct_answer"`
	Hints           []string                 `json:"hints"`
	SolutionSteps   []string                 `json:"solution_steps"`
	Difficulty      model.QuestionDifficulty `json:"difficulty"`
	Type            model.QuestionType       `json:"type"`
	Tags            []model.QuestionTag      `json:"tags"`
	EstimatedTimeMS float64                  `json:"estimated_time_in_ms"`
}

func toInput(q model.Question) questionInput {
	return questionInput{
		QuestionNumber:  q.QuestionNumber,
		Description:     q.Description,
		Options:         q.Options,
		CorrectAnswer:   q.CorrectAnswer,
		Hints:           q.Hints,
		SolutionSteps:   q.SolutionSteps,
		Difficulty:      q.Difficulty,
		Type:            q.Type,
		Tags:            q.Tags,
		EstimatedTimeMS: q.EstimatedTimeMS,
	}
}

// UpdateQuestion replaces a persisted question's fields.
func (c *Client) UpdateQuestion(ctx context.Context, token, questionID string, question model.Question) (*model.Question, error) {
	req := graphql.NewRequest(updateQuestionMutation)
	req.Var("questionId", questionID)
	req.Var("question", toInput(question))

	var resp struct {
		UpdateQuestion model.Question `json:"updateQuestion"`
	}
	if err := c.run(ctx, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.UpdateQuestion, nil
}
