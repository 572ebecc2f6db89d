package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/config"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/review"
	"github.com/courseloom/courseloom-backend/internal/upstream"
)

// Sentinel errors for issue updates.
var (
	ErrIssueNotFound      = fmt.Errorf("issue not found in review")
	ErrIssueNotActionable = fmt.Errorf("issue is not actionable")
)

// QuestionIssues pairs a reviewed question with its correlated issues.
type QuestionIssues struct {
	Question      model.Question `json:"question"`
	Issues        []model.Issue  `json:"issues"`
	HasOpenIssues bool           `json:"has_open_issues"`
}

// ReviewView is the assembled instructor view of one review: the review
// header, questions sorted by number with their correlated issues, and
// the review-wide open tally (which counts orphaned issues too).
type ReviewView struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Message        string             `json:"message"`
	Status         model.ReviewStatus `json:"status"`
	InsertedAt     string             `json:"inserted_at"`
	CourseTitle    string             `json:"course_title"`
	VersionNumber  int                `json:"version_number"`
	Questions      []QuestionIssues   `json:"questions"`
	OpenIssueCount int                `json:"open_issue_count"`
}

// ReviewService assembles review views and guards issue updates.
type ReviewService struct {
	up    *upstream.Client
	cache resultCache
	log   zerolog.Logger
}

// NewReviewService creates a new ReviewService. rdb may be nil to run
// without caching.
func NewReviewService(up *upstream.Client, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ReviewService {
	l := log.With().Str("component", "review_service").Logger()
	return &ReviewService{
		up:    up,
		cache: newResultCache(rdb, ttl, l),
		log:   l,
	}
}

// GetReview fetches one review and correlates its issues with the
// reviewed questions.
func (s *ReviewService) GetReview(ctx context.Context, token, reviewID string) (*ReviewView, error) {
	fetched, err := s.fetchReview(ctx, token, reviewID)
	if err != nil {
		return nil, err
	}
	return buildView(fetched), nil
}

// UpdateIssue records the instructor's response to an issue. Only OPEN
// and IN_PROGRESS issues are actionable; the current status is taken
// from the review, not from the client.
func (s *ReviewService) UpdateIssue(ctx context.Context, token, reviewID, issueID string, req *model.UpdateIssueRequest) (*model.Issue, error) {
	fetched, err := s.fetchReview(ctx, token, reviewID)
	if err != nil {
		return nil, err
	}

	var current *model.Issue
	for i := range fetched.Issues {
		if fetched.Issues[i].ID == issueID {
			current = &fetched.Issues[i]
			break
		}
	}
	if current == nil {
		return nil, ErrIssueNotFound
	}
	if !review.Actionable(current.Status) {
		return nil, ErrIssueNotActionable
	}

	updated, err := s.up.UpdateIssue(ctx, token, issueID, model.IssueStatus(req.Status), req.Response)
	if err != nil {
		return nil, err
	}

	s.cache.del(ctx, config.CacheKey.ReviewKey(token, reviewID))
	return updated, nil
}

// UpdateQuestion replaces a persisted question's fields and invalidates
// the review cache so the next fetch reflects the change.
func (s *ReviewService) UpdateQuestion(ctx context.Context, token, reviewID, questionID string, payload *model.QuestionPayload) (*model.Question, model.FieldErrors, error) {
	question, fields := payload.ToQuestion()
	if fields != nil {
		return nil, fields, nil
	}

	updated, err := s.up.UpdateQuestion(ctx, token, questionID, question)
	if err != nil {
		return nil, nil, err
	}

	s.cache.del(ctx, config.CacheKey.ReviewKey(token, reviewID))
	return updated, nil, nil
}

// fetchReview returns the raw upstream review, read-through cached, with
// issue correlation already applied.
func (s *ReviewService) fetchReview(ctx context.Context, token, reviewID string) (*model.Review, error) {
	key := config.CacheKey.ReviewKey(token, reviewID)

	var cached model.Review
	if s.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	fetched, err := s.up.GetInstructorVersionReview(ctx, token, reviewID)
	if err != nil {
		return nil, err
	}
	fetched.Issues = review.Correlate(fetched.Issues)
	s.cache.set(ctx, key, fetched)
	return fetched, nil
}

func buildView(r *model.Review) *ReviewView {
	questions := append([]model.Question(nil), r.CourseVersion.Questions...)
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].QuestionNumber < questions[j].QuestionNumber
	})

	grouped := make([]QuestionIssues, len(questions))
	for i, q := range questions {
		grouped[i] = QuestionIssues{
			Question:      q,
			Issues:        review.IssuesForQuestion(r.Issues, q.QuestionNumber),
			HasOpenIssues: review.HasOpenIssues(r.Issues, q.QuestionNumber),
		}
	}

	return &ReviewView{
		ID:             r.ID,
		Title:          r.Title,
		Message:        r.Message,
		Status:         r.Status,
		InsertedAt:     r.InsertedAt,
		CourseTitle:    r.CourseVersion.Course.Title,
		VersionNumber:  r.CourseVersion.VersionNumber,
		Questions:      grouped,
		OpenIssueCount: review.OpenIssueCount(r.Issues),
	}
}
