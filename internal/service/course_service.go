package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/config"
	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/upstream"
)

// CourseService fronts the upstream course operations with a best-effort
// read-through cache.
type CourseService struct {
	up    *upstream.Client
	cache resultCache
}

// NewCourseService creates a new CourseService. rdb may be nil to run
// without caching.
func NewCourseService(up *upstream.Client, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CourseService {
	return &CourseService{
		up:    up,
		cache: newResultCache(rdb, ttl, log.With().Str("component", "course_service").Logger()),
	}
}

// ListCourses proxies the course listing. Listings are not cached: the
// search term makes the key space unbounded. The returned pagination is
// the one actually applied, clamp included, so callers can echo it.
func (s *CourseService) ListCourses(ctx context.Context, token, searchTerm string, first int, after string) ([]model.CourseListItem, upstream.Pagination, error) {
	if first < 1 {
		first = 20
	}
	if first > 100 {
		first = 100
	}
	pagination := upstream.Pagination{First: first, After: after}

	courses, err := s.up.ListCourses(ctx, token, searchTerm, &pagination)
	if err != nil {
		return nil, pagination, err
	}
	if courses == nil {
		courses = []model.CourseListItem{}
	}
	return courses, pagination, nil
}

// GetCourse fetches one course, read-through cached.
func (s *CourseService) GetCourse(ctx context.Context, token, courseID string) (*model.Course, error) {
	key := config.CacheKey.CourseKey(token, courseID)

	var course model.Course
	if s.cache.get(ctx, key, &course) {
		return &course, nil
	}

	fetched, err := s.up.GetCourse(ctx, token, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, fetched)
	return fetched, nil
}

// CreateCourse proxies course creation.
func (s *CourseService) CreateCourse(ctx context.Context, token string, req *model.CreateCourseRequest) (*model.CourseRef, error) {
	return s.up.CreateCourse(ctx, token, req.OrganizationID, req.Course)
}

// AddVersion creates a new draft version and invalidates the course cache.
func (s *CourseService) AddVersion(ctx context.Context, token, courseID string) (*model.CourseVersion, error) {
	version, err := s.up.AddCourseVersion(ctx, token, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.del(ctx, config.CacheKey.CourseKey(token, courseID))
	return version, nil
}

// GetVersion fetches the instructor view of one version, read-through
// cached.
func (s *CourseService) GetVersion(ctx context.Context, token, versionID string) (*model.VersionDetail, error) {
	key := config.CacheKey.VersionKey(token, versionID)

	var detail model.VersionDetail
	if s.cache.get(ctx, key, &detail) {
		return &detail, nil
	}

	fetched, err := s.up.GetInstructorCourseVersion(ctx, token, versionID)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, fetched)
	return fetched, nil
}

// ListVersionQuestions fetches the persisted questions of a version,
// returning the pagination it applied alongside the page.
func (s *CourseService) ListVersionQuestions(ctx context.Context, token, versionID, searchTerm string, first int, after string) ([]model.Question, upstream.Pagination, error) {
	if first < 1 {
		first = 50
	}
	if first > 200 {
		first = 200
	}
	pagination := upstream.Pagination{First: first, After: after}

	questions, err := s.up.ListQuestionsForVersion(ctx, token, versionID, searchTerm, &pagination)
	if err != nil {
		return nil, pagination, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, pagination, nil
}

// RequestReview asks upstream for a review and invalidates the version
// cache so the review request shows up on the next fetch.
func (s *CourseService) RequestReview(ctx context.Context, token, versionID string) (string, error) {
	id, err := s.up.RequestCourseVersionReview(ctx, token, versionID)
	if err != nil {
		return "", err
	}
	s.cache.del(ctx, config.CacheKey.VersionKey(token, versionID))
	return id, nil
}
