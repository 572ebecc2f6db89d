package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/model"
	"github.com/courseloom/courseloom-backend/internal/upstream"
)

// AuthService proxies instructor login. Credentials are never stored or
// checked locally; the upstream API issues the token and remains the
// only party that can verify it.
type AuthService struct {
	up  *upstream.Client
	log zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(up *upstream.Client, log zerolog.Logger) *AuthService {
	return &AuthService{
		up:  up,
		log: log.With().Str("component", "auth_service").Logger(),
	}
}

// Login exchanges credentials for an upstream session.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.InstructorSession, error) {
	session, err := s.up.LoginInstructor(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("instructor_id", session.ID).Msg("Instructor logged in")
	return session, nil
}
