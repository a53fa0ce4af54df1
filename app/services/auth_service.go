// Package services holds the use cases behind the HTTP handlers. Services
// depend on small interfaces so they can be tested with fakes.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/auth"
	"github.com/shashiranjanraj/nexus/pkg/logger"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
)

// UserStore is the part of the user repository AuthService needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// TokenIssuer mints bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Token is the login result.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account. The pre-check answers the common duplicate
// case cheaply; the store's unique index settles concurrent registrations.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.RecordAuth("register", "error")
		return nil, err
	}
	if existing != nil {
		metrics.RecordAuth("register", "duplicate")
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateEmail, email)
	}

	user, err := s.users.Create(ctx, email, password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			metrics.RecordAuth("register", "duplicate")
		} else {
			metrics.RecordAuth("register", "error")
		}
		return nil, err
	}

	metrics.RecordAuth("register", "success")
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks credentials and issues a token whose subject is the email.
// Unknown email and wrong password both yield ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		metrics.RecordAuth("login", "error")
		return nil, err
	}
	if user == nil {
		metrics.RecordAuth("login", "failure")
		return nil, models.ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		metrics.RecordAuth("login", "error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuth("login", "success")
	return &Token{AccessToken: token, TokenType: auth.TokenType}, nil
}

// CurrentUser resolves a verified token subject to its account. A subject
// whose account no longer exists fails with ErrAuthenticationFailed.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (*models.User, error) {
	if subject == "" {
		return nil, models.ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrAuthenticationFailed
	}
	return user, nil
}
