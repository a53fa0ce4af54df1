package controllers

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/app/services"
	"github.com/shashiranjanraj/nexus/pkg/bind"
	"github.com/shashiranjanraj/nexus/pkg/ctx"
	"github.com/shashiranjanraj/nexus/pkg/middleware"
)

// Authenticator is what AuthController needs from the auth service.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Token, error)
	CurrentUser(ctx context.Context, subject string) (*models.User, error)
}

// CredentialsRequest is the body of POST /register and POST /login.
type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse is a user as the API shows it. The password digest never
// leaves the service.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}

type AuthController struct {
	auth   Authenticator
	binder *bind.Binder
}

func NewAuthController(auth Authenticator, binder *bind.Binder) *AuthController {
	return &AuthController{auth: auth, binder: binder}
}

// Register handles POST /register.
func (ac *AuthController) Register(c *ctx.Context) {
	var in CredentialsRequest
	if !c.Bind(ac.binder, &in) {
		return
	}

	user, err := ac.auth.Register(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(newUserResponse(user))
}

// Login handles POST /login.
func (ac *AuthController) Login(c *ctx.Context) {
	var in CredentialsRequest
	if !c.Bind(ac.binder, &in) {
		return
	}

	token, err := ac.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(token)
}

// Me handles GET /me behind middleware.Auth.
func (ac *AuthController) Me(c *ctx.Context) {
	user, err := ac.auth.CurrentUser(c.Context(), middleware.Subject(c.Context()))
	if errors.Is(err, models.ErrAuthenticationFailed) {
		c.W.Header().Set("WWW-Authenticate", "Bearer")
		c.Unauthorized("Could not validate credentials")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(newUserResponse(user))
}
