// Package services contains the application services of the Mirror client.
// This file defines the authentication service: account creation, login,
// and logout, wiring successful authentications into the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/logging"
	"github.com/refinemirror/mirror-go/internal/profile"
	"github.com/refinemirror/mirror-go/internal/session"
)

// SignupInfo carries the fields of the signup form. Validation happens here,
// upstream of the request layer, which transmits values as given.
type SignupInfo struct {
	Email           string `validate:"required,email"`
	Name            string `validate:"required"`
	Password        string `validate:"required"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
}

// LoginInfo carries the fields of the login form.
type LoginInfo struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ErrValidation wraps field-validation failures so callers can distinguish
// them from network and server errors with errors.Is.
var ErrValidation = errors.New("invalid input")

// AuthService authenticates users against the backend and owns the
// login/logout transitions of the session.
//
// Contract:
//   - CreateAccount: register a new user; on success the returned profile is
//     already active in the session.
//   - Login: authenticate existing credentials; same session behavior.
//   - Logout: invalidate the session. Safe to call when logged out.
//   - Close: release underlying client resources.
type AuthService interface {
	CreateAccount(ctx context.Context, info SignupInfo) (*profile.UserProfile, error)
	Login(ctx context.Context, info LoginInfo) (*profile.UserProfile, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and an
// explicit Session.
type authService struct {
	client   api.Client
	session  *session.Session
	validate *validator.Validate
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session.
func NewAuthService(client api.Client, sess *session.Session, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		session:  sess,
		validate: validator.New(),
		log:      log,
	}
}

// CreateAccount registers a new user. On success the session holds the fresh
// credential and a profile seeded from the entered fields, so signup doubles
// as login.
func (a *authService) CreateAccount(ctx context.Context, info SignupInfo) (*profile.UserProfile, error) {
	if err := a.checkInput(info); err != nil {
		return nil, err
	}

	token, err := a.client.CreateAccount(ctx, info.Email, info.Name, info.Password, info.PasswordConfirm)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	p := profile.FromCredentials(a.client, a.session, info.Email, info.Password, info.Name)
	a.session.SetActive(token, p)
	a.log.Info(ctx, "account created", "email", info.Email)
	return p, nil
}

// Login authenticates existing credentials. The profile starts with only the
// entered email and password; callers typically Fetch right after to fill in
// the remaining fields.
func (a *authService) Login(ctx context.Context, info LoginInfo) (*profile.UserProfile, error) {
	if err := a.checkInput(info); err != nil {
		return nil, err
	}

	token, err := a.client.Login(ctx, info.Email, info.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	p := profile.FromCredentials(a.client, a.session, info.Email, info.Password, "")
	a.session.SetActive(token, p)
	a.log.Info(ctx, "logged in", "email", info.Email)
	return p, nil
}

// Logout drops the credential and the active profile.
func (a *authService) Logout(ctx context.Context) error {
	a.session.Invalidate()
	a.log.Info(ctx, "logged out")
	return nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// checkInput runs struct validation and flattens the field errors into one
// readable message wrapped in ErrValidation.
func (a *authService) checkInput(v any) error {
	err := a.validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "need a " + field
	case "email":
		return field + " must be a valid email"
	case "eqfield":
		return "need matching passwords"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
