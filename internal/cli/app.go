// Package cli is the terminal frontend of the Mirror client: a small REPL
// over the auth service and the account view-model.
package cli

import (
	"bufio"
	"log/slog"
	"net/http"
	"os"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/config"
	"github.com/refinemirror/mirror-go/internal/logging"
	"github.com/refinemirror/mirror-go/internal/services"
	"github.com/refinemirror/mirror-go/internal/session"
)

// User-facing messages, carried over from the original app.
const (
	msgUserExists   = "User with email already exists"
	msgSignupFailed = "Could not sign up :("
	msgLoginFailed  = "Could not log in"
	msgSaveFailed   = "Had trouble saving :("
	msgSaved        = "Saved!"
	msgUnavailable  = "Server unavailable, try again later"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	session     *session.Session
	log         logging.Logger
	reader      *bufio.Reader
	userEmail   string
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewDefault(os.Stderr, slog.LevelWarn)

	httpClient := &http.Client{Timeout: c.RequestTimeout}
	apiClient := api.NewHTTPClient(c.ServerBaseURL, httpClient, log)

	sess := session.New()
	as := services.NewAuthService(apiClient, sess, log)

	return &App{
		config:      c,
		authService: as,
		session:     sess,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}
