// Package session holds the active credential and profile for one process.
//
// The original Mirror app kept this state in a shared singleton; here the
// Session is an explicit object created by the composition root and passed
// to whatever needs it, preserving "one active session per process" without
// hidden globals.
package session

import (
	"sync"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/profile"
)

// Session is the single authoritative holder of "who is logged in and with
// what credential". An empty token means no active session.
//
// The token/profile pair is guarded so a reader never observes a credential
// without its matching profile. Nothing beyond that pairing is coordinated:
// in-flight requests started before an Invalidate still run to completion.
type Session struct {
	mu      sync.Mutex
	token   string
	profile *profile.UserProfile
}

var _ profile.TokenSource = (*Session)(nil)

func New() *Session {
	return &Session{}
}

// SetActive installs the credential and profile of a freshly authenticated
// user, replacing both together.
func (s *Session) SetActive(token string, p *profile.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = p
}

// Invalidate clears the credential and drops the profile. Idempotent:
// invalidating an already-invalid session is a no-op.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
}

// Token returns the current credential, or "" when logged out.
// Satisfies profile.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns the active profile, or api.ErrNoActiveSession when no
// login has completed since the last Invalidate.
func (s *Session) Profile() (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, api.ErrNoActiveSession
	}
	return s.profile, nil
}

// Active reports whether a credential is currently held.
func (s *Session) Active() bool {
	return s.Token() != ""
}
