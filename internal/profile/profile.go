// Package profile contains the observable view-model for one user's
// account state.
package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/datex"
	"github.com/refinemirror/mirror-go/internal/models"
)

// TokenSource yields the credential of the active session. An empty string
// means no session is active. The session package provides the real
// implementation; keeping it an interface here avoids a dependency cycle
// and lets tests inject a fixed token.
type TokenSource interface {
	Token() string
}

// Observer is notified, with no arguments, every time the wrapped record
// is replaced.
type Observer func()

// AccountUpdate carries the editable account fields for Save. A zero
// Birthday means "not provided" and is defaulted to the current date;
// an empty Location is sent as the empty string.
type AccountUpdate struct {
	Name     string
	Location string
	Birthday time.Time
}

// UserProfile wraps a UserRecord, exposes derived read-only accessors, and
// mediates the fetch/save round-trips through the request layer.
//
// The wrapped record is replaced wholesale, never field-mutated: every
// replacement notifies all registered observers exactly once, synchronously,
// in registration order.
//
// Overlapping Fetch or Save calls on the same profile are not serialized.
// If two fetches are in flight, the response that completes last determines
// the final record (last-write-wins). Callers that need ordering must
// provide it themselves.
type UserProfile struct {
	client api.Client
	tokens TokenSource

	mu        sync.Mutex
	record    models.UserRecord
	observers []subscription
	nextSubID int
}

type subscription struct {
	id int
	fn Observer
}

// New wraps an existing record, typically one restored from a previous
// fetch.
func New(client api.Client, tokens TokenSource, record models.UserRecord) *UserProfile {
	return &UserProfile{client: client, tokens: tokens, record: record}
}

// FromCredentials builds a profile around freshly entered signup or login
// fields. Name may be empty when unknown.
func FromCredentials(client api.Client, tokens TokenSource, email, password, name string) *UserProfile {
	return New(client, tokens, models.NewUserRecord(email, password, name))
}

// Subscribe registers an observer and returns its unsubscribe function.
// Observers fire in registration order; registrations are independent, so
// subscribing twice yields two notifications per replacement.
func (p *UserProfile) Subscribe(fn Observer) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	p.observers = append(p.observers, subscription{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.observers {
			if s.id == id {
				p.observers = append(p.observers[:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Fetch retrieves the account fields from the server and installs a new
// record built from the response: email, password and name are carried over
// from the current record, then name, location and birthdate are overlaid
// when the response includes them. On failure the record is left untouched
// and the error is returned as-is; there is no implicit retry.
func (p *UserProfile) Fetch(ctx context.Context) error {
	token := p.tokens.Token()
	if token == "" {
		return api.ErrNoActiveSession
	}

	frag, err := p.client.FetchProfile(ctx, token)
	if err != nil {
		return err
	}

	p.mu.Lock()
	next := models.NewUserRecord(p.record.Email, p.record.Password, p.record.Name)
	if frag.Name != nil {
		next.Name = *frag.Name
	}
	if frag.Location != nil {
		next.Location = *frag.Location
	}
	if frag.Birthdate != nil {
		next.Birthday = *frag.Birthdate
	}
	p.record = next
	observers := make([]subscription, len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	// Notify outside the lock so an observer may call back into the profile.
	for _, s := range observers {
		s.fn()
	}
	return nil
}

// Save sends the edited fields to the server. The wrapped record is NOT
// updated on success; the caller treats its locally edited values as
// authoritative. This asymmetry with Fetch is deliberate and load-bearing
// for observers: a successful Save fires no notification.
func (p *UserProfile) Save(ctx context.Context, upd AccountUpdate) error {
	token := p.tokens.Token()
	if token == "" {
		return api.ErrNoActiveSession
	}

	birthday := upd.Birthday
	if birthday.IsZero() {
		birthday = time.Now()
	}

	payload := api.ProfileUpdate{
		Name:      upd.Name,
		Location:  upd.Location,
		Birthdate: datex.Format(birthday),
	}

	if err := p.client.UpdateProfile(ctx, token, payload); err != nil {
		return fmt.Errorf("saving account info: %w", err)
	}
	return nil
}

// Email returns the account email. Always present once the profile exists.
func (p *UserProfile) Email() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record.Email
}

// Name returns the account name, or "" when not yet known.
func (p *UserProfile) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record.Name
}

// Location returns the account location, or "" when not yet known.
func (p *UserProfile) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record.Location
}

// Birthday parses the stored ISO date. When the field is missing or
// unparsable it yields the current time at the moment of the call, not a
// cached value.
func (p *UserProfile) Birthday() time.Time {
	p.mu.Lock()
	stored := p.record.Birthday
	p.mu.Unlock()

	d, err := datex.Parse(stored)
	if err != nil {
		return time.Now()
	}
	return d
}

// Record returns a snapshot of the wrapped record.
func (p *UserProfile) Record() models.UserRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record
}
