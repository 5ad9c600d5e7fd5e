package api

import "context"

// Client is the contract for the four remote account operations. The
// concrete implementation lives in HTTPClient; tests substitute fakes.
//
// Input validation happens upstream (see the services package); Client
// implementations transmit what they are given.
type Client interface {
	// CreateAccount registers a new user and returns the bearer credential
	// for the freshly created session.
	CreateAccount(ctx context.Context, email, name, password, passwordConfirm string) (string, error)

	// Login authenticates existing credentials and returns the bearer
	// credential.
	Login(ctx context.Context, email, password string) (string, error)

	// FetchProfile retrieves the account fields visible to the given
	// credential. Absent fields are nil in the returned fragment.
	FetchProfile(ctx context.Context, token string) (*ProfileFragment, error)

	// UpdateProfile stores the given account fields. Success carries no
	// payload.
	UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) error

	// Close releases any transport resources held by the client.
	Close() error
}

// ProfileFragment is the server's view of the mutable account fields.
// Nil pointers mean the server did not return the field, which is distinct
// from returning it empty.
type ProfileFragment struct {
	Name      *string
	Location  *string
	Birthdate *string
}

// ProfileUpdate is the payload of an account update. All three fields are
// always sent; defaulting of absent values happens in the view-model before
// the update reaches the request layer.
type ProfileUpdate struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Birthdate string `json:"birthdate"`
}
