// Package models contains the plain data entities of the Mirror client.
package models

// UserRecord holds one user's account fields as known to the client.
//
// Email and Password are set when the record is created on signup or login
// and are always present after that. Name, Location and Birthday stay empty
// until a fetch or save round-trip fills them in. Birthday, when set, is an
// ISO date in the form YYYY-MM-DD.
//
// NOTE: the password is held (and transmitted) in plain text. This mirrors
// the backend contract and is a known weakness, not a feature.
type UserRecord struct {
	Email    string
	Password string
	Name     string
	Location string
	Birthday string
}

// NewUserRecord creates a record from locally entered credentials.
// Name may be empty when it is not yet known (login flow).
func NewUserRecord(email, password, name string) UserRecord {
	return UserRecord{Email: email, Password: password, Name: name}
}
