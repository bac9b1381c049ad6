// Package session holds the client-side session state: the token pair issued
// by the identity provider, the identity claims derived from it, and the
// cached institution descriptor. All other packages read this state through
// the Store interface; only login and token refresh write it.
package session

import "encoding/json"

// Role identifies a staff role carried in the access token.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDirector  Role = "DIRECTOR"
	RoleTeacher   Role = "TEACHER"
	RoleAuxiliary Role = "AUXILIARY"
	RoleSecretary Role = "SECRETARY"
)

// Credentials is the access/refresh token pair. The pair is only ever
// replaced as a unit, never field by field.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether no token pair is present.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Claims is the identity derived from the access token at login. Read-only
// after login; a token refresh keeps the claims and replaces only the pair.
type Claims struct {
	UserID        string `json:"userId"`
	FullName      string `json:"fullName"`
	Roles         []Role `json:"roles"`
	InstitutionID string `json:"institutionId,omitempty"`
}

// HasRole reports whether the role set contains the given role.
func (c Claims) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Snapshot is a consistent view of the whole session. Institution is the raw
// descriptor blob cached at login (id plus optional theme settings); callers
// that need it decode it themselves.
type Snapshot struct {
	Credentials Credentials     `json:"credentials"`
	Claims      Claims          `json:"claims"`
	Institution json.RawMessage `json:"institution,omitempty"`
}

// Store mediates all access to session state. SetTokens atomically replaces
// the token pair and nothing else; readers observe either the old pair or the
// new pair, never a mix.
type Store interface {
	// Snapshot returns the current session state.
	Snapshot() (Snapshot, error)
	// SetSession replaces the whole session. Called at login.
	SetSession(snap Snapshot) error
	// SetTokens atomically replaces the token pair, keeping claims and the
	// institution descriptor. Called by the token refresh coordinator.
	SetTokens(creds Credentials) error
	// Clear destroys all session state. Called at logout and on
	// unrecoverable auth failure.
	Clear() error
}
