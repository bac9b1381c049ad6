package users

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schoolctl/schoolctl/session"
)

var documentIDPattern = regexp.MustCompile(`^[0-9]{8}$`)

// knownRoles are the staff roles the backend accepts for account records.
var knownRoles = map[session.Role]bool{
	session.RoleAdmin:     true,
	session.RoleDirector:  true,
	session.RoleTeacher:   true,
	session.RoleAuxiliary: true,
	session.RoleSecretary: true,
}

// Validate checks an account before submission. Normalization happens here
// too: username and email are trimmed and lower-cased once, instead of ad hoc
// at every call site.
func (a *Account) Validate() error {
	a.Username = strings.ToLower(strings.TrimSpace(a.Username))
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)

	if a.Username == "" {
		return fmt.Errorf("username is required")
	}
	if a.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(a.Email, "@") || !strings.Contains(a.Email, ".") {
		return fmt.Errorf("invalid email format")
	}
	if a.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if a.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if !documentIDPattern.MatchString(a.DocumentID) {
		return fmt.Errorf("document id must be exactly 8 digits")
	}
	if !knownRoles[a.Role] {
		return fmt.Errorf("unknown role %q", a.Role)
	}
	if a.Role != session.RoleAdmin && a.InstitutionID == "" {
		return fmt.Errorf("institution id is required for non-admin accounts")
	}
	return nil
}
