package api

import (
	"net/http"
	"strings"

	"github.com/schoolctl/schoolctl/session"
)

// Header names understood by the backend APIs.
const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-User-Id"
	HeaderUserRoles     = "X-User-Roles"
	HeaderInstitutionID = "X-Institution-Id"
)

// Headers maps session state to the HTTP headers for one request attempt.
// Pure function: identical snapshots produce identical header maps.
//
// Privileged endpoints additionally receive the caller's identity headers.
// The institution header is attached only when the role set does not contain
// the admin role; this mirrors the backend's scoping contract (admins operate
// across institutions, everyone else is pinned to their own).
//
// Missing credentials are not an error here. The headers simply carry no
// bearer token and the server answers 401, which the retry executor handles.
func Headers(snap session.Snapshot, privileged bool) http.Header {
	h := http.Header{}

	if snap.Credentials.AccessToken != "" {
		h.Set(HeaderAuthorization, "Bearer "+snap.Credentials.AccessToken)
	}

	if privileged {
		if snap.Claims.UserID != "" {
			h.Set(HeaderUserID, snap.Claims.UserID)
		}
		if len(snap.Claims.Roles) > 0 {
			h.Set(HeaderUserRoles, joinRoles(snap.Claims.Roles))
		}
	}

	if !snap.Claims.HasRole(session.RoleAdmin) && snap.Claims.InstitutionID != "" {
		h.Set(HeaderInstitutionID, snap.Claims.InstitutionID)
	}

	return h
}

func joinRoles(roles []session.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}
