// Package menu computes the navigation entries visible to a staff member and
// the render style derived from the institution's branding. Both are pure
// data transforms; theming is a value handed to the renderer, never a global
// style mutation.
package menu

import (
	"github.com/schoolctl/schoolctl/institutions"
	"github.com/schoolctl/schoolctl/session"
)

// Entry is one navigation item with the roles allowed to see it.
type Entry struct {
	Title string
	Path  string
	Icon  string
	Roles []session.Role
}

// Default is the full navigation tree before role filtering.
func Default() []Entry {
	return []Entry{
		{
			Title: "Institutions",
			Path:  "/institutions",
			Icon:  "building",
			Roles: []session.Role{session.RoleAdmin},
		},
		{
			Title: "Campuses",
			Path:  "/headquarters",
			Icon:  "map-pin",
			Roles: []session.Role{session.RoleAdmin, session.RoleDirector},
		},
		{
			Title: "Staff",
			Path:  "/users",
			Icon:  "users",
			Roles: []session.Role{session.RoleAdmin, session.RoleDirector, session.RoleSecretary},
		},
		{
			Title: "Registry lookups",
			Path:  "/lookup",
			Icon:  "search",
			Roles: []session.Role{session.RoleAdmin, session.RoleDirector, session.RoleSecretary},
		},
		{
			Title: "My profile",
			Path:  "/profile",
			Icon:  "user",
			Roles: nil, // visible to every authenticated role
		},
	}
}

// Visible filters entries down to what the claims' role set may see. An entry
// with no role list is visible to everyone.
func Visible(entries []Entry, claims session.Claims) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if len(e.Roles) == 0 {
			out = append(out, e)
			continue
		}
		for _, role := range e.Roles {
			if claims.HasRole(role) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Style is the resolved render style for the sidebar.
type Style struct {
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
	LogoPosition   string
}

// DefaultStyle is used when an institution carries no branding.
var DefaultStyle = Style{
	PrimaryColor:   "#1f3a5f",
	SecondaryColor: "#ffffff",
	LogoPosition:   "left",
}

// ResolveStyle merges the institution theme over the default style. Empty
// theme fields keep their defaults.
func ResolveStyle(theme *institutions.Theme) Style {
	style := DefaultStyle
	if theme == nil {
		return style
	}
	if theme.PrimaryColor != "" {
		style.PrimaryColor = theme.PrimaryColor
	}
	if theme.SecondaryColor != "" {
		style.SecondaryColor = theme.SecondaryColor
	}
	if theme.LogoURL != "" {
		style.LogoURL = theme.LogoURL
	}
	if theme.LogoPosition != "" {
		style.LogoPosition = theme.LogoPosition
	}
	return style
}
