package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// accessTokenClaims is the claim shape minted by the identity provider.
// Roles may arrive either as a flat "roles" claim or nested under
// "realm_access" depending on the realm's mapper configuration.
type accessTokenClaims struct {
	jwt.RegisteredClaims

	Name          string   `json:"name"`
	Roles         []string `json:"roles"`
	InstitutionID string   `json:"institution_id"`
	RealmAccess   struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// ClaimsFromAccessToken derives identity claims from an access token without
// verifying its signature. The backend is the verifier; the client only needs
// the claims to scope requests and drive menu visibility.
func ClaimsFromAccessToken(accessToken string) (Claims, error) {
	var tc accessTokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &tc); err != nil {
		return Claims{}, errors.Wrapf(err, "parse access token")
	}

	roleNames := tc.Roles
	if len(roleNames) == 0 {
		roleNames = tc.RealmAccess.Roles
	}

	roles := make([]Role, 0, len(roleNames))
	for _, name := range roleNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		roles = append(roles, Role(strings.ToUpper(name)))
	}

	return Claims{
		UserID:        tc.Subject,
		FullName:      tc.Name,
		Roles:         roles,
		InstitutionID: tc.InstitutionID,
	}, nil
}
