package config

const (
	issuerURLVar = "SCHOOLCTL_ISSUER_URL"
	clientIDVar  = "SCHOOLCTL_CLIENT_ID"
)

// AuthConfig exposes the identity-provider settings. The issuer URL points at
// a realm whose OIDC discovery document supplies the token endpoint.
type AuthConfig interface {
	GetIssuerURL() string
	GetClientID() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetIssuerURL() string {
	return GetEnv(issuerURLVar, "http://localhost:8080/realms/school")
}

func (Auth) GetClientID() string {
	return GetEnv(clientIDVar, "schoolctl-admin")
}
