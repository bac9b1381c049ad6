package config

import "time"

const (
	baseDomainVar = "SCHOOLCTL_BASE_DOMAIN"

	// Path suffixes of the two backend APIs, appended to the base domain.
	institutionAPISuffix = "/api/institucion"
	userAPISuffix        = "/api/usuario"
	lookupAPISuffix      = "/api/consulta"
)

// APIConfig exposes the endpoint roots of the backend services. Every root is
// derived from a single base-domain variable plus a fixed path suffix.
type APIConfig interface {
	GetBaseDomain() string
	GetInstitutionAPIRoot() string
	GetUserAPIRoot() string
	GetLookupAPIRoot() string
	GetLookupTimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

func (API) GetBaseDomain() string {
	return GetEnv(baseDomainVar, "http://localhost:8000")
}

func (a API) GetInstitutionAPIRoot() string {
	return InstitutionRoot(a.GetBaseDomain())
}

func (a API) GetUserAPIRoot() string {
	return UserRoot(a.GetBaseDomain())
}

func (a API) GetLookupAPIRoot() string {
	return LookupRoot(a.GetBaseDomain())
}

// InstitutionRoot derives the institution API root from a base domain.
func InstitutionRoot(baseDomain string) string {
	return baseDomain + institutionAPISuffix
}

// UserRoot derives the user API root from a base domain.
func UserRoot(baseDomain string) string {
	return baseDomain + userAPISuffix
}

// LookupRoot derives the lookup API root from a base domain.
func LookupRoot(baseDomain string) string {
	return baseDomain + lookupAPISuffix
}

// GetLookupTimeout bounds the national-ID lookup call. The lookup proxies a
// slow upstream registry, so it gets a wall-clock deadline of its own.
func (API) GetLookupTimeout() time.Duration {
	if v := GetEnv("SCHOOLCTL_LOOKUP_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 10 * time.Second
}
