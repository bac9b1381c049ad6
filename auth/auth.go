// Package auth talks to the identity provider: password-grant login, token
// refresh, and logout. It is the only writer of the session store besides
// logout; a failed refresh clears the session and is terminal.
package auth

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	autherrors "github.com/schoolctl/schoolctl/internal/errors"
	"github.com/schoolctl/schoolctl/session"
)

// Keycloak-style realm endpoints, used when OIDC discovery has not run.
const (
	tokenPathSuffix  = "/protocol/openid-connect/token"
	logoutPathSuffix = "/protocol/openid-connect/logout"
)

// Service coordinates authentication against the identity provider.
type Service struct {
	store      session.Store
	httpClient *http.Client
	issuerURL  string
	clientID   string
	scopes     []string
	log        zerolog.Logger

	tokenEndpoint  string
	logoutEndpoint string

	// refreshGroup coalesces concurrent refreshes: when several in-flight
	// requests hit a 401 at once, exactly one refresh call runs and every
	// waiter shares its outcome. Without this, refresh-token rotation lets
	// the second refresh invalidate the first one's new token.
	refreshGroup singleflight.Group
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithHTTPClient replaces the HTTP client used for identity-provider calls.
func WithHTTPClient(hc *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = hc
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithScopes overrides the OAuth scopes requested at login.
func WithScopes(scopes ...string) ServiceOption {
	return func(s *Service) {
		s.scopes = scopes
	}
}

// WithTokenEndpoint pins the token endpoint, skipping OIDC discovery.
func WithTokenEndpoint(url string) ServiceOption {
	return func(s *Service) {
		s.tokenEndpoint = url
	}
}

// NewService creates an authentication service for the given realm.
func NewService(store session.Store, issuerURL, clientID string, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("[auth.NewService] session store is required")
	}
	if issuerURL == "" {
		return nil, errors.New("[auth.NewService] issuer URL is required")
	}
	if clientID == "" {
		return nil, errors.New("[auth.NewService] client ID is required")
	}

	s := &Service{
		store:      store,
		httpClient: http.DefaultClient,
		issuerURL:  issuerURL,
		clientID:   clientID,
		scopes:     []string{oidc.ScopeOpenID, "profile"},
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Login authenticates with the resource-owner password grant and stores the
// issued token pair together with the claims derived from the access token.
func (s *Service) Login(ctx context.Context, username, password string) (session.Claims, error) {
	ctx = oidc.ClientContext(ctx, s.httpClient)

	endpoint := oauth2.Endpoint{
		TokenURL: s.issuerURL + tokenPathSuffix,
	}
	if s.tokenEndpoint != "" {
		endpoint.TokenURL = s.tokenEndpoint
	} else if provider, err := oidc.NewProvider(ctx, s.issuerURL); err == nil {
		endpoint = provider.Endpoint()
		s.tokenEndpoint = endpoint.TokenURL
	} else {
		s.log.Debug().Err(err).Msg("oidc discovery failed, using realm defaults")
	}

	cfg := oauth2.Config{
		ClientID: s.clientID,
		Endpoint: endpoint,
		Scopes:   s.scopes,
	}

	tok, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return session.Claims{}, autherrors.Wrapf(err, "login")
	}

	claims, err := session.ClaimsFromAccessToken(tok.AccessToken)
	if err != nil {
		return session.Claims{}, autherrors.Wrapf(err, "login")
	}

	snap := session.Snapshot{
		Credentials: session.Credentials{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
		},
		Claims: claims,
	}
	if err := s.store.SetSession(snap); err != nil {
		return session.Claims{}, autherrors.Wrapf(err, "store session")
	}

	s.log.Info().Str("user_id", claims.UserID).Msg("logged in")
	return claims, nil
}

// Logout revokes the refresh token (best effort) and clears the session.
func (s *Service) Logout(ctx context.Context) error {
	snap, err := s.store.Snapshot()
	if err == nil && snap.Credentials.RefreshToken != "" {
		s.revokeRefreshToken(ctx, snap.Credentials.RefreshToken)
	}
	return s.store.Clear()
}
