package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/schoolctl/schoolctl/internal/errors"
	"github.com/schoolctl/schoolctl/session"
)

// tokenResponse is the identity provider's token endpoint response (RFC 6749).
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Refresh exchanges the stored refresh token for a new token pair and
// atomically replaces the pair in the session store.
//
// A refresh that fails for any reason, or finds no refresh token at all,
// clears the whole session and returns ErrSessionExpired. It never attempts a
// second refresh. Concurrent callers are coalesced into a single identity
// provider call.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Service) refresh(ctx context.Context) error {
	snap, err := s.store.Snapshot()
	if err != nil {
		return errors.Wrapf(err, "read session")
	}

	if snap.Credentials.RefreshToken == "" {
		s.clearSession()
		return errors.ErrSessionExpired
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {s.clientID},
		"refresh_token": {snap.Credentials.RefreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrapf(err, "build refresh request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("token refresh transport failure")
		s.clearSession()
		return errors.ErrSessionExpired
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn().Int("status", resp.StatusCode).Msg("token refresh rejected")
		s.clearSession()
		return errors.ErrSessionExpired
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.clearSession()
		return errors.ErrSessionExpired
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		s.log.Warn().Msg("token refresh returned an unusable body")
		s.clearSession()
		return errors.ErrSessionExpired
	}

	creds := session.Credentials{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if err := s.store.SetTokens(creds); err != nil {
		return errors.Wrapf(err, "store refreshed tokens")
	}

	s.log.Debug().Msg("token pair refreshed")
	return nil
}

// revokeRefreshToken tells the identity provider to end the session. Failures
// are logged and ignored; local state is cleared regardless.
func (s *Service) revokeRefreshToken(ctx context.Context, refreshToken string) {
	form := url.Values{
		"client_id":     {s.clientID},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.logoutURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout call failed")
		return
	}
	resp.Body.Close()
}

func (s *Service) tokenURL() string {
	if s.tokenEndpoint != "" {
		return s.tokenEndpoint
	}
	return s.issuerURL + tokenPathSuffix
}

func (s *Service) logoutURL() string {
	if s.logoutEndpoint != "" {
		return s.logoutEndpoint
	}
	return s.issuerURL + logoutPathSuffix
}

func (s *Service) clearSession() {
	if err := s.store.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session")
	}
}
