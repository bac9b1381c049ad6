package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/auth"
	"github.com/schoolctl/schoolctl/session"
)

func signedAccessToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	store := session.NewMemStore()

	_, err := auth.NewService(nil, "http://idp/realms/school", "client")
	require.Error(t, err)

	_, err = auth.NewService(store, "", "client")
	require.Error(t, err)

	_, err = auth.NewService(store, "http://idp/realms/school", "")
	require.Error(t, err)
}

func TestLoginStoresTokenPairAndClaims(t *testing.T) {
	accessToken := signedAccessToken(t, jwt.MapClaims{
		"sub":            "user-7",
		"name":           "Maria Quispe",
		"roles":          []string{"DIRECTOR"},
		"institution_id": "inst-3",
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.Form.Get("grant_type"))
		require.Equal(t, "mquispe", r.Form.Get("username"))
		require.Equal(t, "hunter22", r.Form.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"` + accessToken + `","refresh_token":"R1","token_type":"bearer","expires_in":900}`))
	}))
	defer server.Close()

	store := session.NewMemStore()
	svc, err := auth.NewService(store, "http://idp.invalid/realms/school", "schoolctl-admin",
		auth.WithTokenEndpoint(server.URL))
	require.NoError(t, err)

	claims, err := svc.Login(context.Background(), "mquispe", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "user-7", claims.UserID)
	require.Equal(t, "Maria Quispe", claims.FullName)
	require.Equal(t, []session.Role{session.RoleDirector}, claims.Roles)
	require.Equal(t, "inst-3", claims.InstitutionID)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	require.Equal(t, accessToken, snap.Credentials.AccessToken)
	require.Equal(t, "R1", snap.Credentials.RefreshToken)
}

func TestLoginRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"invalid credentials"}`))
	}))
	defer server.Close()

	store := session.NewMemStore()
	svc, err := auth.NewService(store, "http://idp.invalid/realms/school", "schoolctl-admin",
		auth.WithTokenEndpoint(server.URL))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "mquispe", "wrong")
	require.Error(t, err)

	snap, snapErr := store.Snapshot()
	require.NoError(t, snapErr)
	require.True(t, snap.Credentials.Empty())
}

func TestLogoutClearsSession(t *testing.T) {
	store := session.NewMemStore()
	require.NoError(t, store.SetSession(session.Snapshot{
		Credentials: session.Credentials{AccessToken: "A1", RefreshToken: "R1"},
	}))

	svc, err := auth.NewService(store, "http://idp.invalid/realms/school", "schoolctl-admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	snap, snapErr := store.Snapshot()
	require.NoError(t, snapErr)
	require.True(t, snap.Credentials.Empty())
}
