package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/auth"
	"github.com/schoolctl/schoolctl/internal/errors"
	"github.com/schoolctl/schoolctl/session"
)

func newStoreWithSession(t *testing.T) *session.MemStore {
	t.Helper()
	store := session.NewMemStore()
	require.NoError(t, store.SetSession(session.Snapshot{
		Credentials: session.Credentials{AccessToken: "A1", RefreshToken: "R1"},
		Claims:      session.Claims{UserID: "user-1"},
	}))
	return store
}

func newAuthService(t *testing.T, store session.Store, tokenURL string) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(store, "http://idp.invalid/realms/school", "schoolctl-admin",
		auth.WithTokenEndpoint(tokenURL))
	require.NoError(t, err)
	return svc
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	store := newStoreWithSession(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		require.Equal(t, "R1", r.Form.Get("refresh_token"))
		require.Equal(t, "schoolctl-admin", r.Form.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"A2","refresh_token":"R2","token_type":"bearer","expires_in":900}`))
	}))
	defer server.Close()

	svc := newAuthService(t, store, server.URL)
	require.NoError(t, svc.Refresh(context.Background()))

	snap, err := store.Snapshot()
	require.NoError(t, err)
	require.Equal(t, "A2", snap.Credentials.AccessToken)
	require.Equal(t, "R2", snap.Credentials.RefreshToken)
	// Claims survive a refresh; only the pair is replaced.
	require.Equal(t, "user-1", snap.Claims.UserID)
}

func TestRefreshRejectionClearsSession(t *testing.T) {
	store := newStoreWithSession(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	svc := newAuthService(t, store, server.URL)
	err := svc.Refresh(context.Background())
	require.True(t, errors.Is(err, errors.ErrSessionExpired))

	snap, snapErr := store.Snapshot()
	require.NoError(t, snapErr)
	require.True(t, snap.Credentials.Empty())
}

func TestRefreshWithoutRefreshTokenNeverCallsProvider(t *testing.T) {
	store := session.NewMemStore()
	require.NoError(t, store.SetSession(session.Snapshot{
		Credentials: session.Credentials{AccessToken: "A1"},
	}))

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	svc := newAuthService(t, store, server.URL)
	err := svc.Refresh(context.Background())
	require.True(t, errors.Is(err, errors.ErrSessionExpired))
	require.Equal(t, int32(0), calls.Load())

	snap, snapErr := store.Snapshot()
	require.NoError(t, snapErr)
	require.True(t, snap.Credentials.Empty())
}

func TestRefreshUnusableBodyClearsSession(t *testing.T) {
	store := newStoreWithSession(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer server.Close()

	svc := newAuthService(t, store, server.URL)
	err := svc.Refresh(context.Background())
	require.True(t, errors.Is(err, errors.ErrSessionExpired))
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	store := newStoreWithSession(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"access_token":"A2","refresh_token":"R2"}`))
	}))
	defer server.Close()

	svc := newAuthService(t, store, server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, svc.Refresh(context.Background()))
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	require.Equal(t, "A2", snap.Credentials.AccessToken)
}
