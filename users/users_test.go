package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/internal/utils"
	"github.com/schoolctl/schoolctl/session"
	"github.com/schoolctl/schoolctl/users"
)

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context) error { return nil }

func newTestService(t *testing.T, handler http.HandlerFunc) *users.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemStore()
	require.NoError(t, store.SetSession(session.Snapshot{
		Credentials: session.Credentials{AccessToken: "A1", RefreshToken: "R1"},
		Claims: session.Claims{
			UserID:        "caller-1",
			Roles:         []session.Role{session.RoleDirector},
			InstitutionID: "inst-1",
		},
	}))

	client, err := api.New(store, noopRefresher{})
	require.NoError(t, err)

	svc, err := users.NewService(client, server.URL)
	require.NoError(t, err)
	return svc
}

// Account calls are privileged: every request must carry the caller's
// identity headers, and non-admin callers also carry their institution.
func TestAccountCallsCarryIdentityHeaders(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "caller-1", r.Header.Get("X-User-Id"))
		require.Equal(t, "DIRECTOR", r.Header.Get("X-User-Roles"))
		require.Equal(t, "inst-1", r.Header.Get("X-Institution-Id"))
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := svc.List(context.Background())
	require.NoError(t, err)
}

func TestListByRole(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts", r.URL.Path)
		require.Equal(t, "TEACHER", r.URL.Query().Get("role"))
		w.Write([]byte(`{"data":[{"id":"u-1","username":"jperez","role":"TEACHER"}]}`))
	})

	res, err := svc.ListByRole(context.Background(), session.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Equal(t, "jperez", res.Data[0].Username)
}

func TestSetActive(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/accounts/u-1", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"u-1","active":false},"message":"account disabled"}`))
	})

	res, err := svc.SetActive(context.Background(), "u-1", false)
	require.NoError(t, err)
	require.False(t, utils.Value(res.Data.Active))
	require.Equal(t, "account disabled", res.Message)
}

func TestAccountFullName(t *testing.T) {
	require.Equal(t, "Juan Perez", users.Account{FirstName: "Juan", LastName: "Perez"}.FullName())
	require.Equal(t, "Perez", users.Account{LastName: "Perez"}.FullName())
	require.Equal(t, "Juan", users.Account{FirstName: "Juan"}.FullName())
}
