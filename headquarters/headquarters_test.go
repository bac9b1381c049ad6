package headquarters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/headquarters"
	"github.com/schoolctl/schoolctl/session"
)

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context) error { return nil }

func newTestService(t *testing.T, handler http.HandlerFunc) *headquarters.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemStore()
	require.NoError(t, store.SetTokens(session.Credentials{AccessToken: "A1", RefreshToken: "R1"}))

	client, err := api.New(store, noopRefresher{})
	require.NoError(t, err)

	svc, err := headquarters.NewService(client, server.URL)
	require.NoError(t, err)
	return svc
}

func TestListByInstitution(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/institutions/inst-1/headquarters", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"hq-1","institutionId":"inst-1","name":"Campus Centro","main":true}]}`))
	})

	res, err := svc.ListByInstitution(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Equal(t, "Campus Centro", res.Data[0].Name)
	require.True(t, res.Data[0].Main)
}

func TestCreateHeadquarter(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/headquarters", r.URL.Path)

		var got headquarters.Headquarter
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "inst-1", got.InstitutionID)

		w.Write([]byte(`{"data":{"id":"hq-2","institutionId":"inst-1","name":"Campus Norte"}}`))
	})

	res, err := svc.Create(context.Background(), headquarters.Headquarter{
		InstitutionID: "inst-1",
		Name:          "Campus Norte",
		District:      "San Juan",
	})
	require.NoError(t, err)
	require.Equal(t, "hq-2", res.Data.ID)
}

func TestHeadquarterValidation(t *testing.T) {
	require.Error(t, headquarters.Headquarter{Name: "Campus Norte"}.Validate())
	require.Error(t, headquarters.Headquarter{InstitutionID: "inst-1", Name: "  "}.Validate())
	require.NoError(t, headquarters.Headquarter{InstitutionID: "inst-1", Name: "Campus Norte"}.Validate())
}
