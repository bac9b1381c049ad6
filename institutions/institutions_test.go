package institutions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/institutions"
	"github.com/schoolctl/schoolctl/session"
)

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context) error { return nil }

func newTestService(t *testing.T, handler http.HandlerFunc) *institutions.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemStore()
	require.NoError(t, store.SetTokens(session.Credentials{AccessToken: "A1", RefreshToken: "R1"}))

	client, err := api.New(store, noopRefresher{})
	require.NoError(t, err)

	svc, err := institutions.NewService(client, server.URL)
	require.NoError(t, err)
	return svc
}

func TestListInstitutions(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/institutions", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"1","name":"IE San Martin","modularCode":"0234567","level":"PRIMARY","active":true}]}`))
	})

	res, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Equal(t, "IE San Martin", res.Data[0].Name)
	require.Equal(t, institutions.LevelPrimary, res.Data[0].Level)
}

func TestCreateInstitution(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/institutions", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"9","name":"IE Mariscal","modularCode":"0765432"},"message":"institution registered"}`))
	})

	res, err := svc.Create(context.Background(), institutions.Institution{
		Name:        "IE Mariscal",
		ModularCode: "0765432",
		Level:       institutions.LevelSecondary,
	})
	require.NoError(t, err)
	require.Equal(t, "9", res.Data.ID)
	require.Equal(t, "institution registered", res.Message)
}

func TestSetActiveInstitution(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/institutions/9", r.URL.Path)

		var got map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, map[string]bool{"active": false}, got)

		w.Write([]byte(`{"message":"institution disabled"}`))
	})

	res, err := svc.SetActive(context.Background(), "9", false)
	require.NoError(t, err)
	require.Equal(t, "institution disabled", res.Message)
}

func TestCreateInstitutionValidationFailsBeforeNetwork(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the network")
	})

	_, err := svc.Create(context.Background(), institutions.Institution{Name: "X", ModularCode: "12"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "modular code")
}

func TestInstitutionValidation(t *testing.T) {
	valid := institutions.Institution{Name: "IE San Martin", ModularCode: "0234567"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		inst institutions.Institution
	}{
		{"missing name", institutions.Institution{ModularCode: "0234567"}},
		{"short code", institutions.Institution{Name: "x", ModularCode: "123"}},
		{"non-numeric code", institutions.Institution{Name: "x", ModularCode: "abc4567"}},
		{"bad level", institutions.Institution{Name: "x", ModularCode: "0234567", Level: "KINDER"}},
		{"bad color", institutions.Institution{Name: "x", ModularCode: "0234567", Theme: &institutions.Theme{PrimaryColor: "red"}}},
		{"bad logo position", institutions.Institution{Name: "x", ModularCode: "0234567", Theme: &institutions.Theme{LogoPosition: "top"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.inst.Validate())
		})
	}
}
