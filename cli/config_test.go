package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveProfile(t *testing.T) {
	cfg := &UserConfig{
		CurrentProfile: "dev",
		Profiles: map[string]Profile{
			"dev":  {BaseDomain: "http://localhost:3000"},
			"prod": {BaseDomain: "https://admin.example.edu", Output: "json"},
		},
	}

	require.Equal(t, "http://localhost:3000", cfg.ActiveProfile("").BaseDomain)
	require.Equal(t, "https://admin.example.edu", cfg.ActiveProfile("prod").BaseDomain)
	require.Equal(t, Profile{}, cfg.ActiveProfile("missing"))
}

func TestUserConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &UserConfig{
		CurrentProfile: "prod",
		Profiles: map[string]Profile{
			"prod": {
				BaseDomain: "https://admin.example.edu",
				IssuerURL:  "https://auth.example.edu/realms/school",
				ClientID:   "schoolctl-admin",
				Output:     "json",
			},
		},
	}
	require.NoError(t, SaveUserConfig(cfg))

	got, err := LoadUserConfig()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := LoadUserConfig()
	require.Error(t, err)
}
