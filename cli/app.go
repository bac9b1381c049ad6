package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/auth"
	"github.com/schoolctl/schoolctl/headquarters"
	"github.com/schoolctl/schoolctl/institutions"
	"github.com/schoolctl/schoolctl/internal/config"
	"github.com/schoolctl/schoolctl/lookup"
	"github.com/schoolctl/schoolctl/session/keystore"
	"github.com/schoolctl/schoolctl/users"
)

// app wires the session store, the auth service, and every service client for
// one command invocation.
type app struct {
	store        *keystore.Keystore
	auth         *auth.Service
	client       *api.Client
	institutions *institutions.Service
	headquarters *headquarters.Service
	users        *users.Service
	lookup       *lookup.Service
	log          zerolog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()
	baseDomain, _ := flags.GetString("base-domain")
	issuerURL, _ := flags.GetString("issuer-url")
	clientID, _ := flags.GetString("client-id")
	keystoreFile, _ := flags.GetString("keystore")
	if keystoreFile == "" {
		keystoreFile = DefaultKeystorePath()
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	passphrase := config.GetEnv("SCHOOLCTL_KEYSTORE_PASSPHRASE", clientID)
	ks, err := keystore.Open(keystoreFile, passphrase)
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}

	authSvc, err := auth.NewService(ks, issuerURL, clientID, auth.WithLogger(log))
	if err != nil {
		return nil, err
	}

	client, err := api.New(ks, authSvc,
		api.WithLogger(log),
		api.WithSessionExpiredHandler(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'schoolctl login' to sign in again.")
		}),
	)
	if err != nil {
		return nil, err
	}

	instSvc, err := institutions.NewService(client, config.InstitutionRoot(baseDomain))
	if err != nil {
		return nil, err
	}
	hqSvc, err := headquarters.NewService(client, config.InstitutionRoot(baseDomain))
	if err != nil {
		return nil, err
	}
	userSvc, err := users.NewService(client, config.UserRoot(baseDomain))
	if err != nil {
		return nil, err
	}
	lookupSvc, err := lookup.NewService(client, config.LookupRoot(baseDomain),
		lookup.WithPersonTimeout(config.New().GetLookupTimeout()))
	if err != nil {
		return nil, err
	}

	return &app{
		store:        ks,
		auth:         authSvc,
		client:       client,
		institutions: instSvc,
		headquarters: hqSvc,
		users:        userSvc,
		lookup:       lookupSvc,
		log:          log,
	}, nil
}
