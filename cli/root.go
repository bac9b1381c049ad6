// Package cli implements the schoolctl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/internal/config"
)

var version = "dev"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		profile      string
		baseDomain   string
		issuerURL    string
		clientID     string
		keystoreFile string
		output       string
		verbose      bool
	)

	rootCmd := &cobra.Command{
		Use:           "schoolctl",
		Short:         "Administration CLI for the school management platform",
		Long:          "Manage educational institutions, campuses, and staff accounts from the command line.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}
			p := cfg.ActiveProfile(profile)
			envCfg := config.New()

			// Precedence: flag > env > profile > default
			if !cmd.Flags().Changed("base-domain") {
				if p.BaseDomain != "" && os.Getenv("SCHOOLCTL_BASE_DOMAIN") == "" {
					baseDomain = p.BaseDomain
				} else {
					baseDomain = envCfg.GetBaseDomain()
				}
			}
			if !cmd.Flags().Changed("issuer-url") {
				if p.IssuerURL != "" && os.Getenv("SCHOOLCTL_ISSUER_URL") == "" {
					issuerURL = p.IssuerURL
				} else {
					issuerURL = envCfg.GetIssuerURL()
				}
			}
			if !cmd.Flags().Changed("client-id") {
				if p.ClientID != "" && os.Getenv("SCHOOLCTL_CLIENT_ID") == "" {
					clientID = p.ClientID
				} else {
					clientID = envCfg.GetClientID()
				}
			}
			if !cmd.Flags().Changed("keystore") {
				if v := os.Getenv("SCHOOLCTL_KEYSTORE"); v != "" {
					keystoreFile = v
				} else if p.Keystore != "" {
					keystoreFile = p.Keystore
				} else {
					keystoreFile = DefaultKeystorePath()
				}
			}
			if output == "" && p.Output != "" {
				output = p.Output
			}

			_ = cmd.Flags().Set("base-domain", baseDomain)
			_ = cmd.Flags().Set("issuer-url", issuerURL)
			_ = cmd.Flags().Set("client-id", clientID)
			_ = cmd.Flags().Set("keystore", keystoreFile)
			_ = cmd.Flags().Set("output", output)

			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Configuration profile to use")
	rootCmd.PersistentFlags().StringVar(&baseDomain, "base-domain", "", "Backend base domain (e.g. https://api.example.edu)")
	rootCmd.PersistentFlags().StringVar(&issuerURL, "issuer-url", "", "Identity provider realm URL")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "OAuth client id")
	rootCmd.PersistentFlags().StringVar(&keystoreFile, "keystore", "", "Path of the encrypted session keystore")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: table or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newInstitutionCmd())
	rootCmd.AddCommand(newCampusCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
