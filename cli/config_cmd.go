package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration profiles",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigUseCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config file at %s", ConfigPath())
			}
			return printJSON(os.Stdout, cfg)
		},
	}
}

func newConfigUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: map[string]Profile{}}
			}
			cfg.CurrentProfile = args[0]
			if _, ok := cfg.Profiles[args[0]]; !ok {
				cfg.Profiles[args[0]] = Profile{}
			}
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Using profile %q\n", args[0])
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a profile value",
		Long:  "Keys: base-domain, issuer-url, client-id, keystore, output.",
		Example: `  schoolctl config set base-domain https://api.example.edu
  schoolctl config set issuer-url https://sso.example.edu/realms/school`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}

			name := cfg.CurrentProfile
			if profile != "" {
				name = profile
			}
			if name == "" {
				name = "default"
				cfg.CurrentProfile = name
			}
			p := cfg.Profiles[name]

			key, value := args[0], args[1]
			switch key {
			case "base-domain":
				p.BaseDomain = value
			case "issuer-url":
				p.IssuerURL = value
			case "client-id":
				p.ClientID = value
			case "keystore":
				p.Keystore = value
			case "output":
				if err := validateOutputFormat(value); err != nil {
					return err
				}
				p.Output = value
			default:
				return fmt.Errorf("unknown key %q", key)
			}

			cfg.Profiles[name] = p
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Set %s for profile %q\n", key, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Profile to modify (defaults to the active one)")

	return cmd
}
