package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		Example: `  schoolctl login --username director.lopez
  SCHOOLCTL_PASSWORD=... schoolctl login --username admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := os.Getenv("SCHOOLCTL_PASSWORD")
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			claims, err := a.auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			// Cache the institution descriptor (id, branding) for menu
			// rendering. Best effort; a failed fetch does not fail the login.
			if claims.InstitutionID != "" {
				if res, lookupErr := a.institutions.Get(cmd.Context(), claims.InstitutionID); lookupErr == nil {
					if raw, marshalErr := json.Marshal(res.Data); marshalErr == nil {
						if snap, snapErr := a.store.Snapshot(); snapErr == nil {
							snap.Institution = raw
							_ = a.store.SetSession(snap)
						}
					}
				}
			}

			roles := make([]string, 0, len(claims.Roles))
			for _, r := range claims.Roles {
				roles = append(roles, string(r))
			}
			fmt.Fprintf(os.Stdout, "Signed in as %s (%s)\n", claims.FullName, strings.Join(roles, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and destroy the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			snap, err := a.store.Snapshot()
			if err != nil {
				return err
			}
			if snap.Credentials.Empty() {
				return fmt.Errorf("not signed in: run 'schoolctl login'")
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, snap.Claims)
			}

			roles := make([]string, 0, len(snap.Claims.Roles))
			for _, r := range snap.Claims.Roles {
				roles = append(roles, string(r))
			}
			fmt.Fprintf(os.Stdout, "user id:      %s\n", snap.Claims.UserID)
			fmt.Fprintf(os.Stdout, "name:         %s\n", snap.Claims.FullName)
			fmt.Fprintf(os.Stdout, "roles:        %s\n", strings.Join(roles, ", "))
			if snap.Claims.InstitutionID != "" {
				fmt.Fprintf(os.Stdout, "institution:  %s\n", snap.Claims.InstitutionID)
			}
			return nil
		},
	}
}
