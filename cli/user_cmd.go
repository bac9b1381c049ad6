package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/internal/utils"
	"github.com/schoolctl/schoolctl/session"
	"github.com/schoolctl/schoolctl/users"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users", "staff"},
		Short:   "Manage staff accounts",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserActivateCmd(true))
	cmd.AddCommand(newUserActivateCmd(false))
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		Example: `  schoolctl user list
  schoolctl user list --role TEACHER`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			var res api.Result[[]users.Account]
			if role != "" {
				res, err = a.users.ListByRole(cmd.Context(), session.Role(role))
			} else {
				res, err = a.users.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res.Data)
			}

			columns := []string{"id", "username", "name", "role", "institution", "active"}
			rows := make([][]string, 0, len(res.Data))
			for _, acc := range res.Data {
				rows = append(rows, []string{
					acc.ID, acc.Username, acc.FullName(), string(acc.Role), acc.InstitutionID, yesNo(utils.Value(acc.Active)),
				})
			}
			printTable(os.Stdout, columns, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by role (ADMIN, DIRECTOR, TEACHER, AUXILIARY, SECRETARY)")

	return cmd
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, res.Data)
		},
	}
}

func userFlags(cmd *cobra.Command, acc *users.Account, active *bool) {
	cmd.Flags().StringVar(&acc.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&acc.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&acc.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&acc.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&acc.DocumentID, "document-id", "", "National identity document (8 digits)")
	cmd.Flags().StringVar(&acc.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar((*string)(&acc.Role), "role", "", "Role: ADMIN, DIRECTOR, TEACHER, AUXILIARY or SECRETARY")
	cmd.Flags().StringVar(&acc.InstitutionID, "institution", "", "Institution id")
	cmd.Flags().StringVar(&acc.HeadquarterID, "campus", "", "Campus id")
	cmd.Flags().BoolVar(active, "active", true, "Whether the account is active")
}

func newUserCreateCmd() *cobra.Command {
	var (
		acc    users.Account
		active bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Example: `  schoolctl user create --username jperez --email jperez@example.edu \
    --first-name Juan --last-name Perez --document-id 45678912 \
    --role TEACHER --institution 42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			acc.Active = utils.Ptr(active)
			res, err := a.users.Create(cmd.Context(), acc)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	userFlags(cmd, &acc, &active)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("document-id")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	var (
		acc    users.Account
		active bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("active") {
				acc.Active = utils.Ptr(active)
			}
			res, err := a.users.Update(cmd.Context(), args[0], acc)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	userFlags(cmd, &acc, &active)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("document-id")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newUserActivateCmd(active bool) *cobra.Command {
	use, short := "activate <id>", "Enable a staff account"
	if !active {
		use, short = "deactivate <id>", "Disable a staff account"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.users.SetActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stdout, res.Message)
			}
			return nil
		},
	}
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.users.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stdout, res.Message)
			} else {
				fmt.Fprintln(os.Stdout, "Deleted")
			}
			return nil
		},
	}
}
