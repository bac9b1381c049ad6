package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/headquarters"
	"github.com/schoolctl/schoolctl/internal/utils"
)

func newCampusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campus",
		Aliases: []string{"campuses", "headquarter"},
		Short:   "Manage institution campuses",
	}

	cmd.AddCommand(newCampusListCmd())
	cmd.AddCommand(newCampusGetCmd())
	cmd.AddCommand(newCampusCreateCmd())
	cmd.AddCommand(newCampusUpdateCmd())
	cmd.AddCommand(newCampusDeleteCmd())

	return cmd
}

func newCampusListCmd() *cobra.Command {
	var institutionID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the campuses of an institution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.headquarters.ListByInstitution(cmd.Context(), institutionID)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res.Data)
			}

			columns := []string{"id", "name", "district", "main", "active"}
			rows := make([][]string, 0, len(res.Data))
			for _, hq := range res.Data {
				rows = append(rows, []string{hq.ID, hq.Name, hq.District, yesNo(hq.Main), yesNo(utils.Value(hq.Active))})
			}
			printTable(os.Stdout, columns, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&institutionID, "institution", "", "Institution id")
	_ = cmd.MarkFlagRequired("institution")

	return cmd
}

func newCampusGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one campus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.headquarters.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, res.Data)
		},
	}
}

func campusFlags(cmd *cobra.Command, hq *headquarters.Headquarter, active *bool) {
	cmd.Flags().StringVar(&hq.InstitutionID, "institution", "", "Institution id")
	cmd.Flags().StringVar(&hq.Name, "name", "", "Campus name")
	cmd.Flags().StringVar(&hq.Code, "code", "", "Campus code")
	cmd.Flags().StringVar(&hq.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&hq.District, "district", "", "District")
	cmd.Flags().StringVar(&hq.Phone, "phone", "", "Contact phone")
	cmd.Flags().BoolVar(&hq.Main, "main", false, "Mark as the principal campus")
	cmd.Flags().BoolVar(active, "active", true, "Whether the campus is active")
}

func newCampusCreateCmd() *cobra.Command {
	var (
		hq     headquarters.Headquarter
		active bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campus",
		Example: `  schoolctl campus create --institution 42 --name "Sede Central" --district Lima --main`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			hq.Active = utils.Ptr(active)
			res, err := a.headquarters.Create(cmd.Context(), hq)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	campusFlags(cmd, &hq, &active)
	_ = cmd.MarkFlagRequired("institution")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCampusUpdateCmd() *cobra.Command {
	var (
		hq     headquarters.Headquarter
		active bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a campus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("active") {
				hq.Active = utils.Ptr(active)
			}
			res, err := a.headquarters.Update(cmd.Context(), args[0], hq)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	campusFlags(cmd, &hq, &active)
	_ = cmd.MarkFlagRequired("institution")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCampusDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a campus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.headquarters.Delete(cmd.Context(), args[0])
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
