package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/institutions"
	"github.com/schoolctl/schoolctl/internal/utils"
)

func newInstitutionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "institution",
		Aliases: []string{"institutions"},
		Short:   "Manage educational institutions",
	}

	cmd.AddCommand(newInstitutionListCmd())
	cmd.AddCommand(newInstitutionGetCmd())
	cmd.AddCommand(newInstitutionCreateCmd())
	cmd.AddCommand(newInstitutionUpdateCmd())
	cmd.AddCommand(newInstitutionActivateCmd(true))
	cmd.AddCommand(newInstitutionActivateCmd(false))
	cmd.AddCommand(newInstitutionDeleteCmd())

	return cmd
}

func newInstitutionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List institutions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.institutions.List(cmd.Context())
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res.Data)
			}

			columns := []string{"id", "name", "modular_code", "level", "active"}
			rows := make([][]string, 0, len(res.Data))
			for _, inst := range res.Data {
				rows = append(rows, []string{inst.ID, inst.Name, inst.ModularCode, string(inst.Level), yesNo(utils.Value(inst.Active))})
			}
			printTable(os.Stdout, columns, rows)
			return nil
		},
	}
}

func newInstitutionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one institution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.institutions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, res.Data)
		},
	}
}

func institutionFlags(cmd *cobra.Command, inst *institutions.Institution, primaryColor, logoPosition *string, active *bool) {
	cmd.Flags().StringVar(&inst.Name, "name", "", "Institution name")
	cmd.Flags().StringVar(&inst.ModularCode, "modular-code", "", "Ministry modular code (7 digits)")
	cmd.Flags().StringVar((*string)(&inst.Level), "level", "", "Level: INITIAL, PRIMARY or SECONDARY")
	cmd.Flags().StringVar(&inst.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&inst.ManagementUnit, "management-unit", "", "Local education authority")
	cmd.Flags().StringVar(&inst.Phone, "phone", "", "Contact phone")
	cmd.Flags().BoolVar(active, "active", true, "Whether the institution is active")
	cmd.Flags().StringVar(primaryColor, "primary-color", "", "Branding primary color (#rrggbb)")
	cmd.Flags().StringVar(logoPosition, "logo-position", "", "Branding logo position: left or center")
}

func applyTheme(inst *institutions.Institution, primaryColor, logoPosition string) {
	if primaryColor == "" && logoPosition == "" {
		return
	}
	inst.Theme = &institutions.Theme{
		PrimaryColor: primaryColor,
		LogoPosition: logoPosition,
	}
}

func newInstitutionCreateCmd() *cobra.Command {
	var (
		inst         institutions.Institution
		primaryColor string
		logoPosition string
		active       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an institution",
		Example: `  schoolctl institution create --name "IE San Martin" --modular-code 0234567 --level PRIMARY
  schoolctl institution create --name "IE Mariscal" --modular-code 0765432 --primary-color "#aa0000"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			applyTheme(&inst, primaryColor, logoPosition)
			inst.Active = utils.Ptr(active)
			res, err := a.institutions.Create(cmd.Context(), inst)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	institutionFlags(cmd, &inst, &primaryColor, &logoPosition, &active)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("modular-code")

	return cmd
}

func newInstitutionUpdateCmd() *cobra.Command {
	var (
		inst         institutions.Institution
		primaryColor string
		logoPosition string
		active       bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an institution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			applyTheme(&inst, primaryColor, logoPosition)
			if cmd.Flags().Changed("active") {
				inst.Active = utils.Ptr(active)
			}
			res, err := a.institutions.Update(cmd.Context(), args[0], inst)
			if err != nil {
				return err
			}

			if res.Message != "" {
				fmt.Fprintln(os.Stderr, res.Message)
			}
			return printJSON(os.Stdout, res.Data)
		},
	}

	institutionFlags(cmd, &inst, &primaryColor, &logoPosition, &active)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("modular-code")

	return cmd
}

func newInstitutionActivateCmd(active bool) *cobra.Command {
	use, short := "activate <id>", "Enable an institution"
	if !active {
		use, short = "deactivate <id>", "Disable an institution"
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

			res, err := a.institutions.SetActive(cmd.Context(), args[0], active)
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

func newInstitutionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an institution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.institutions.Delete(cmd.Context(), args[0])
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
