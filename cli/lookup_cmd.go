package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query the external registries",
	}

	cmd.AddCommand(newLookupPersonCmd())
	cmd.AddCommand(newLookupSchoolCmd())

	return cmd
}

func newLookupPersonCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dni <document-id>",
		Short:   "Look up a person in the national identity registry",
		Example: `  schoolctl lookup dni 45678912`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.lookup.FindPerson(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res.Data)
			}
			fmt.Fprintln(os.Stdout, res.Data.FullName())
			return nil
		},
	}
}

func newLookupSchoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "school <modular-code>",
		Short:   "Look up a school in the ministry registry",
		Example: `  schoolctl lookup school 0234567`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.lookup.FindSchool(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, res.Data)
		},
	}
}
