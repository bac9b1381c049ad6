package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolctl/schoolctl/institutions"
	"github.com/schoolctl/schoolctl/menu"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the navigation entries visible to the signed-in user",
		Long: `Shows the navigation menu the web application would render for the current
session: entries filtered by role, styled with the institution's branding.`,
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

			var theme *institutions.Theme
			if len(snap.Institution) > 0 {
				var inst institutions.Institution
				if err := json.Unmarshal(snap.Institution, &inst); err == nil {
					theme = inst.Theme
				}
			}

			entries := menu.Visible(menu.Default(), snap.Claims)
			style := menu.ResolveStyle(theme)

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{
					"entries": entries,
					"style":   style,
				})
			}

			fmt.Fprintf(os.Stdout, "style: primary=%s secondary=%s logo=%s\n\n",
				style.PrimaryColor, style.SecondaryColor, style.LogoPosition)
			columns := []string{"title", "path", "icon"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Title, e.Path, e.Icon})
			}
			printTable(os.Stdout, columns, rows)
			return nil
		},
	}
}
