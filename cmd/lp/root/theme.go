package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeplanner/internal/ui"
)

func newThemeCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or switch the color theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			if list {
				for _, name := range ui.Themes() {
					marker := "  "
					if name == ui.CurrentTheme() {
						marker = ui.Good.Render("* ")
					}
					fmt.Fprintln(out, marker+name)
				}
				return nil
			}
			if len(args) == 0 {
				fmt.Fprintln(out, ui.LabelValue("Theme", ui.CurrentTheme()))
				return nil
			}

			name := strings.ToLower(strings.TrimSpace(args[0]))
			if !ui.HasTheme(name) {
				return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ui.Themes(), ", "))
			}
			if err := svc.SetTheme(ctx, name); err != nil {
				return err
			}
			if err := ui.ApplyTheme(name); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconSparkle+" Theme set to"), ui.Title.Render(name))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available themes")
	return cmd
}
