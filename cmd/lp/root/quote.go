package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/ui"
)

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print the quote of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconQuote+" "+ui.Muted.Render(engine.QuoteFor(time.Now().In(loc))))
			return nil
		},
	}
}
