package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summary of tasks, habits and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			s := svc.Summary()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Life Planner"))
			fmt.Fprintln(out, ui.IconQuote+" "+ui.Muted.Render(engine.QuoteFor(svc.Now())))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTask+" Tasks"))
			fmt.Fprintln(out, ui.LabelValue("Open", s.TasksOpen))
			fmt.Fprintln(out, ui.LabelValue("Done", s.TasksDone))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconHabit+" Habits"))
			fmt.Fprintln(out, ui.LabelValue("Completed today", fmt.Sprintf("%d of %d", s.HabitsDoneToday, s.Habits)))
			if s.BestStreak > 0 {
				fmt.Fprintln(out, ui.LabelValue("Best streak", ui.Gold.Render(fmt.Sprintf("%s %d days", ui.IconFire, s.BestStreak))+" "+ui.Muted.Render("("+s.BestStreakHabit+")")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Best streak", ui.Muted.Render("none yet")))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconGoal+" Goals"))
			fmt.Fprintln(out, ui.LabelValue("Complete", fmt.Sprintf("%d of %d", s.GoalsComplete, s.Goals)))
			fmt.Fprintln(out, ui.LabelValue("Average", ui.ProgressBar(s.AverageProgress, 100, 20)+fmt.Sprintf(" %d%%", s.AverageProgress)))
			return nil
		},
	}

	return cmd
}
