package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"g", "goals"},
		Short:   "Manage goals and their progress",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalSetCmd(),
		newGoalRmCmd(),
		newGoalLsCmd(),
		newGoalHistoryCmd(),
		newGoalChartCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <progress>",
		Short: "Add a goal with its starting progress (0-100)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("name and progress are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := engine.ParseProgress(args[len(args)-1])
			if err != nil {
				return err
			}
			name := strings.Join(args[:len(args)-1], " ")

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := svc.Goals().Add(ctx, name, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added"), g.ID, g.Name)
			return nil
		},
	}
}

func newGoalSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <id> <progress>",
		Aliases: []string{"update"},
		Short:   "Record new progress for a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and progress are required")
			}
			_, err := parseID(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := parseID(args[0])
			progress, err := engine.ParseProgress(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Goals().UpdateProgress(ctx, id, progress)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "goal", id)
			}
			return nil
		},
	}
}

func newGoalRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a goal",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Goals().Delete(ctx, id)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "goal", id)
			}
			return nil
		},
	}
}

func newGoalLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List goals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprint(cmd.OutOrStdout(), ui.GoalList(svc.Goals().List()))
			return nil
		},
	}
}

func newGoalHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show every progress update of a goal",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			g, ok := svc.Goals().Get(id)
			if !ok {
				missing(cmd.OutOrStdout(), "goal", id)
				return nil
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.GoalHistory(g, loc))
			return nil
		},
	}
}

func newGoalChartCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Bar chart of all goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprint(cmd.OutOrStdout(), ui.GoalChart(svc.Goals().List(), width))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 40, "Bar width in cells")
	return cmd
}
