package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lifeplanner/internal/storage"
	"lifeplanner/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"h", "habits"},
		Short:   "Manage habits and their daily checkmarks",
	}
	cmd.AddCommand(
		newHabitAddCmd(),
		newHabitCheckCmd(),
		newHabitRmCmd(),
		newHabitLsCmd(),
	)
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.Habits().Add(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added"), h.ID, h.Text)
			return nil
		},
	}
}

func newHabitCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <id> <1-3>",
		Short: "Toggle one of a habit's checkmarks",
		Long: `Toggle one of a habit's three checkmarks.

When all three are set the streak grows by one, at most once per calendar day.
Clearing any checkmark resets the streak to zero, even if today was already
credited; checking it again the same day does not restore it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and checkmark number are required")
			}
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > storage.CheckmarkCount {
				return fmt.Errorf("checkmark must be 1-%d", storage.CheckmarkCount)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			n, _ := strconv.Atoi(args[1])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			before, _ := svc.Habits().Get(id)
			changed, err := svc.Habits().ToggleCheckmark(ctx, id, n-1)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "habit", id)
				return nil
			}
			after, _ := svc.Habits().Get(id)
			switch {
			case after.Streak > before.Streak:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("%s Day complete, streak %d", ui.IconFire, after.Streak)))
			case after.Streak == 0 && before.Streak > 0:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Streak of %d reset", ui.IconWarn, before.Streak)))
			}
			return nil
		},
	}
}

func newHabitRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Habits().Delete(ctx, id)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "habit", id)
			}
			return nil
		},
	}
}

func newHabitLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List habits, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprint(cmd.OutOrStdout(), ui.HabitList(svc.Habits().List()))
			return nil
		},
	}
}
