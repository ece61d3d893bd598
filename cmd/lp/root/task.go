package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t", "tasks"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskDoneCmd(),
		newTaskDueCmd(),
		newTaskRmCmd(),
		newTaskLsCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var category string
	var priority string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.Tasks().Add(ctx, engine.TaskInput{
				Text:     strings.Join(args, " "),
				Category: category,
				Priority: p,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added"), t.ID, t.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", engine.DefaultCategory, "Category label")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|normal|high)")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between done and pending",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Tasks().Toggle(ctx, id)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "task", id)
			}
			return nil
		},
	}
}

func newTaskDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due <id> <YYYY-MM-DD|none>",
		Short: "Set or clear a task's due date",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and date are required")
			}
			_, err := parseID(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			var due *time.Time
			if v := strings.ToLower(args[1]); v != "none" && v != "-" {
				d, err := time.ParseInLocation(engine.DateLayout, args[1], loc)
				if err != nil {
					return fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
				}
				due = &d
			}

			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Tasks().SetDue(ctx, id, due)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "task", id)
			}
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := parseID(args[0])
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := svc.Tasks().Delete(ctx, id)
			if err != nil {
				return err
			}
			if !changed {
				missing(cmd.OutOrStdout(), "task", id)
			}
			return nil
		},
	}
}

func newTaskLsCmd() *cobra.Command {
	var category string
	var pending bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := svc.Tasks().List(engine.TaskFilter{Category: category, PendingOnly: pending})
			fmt.Fprint(cmd.OutOrStdout(), ui.TaskList(tasks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only tasks not yet done")
	return cmd
}
