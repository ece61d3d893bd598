package root

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lifeplanner/internal/config"
	"lifeplanner/internal/logging"
	"lifeplanner/internal/ui"
)

const Version = "0.2.0"

var (
	cfgFile string
	dbPath  string
	verbose bool
	quiet   bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lp",
		Short:         "Life Planner: tasks, habits and goals in your terminal",
		Long:          "Life Planner keeps three local lists (tasks, habits with daily streaks, goals with progress history) in a SQLite file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFrom(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			logger, err = logging.New(cfg.Log, verbose)
			if err != nil {
				return err
			}
			logger.Debug("config loaded", zap.String("db", cfg.DBPath), zap.String("timezone", cfg.Timezone))

			if ui.HasTheme(cfg.Theme) {
				_ = ui.ApplyTheme(cfg.Theme)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.lifeplanner/config.yaml + ./.lifeplanner/config.yaml)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the updated list after a change")

	cmd.AddCommand(
		newTaskCmd(),
		newHabitCmd(),
		newGoalCmd(),
		newThemeCmd(),
		newQuoteCmd(),
		newStatusCmd(),
		newExportCmd(),
		newConfigCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	return id, nil
}

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	_, err := parseID(args[0])
	return err
}
