package root

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/storage"
)

type exportDoc struct {
	Theme  string          `json:"theme,omitempty" yaml:"theme,omitempty"`
	Tasks  []storage.Task  `json:"tasks" yaml:"tasks"`
	Habits []storage.Habit `json:"habits" yaml:"habits"`
	Goals  []storage.Goal  `json:"goals" yaml:"goals"`
}

func newExportCmd() *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump tasks, habits and goals as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unknown format %q (yaml|json)", format)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			theme, err := svc.Theme(ctx)
			if err != nil {
				return err
			}
			doc := exportDoc{
				Theme:  theme,
				Tasks:  svc.Tasks().List(engine.TaskFilter{}),
				Habits: svc.Habits().List(),
				Goals:  svc.Goals().List(),
			}

			if outPath == "" || outPath == "-" {
				return writeExport(cmd.OutOrStdout(), format, doc)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return writeExportClose(f, format, doc)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml|json)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// writeExportClose writes doc to wc and closes it. A failed close is an
// error: the file may be incomplete.
func writeExportClose(wc io.WriteCloser, format string, doc exportDoc) error {
	werr := writeExport(wc, format, doc)
	if cerr := wc.Close(); cerr != nil && werr == nil {
		return fmt.Errorf("export: close: %w", cerr)
	}
	return werr
}

func writeExport(w io.Writer, format string, doc exportDoc) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("export: encode json: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode yaml: %w", err)
	}
	return enc.Close()
}
