package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifeplanner/internal/engine"
)

// RunBoard runs the dashboard until the user quits. When dbPath is set,
// writes to it from other processes reload the board.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer, dbPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	if dbPath != "" {
		onError := func(err error) { p.Send(resultMsg{desc: "Watch", err: err}) }
		if err := watchFile(ctx, dbPath, reloadOnChange(ctx, svc, p.Send), onError); err != nil {
			// Send blocks until Run starts reading messages.
			go onError(err)
		}
	}
	_, err := p.Run()
	return err
}
