package root

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/storage"
	"lifeplanner/internal/ui"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService opens the planner and applies the stored theme. Unless --quiet
// or out is nil, the changed list is re-rendered to out after every mutation.
func openService(ctx context.Context, out io.Writer) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	svc, err := engine.Open(ctx, storage.NewSQLiteKV(db),
		engine.WithLogger(logger),
		engine.WithLocation(loc))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if name, err := svc.Theme(ctx); err != nil {
		cleanup()
		return nil, nil, err
	} else if ui.HasTheme(name) {
		_ = ui.ApplyTheme(name)
	}
	if !quiet && out != nil {
		svc.Subscribe(renderOnChange(svc, out))
	}
	return svc, cleanup, nil
}

func renderOnChange(svc *engine.Service, out io.Writer) engine.Listener {
	return engine.ListenerFunc(func(kind engine.Kind) {
		switch kind {
		case engine.KindTasks:
			fmt.Fprint(out, ui.TaskList(svc.Tasks().List(engine.TaskFilter{})))
		case engine.KindHabits:
			fmt.Fprint(out, ui.HabitList(svc.Habits().List()))
		case engine.KindGoals:
			fmt.Fprint(out, ui.GoalList(svc.Goals().List()))
		}
	})
}

// missing reports a soft miss: nothing changed, exit status stays 0.
func missing(out io.Writer, what string, id int64) {
	fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s #%d not found, nothing changed", what, id)))
}
