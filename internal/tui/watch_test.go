package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeplanner/internal/engine"
	"lifeplanner/internal/storage"
)

func TestWatchFileCoalescesWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "lp.db")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	calls := make(chan struct{}, 8)
	require.NoError(t, watchFile(ctx, path, func() { calls <- struct{}{} }, func(err error) { t.Errorf("watch: %v", err) }))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644))

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-calls:
		t.Fatal("burst was not coalesced")
	case <-time.After(4 * watchDebounce):
	}
}

func TestReloadFailureReachesBoard(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemKV()
	svc, err := engine.Open(ctx, kv)
	require.NoError(t, err)
	m := newBoardModel(ctx, svc)

	var sent []tea.Msg
	reload := reloadOnChange(ctx, svc, func(msg tea.Msg) { sent = append(sent, msg) })

	reload()
	assert.Empty(t, sent)

	kv.FailGet = errors.New("database is locked")
	reload()
	require.Len(t, sent, 1)

	next, _ := m.Update(sent[0])
	assert.Equal(t, "Reload failed: database is locked", next.(boardModel).lastLog)
}
