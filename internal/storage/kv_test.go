package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteKV(db)
}

func TestSQLiteKVGetSet(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	_, ok, err := kv.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, KeyTheme, "dark"))
	require.NoError(t, kv.Set(ctx, KeyTheme, "forest"))

	v, ok, err := kv.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "forest", v)

	require.NoError(t, kv.Set(ctx, KeyGoals, "[]"))
	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyGoals, KeyTheme}, keys)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteKV(db).Set(ctx, KeyTasks, `[{"id":1}]`))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	v, ok, err := NewSQLiteKV(db).Get(ctx, KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestLoadListMissingKeyIsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, kv := range map[string]KV{"mem": NewMemKV(), "sqlite": openTestKV(t)} {
		t.Run(name, func(t *testing.T) {
			tasks, err := LoadList[Task](ctx, kv, KeyTasks)
			require.NoError(t, err)
			assert.NotNil(t, tasks)
			assert.Empty(t, tasks)
		})
	}
}

func TestSaveListKeepsOrderAndFields(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	day := "2026-10-19"
	created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	in := []Habit{
		{ID: 2, Text: "Read", Streak: 4, LastChecked: &day, Checkmarks: [CheckmarkCount]bool{true, false, true}, CreatedAt: created},
		{ID: 1, Text: "Exercise", CreatedAt: created},
	}
	require.NoError(t, SaveList(ctx, kv, KeyHabits, in))

	out, err := LoadList[Habit](ctx, kv, KeyHabits)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, 4, out[0].Streak)
	require.NotNil(t, out[0].LastChecked)
	assert.Equal(t, day, *out[0].LastChecked)
	assert.Equal(t, [CheckmarkCount]bool{true, false, true}, out[0].Checkmarks)
	assert.True(t, out[0].CreatedAt.Equal(created))
	assert.Nil(t, out[1].LastChecked)
}

func TestSaveListNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemKV()
	require.NoError(t, SaveList[Goal](ctx, kv, KeyGoals, nil))
	v, ok, err := kv.Get(ctx, KeyGoals)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestLoadListRejectsCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemKV()
	require.NoError(t, kv.Set(ctx, KeyGoals, "{not json"))
	_, err := LoadList[Goal](ctx, kv, KeyGoals)
	assert.Error(t, err)
}

func TestMemKVFailSet(t *testing.T) {
	kv := NewMemKV()
	kv.FailSet = errors.New("disk full")
	err := kv.Set(context.Background(), KeyTasks, "[]")
	assert.EqualError(t, err, "disk full")
}
