package commands

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swagger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swagger: \"2.0\"\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, func() { calls.Add(1) })
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("swagger: \"2.0\"\n# edited\n"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 200*time.Millisecond)

	time.Sleep(3 * watchDebounce)
	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, before, calls.Load(), "changes to other files are ignored")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WatchFile did not return after cancel")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "gone", "swagger.yaml"), func() {})
	assert.Error(t, err)
}
