package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherEmitsSettledCSV(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "drop.csv")
	require.NoError(t, os.WriteFile(path, []byte("object_key\nimages/a.jpg\n"), 0o644))

	select {
	case got := <-w.Files():
		require.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for CSV emission")
	}
}

func TestWatcherIgnoresNonCSV(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Files():
		t.Fatalf("unexpected emission for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}
