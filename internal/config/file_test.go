package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/jiggler/internal/jiggle"
)

func writeYAML(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestFileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jiggler.yaml")
	writeYAML(t, path, "interval: 45s\namplitude: 6\n")

	f, err := OpenFile(path)
	require.NoError(t, err)

	got, err := f.Merge(jiggle.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, jiggle.Config{Interval: 45 * time.Second, Amplitude: 6, Randomize: true}, got,
		"keys missing from the file keep the base value")
}

func TestFileMergeBareSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	writeYAML(t, path, "interval: 12\nrandomize: false\n")

	f, err := OpenFile(path)
	require.NoError(t, err)

	got, err := f.Merge(jiggle.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, got.Interval)
	assert.False(t, got.Randomize)
}

func TestFilePinnedKeysWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	writeYAML(t, path, "interval: 45s\namplitude: 6\n")

	f, err := OpenFile(path, keyAmplitude)
	require.NoError(t, err)

	base := jiggle.Config{Interval: 10 * time.Second, Amplitude: 2}
	got, err := f.Merge(base)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, got.Interval)
	assert.Equal(t, 2, got.Amplitude)
}

func TestFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	writeYAML(t, path, "amplitude: 0\n")

	f, err := OpenFile(path)
	require.NoError(t, err)

	base := jiggle.DefaultConfig()
	got, err := f.Merge(base)
	require.Error(t, err)
	assert.Equal(t, base, got)
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFileReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	writeYAML(t, path, "amplitude: 4\n")

	f, err := OpenFile(path)
	require.NoError(t, err)
	store := NewStore(jiggle.DefaultConfig())
	require.NoError(t, f.Reload(store))
	assert.Equal(t, 4, store.Config().Amplitude)

	writeYAML(t, path, "amplitude: 9\n")
	require.NoError(t, f.Reload(store))
	assert.Equal(t, 9, store.Config().Amplitude)

	writeYAML(t, path, "interval: never\n")
	require.Error(t, f.Reload(store))
	assert.Equal(t, 9, store.Config().Amplitude, "bad edit leaves store untouched")
}

func TestFileWatchAppliesChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	writeYAML(t, path, "amplitude: 4\n")

	f, err := OpenFile(path)
	require.NoError(t, err)
	store := NewStore(jiggle.DefaultConfig())
	f.Watch(store)

	writeYAML(t, path, "amplitude: 8\ninterval: 20s\n")
	require.Eventually(t, func() bool {
		cfg := store.Config()
		return cfg.Amplitude == 8 && cfg.Interval == 20*time.Second
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	want := jiggle.Config{Interval: 90 * time.Second, Amplitude: 5, Randomize: false}
	require.NoError(t, WriteFile(path, want))

	f, err := OpenFile(path)
	require.NoError(t, err)
	got, err := f.Merge(jiggle.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
