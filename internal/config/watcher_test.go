package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[match]\ntitle = \"Open\"\n"), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var got *Config
	w.SetReloadCallback(func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		got = cfg
	})

	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(path, []byte("[match]\ntitle = \"Save\"\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Match.Title == "Save"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_InvalidChangeReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[poll]\ninterval = \"1s\"\n"), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var reloaded bool
	var gotErr error
	w.SetReloadCallback(func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		reloaded = true
	})
	w.SetErrorCallback(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		gotErr = err
	})

	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(path, []byte("[overlay]\nalpha = 2.0\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotErr != nil
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, reloaded)
	assert.Contains(t, gotErr.Error(), "alpha")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var reloads int
	w.SetReloadCallback(func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
	})

	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0644))
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, reloads)
}

func TestWatcher_CoalescesEventBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var reloads int
	w.SetReloadCallback(func(cfg *Config) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
	})

	require.NoError(t, w.Start())

	// An editor save produces several events back to back; one reload
	// should come out the other end.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[match]\ntitle = \"Open\"\n"), 0644))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloads >= 1
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(3 * debounceDelay)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, reloads)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
