package project_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/project"
)

func TestWatcherReloadsConfigOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kestrel")
	assert.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	store := project.NewStore()
	p := store.ByKey(project.Key(path))
	gen := p.Generation()

	w, err := project.NewWatcher(store)
	assert.NoError(t, err)
	defer w.Close()

	reloaded := make(chan []error, 1)
	w.OnReload = func(configPath string, failures []error) {
		select {
		case reloaded <- failures:
		default:
		}
	}
	assert.NoError(t, w.Watch(path))

	content := `{"extensions": ["floatcoerce"]}` + "\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	select {
	case failures := <-reloaded:
		assert.Equal(t, 0, len(failures))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	assert.True(t, p.ExtensionEnabled("floatcoerce"))
	assert.True(t, p.Generation() > gen)
}

func TestWatcherIgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kestrel")
	assert.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	store := project.NewStore()

	w, err := project.NewWatcher(store)
	assert.NoError(t, err)
	defer w.Close()

	called := make(chan struct{}, 1)
	w.OnReload = func(string, []error) {
		select {
		case called <- struct{}{}:
		default:
		}
	}
	assert.NoError(t, w.Watch(path))

	// No project was created for this key, so a write must not reload.
	assert.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	select {
	case <-called:
		t.Fatal("reload fired for an untracked config")
	case <-time.After(250 * time.Millisecond):
	}
}
