package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/kestrel-ml/kestrel/project"
)

func TestStoreSharesProjectsByKey(t *testing.T) {
	store := project.NewStore()

	a := store.ByKey("one")
	b := store.ByKey("one")
	c := store.ByKey("two")

	assert.True(t, a == b, "same key must yield the same project")
	assert.True(t, a != c, "different keys must yield different projects")

	// A settings change through one handle is visible through the other.
	assert.NoError(t, a.EnableExtension("floatcoerce"))
	assert.True(t, b.ExtensionEnabled("floatcoerce"))
}

func TestKeyNormalizesPaths(t *testing.T) {
	assert.Equal(t, "", project.Key(""))

	dir := t.TempDir()
	direct := project.Key(filepath.Join(dir, ".kestrel"))
	dotted := project.Key(filepath.Join(dir, "sub", "..", ".kestrel"))
	assert.Equal(t, direct, dotted)
}

func TestExtensions(t *testing.T) {
	p := project.NewStore().ByKey("")

	assert.Equal(t, 0, len(p.Extensions()))
	assert.NoError(t, p.EnableExtension("warnunused"))
	assert.NoError(t, p.EnableExtension("floatcoerce"))
	assert.Equal(t, []string{"floatcoerce", "warnunused"}, p.Extensions())

	assert.NoError(t, p.DisableExtension("warnunused"))
	assert.Equal(t, []string{"floatcoerce"}, p.Extensions())
	assert.False(t, p.ExtensionEnabled("warnunused"))

	assert.Error(t, p.EnableExtension("nonsense"))
	assert.Error(t, p.DisableExtension("nonsense"))
}

func TestGenerationBumpsOnSettingsChanges(t *testing.T) {
	p := project.NewStore().ByKey("")
	gen := p.Generation()

	assert.NoError(t, p.EnableExtension("floatcoerce"))
	assert.True(t, p.Generation() > gen)
	gen = p.Generation()

	// Re-enabling an enabled extension changes nothing.
	assert.NoError(t, p.EnableExtension("floatcoerce"))
	assert.Equal(t, gen, p.Generation())

	p.AddSourcePath("lib")
	assert.True(t, p.Generation() > gen)
	gen = p.Generation()

	// Duplicate adds change nothing.
	p.AddSourcePath("lib")
	assert.Equal(t, gen, p.Generation())

	p.LoadPackage("math")
	assert.True(t, p.Generation() > gen)
	gen = p.Generation()

	p.Refresh()
	assert.True(t, p.Generation() > gen)
}

func TestSourceAndBuildPaths(t *testing.T) {
	p := project.NewStore().ByKey("")

	p.AddSourcePath("src")
	p.AddSourcePath("lib")
	p.AddBuildPath("_build")
	assert.Equal(t, []string{"src", "lib"}, p.SourcePaths())
	assert.Equal(t, []string{"_build"}, p.BuildPaths())

	p.RemoveSourcePath("src")
	assert.Equal(t, []string{"lib"}, p.SourcePaths())

	// Removing an absent path is a no-op.
	gen := p.Generation()
	p.RemoveSourcePath("src")
	assert.Equal(t, gen, p.Generation())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kestrel")
	content := `{
  "source_paths": ["src"],
  "extensions": ["floatcoerce"],
  "packages": ["math", "stdio"]
}
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, failures := project.LoadConfig(path)
	assert.Equal(t, 0, len(failures))
	assert.Equal(t, []string{"src"}, cfg.SourcePaths)
	assert.Equal(t, []string{"floatcoerce"}, cfg.Extensions)
	assert.Equal(t, []string{"math", "stdio"}, cfg.Packages)
}

func TestLoadConfigFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		write   bool
	}{
		{name: "missing file"},
		{name: "malformed json", content: "{not json", write: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".kestrel")
			if tt.write {
				assert.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			_, failures := project.LoadConfig(path)
			assert.Equal(t, 1, len(failures))
		})
	}
}

func TestApplyCollectsFailuresButKeepsGoing(t *testing.T) {
	p := project.NewStore().ByKey("")

	failures := p.Apply(project.Config{
		SourcePaths: []string{"src"},
		Extensions:  []string{"floatcoerce", "bogus"},
		Packages:    []string{"math", "imaginary"},
	})

	// The unknown extension and package each fail; everything valid sticks.
	assert.Equal(t, 2, len(failures))
	assert.Equal(t, []string{"src"}, p.SourcePaths())
	assert.True(t, p.ExtensionEnabled("floatcoerce"))
	assert.Equal(t, []string{"math"}, p.Packages())
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".kestrel")
	cfg := project.Config{
		SourcePaths: []string{"src", "lib"},
		BuildPaths:  []string{"_build"},
		Extensions:  []string{"warnunused"},
		Packages:    []string{"str"},
	}

	assert.NoError(t, project.WriteConfig(path, cfg))
	loaded, failures := project.LoadConfig(path)
	assert.Equal(t, 0, len(failures))
	assert.Equal(t, cfg, loaded)
}
