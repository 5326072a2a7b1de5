// Package project provides the configuration scope shared by every buffer
// analyzed under the same configuration root: source and build paths, enabled
// language extensions and the loaded package list.
//
// Projects live in an explicit Store keyed by configuration-file identity.
// The store is injected into whoever needs it rather than being process
// global; creating one store per process preserves the one-project-per-key
// sharing contract. Projects themselves are not synchronized: concurrent
// sessions mutating the same project must serialize their calls or accept
// last-writer-wins results.
package project

import (
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slices"
)

// KnownExtensions lists the language extensions a project may enable.
var KnownExtensions = []string{"floatcoerce", "warnunused"}

// Project is a named configuration scope.
type Project struct {
	key        string
	sourcePath []string
	buildPath  []string
	extensions map[string]bool
	packages   []string
	generation uint64
}

func newProject(key string) *Project {
	return &Project{
		key:        key,
		extensions: make(map[string]bool),
	}
}

// Key returns the configuration key this project was created under. The
// empty key is the default scope for buffers with no configuration.
func (p *Project) Key() string {
	return p.key
}

// Generation returns a counter bumped on every settings change. Derived
// state caches compare generations to decide whether to recompute.
func (p *Project) Generation() uint64 {
	return p.generation
}

// Refresh forces consumers of this project to recompute derived state.
func (p *Project) Refresh() {
	p.generation++
}

// SourcePaths returns the configured source directories.
func (p *Project) SourcePaths() []string {
	return slices.Clone(p.sourcePath)
}

// BuildPaths returns the configured build directories.
func (p *Project) BuildPaths() []string {
	return slices.Clone(p.buildPath)
}

// AddSourcePath appends a source directory, ignoring duplicates.
func (p *Project) AddSourcePath(dir string) {
	if slices.Contains(p.sourcePath, dir) {
		return
	}
	p.sourcePath = append(p.sourcePath, dir)
	p.generation++
}

// RemoveSourcePath removes a source directory if present.
func (p *Project) RemoveSourcePath(dir string) {
	i := slices.Index(p.sourcePath, dir)
	if i < 0 {
		return
	}
	p.sourcePath = slices.Delete(p.sourcePath, i, i+1)
	p.generation++
}

// AddBuildPath appends a build directory, ignoring duplicates.
func (p *Project) AddBuildPath(dir string) {
	if slices.Contains(p.buildPath, dir) {
		return
	}
	p.buildPath = append(p.buildPath, dir)
	p.generation++
}

// RemoveBuildPath removes a build directory if present.
func (p *Project) RemoveBuildPath(dir string) {
	i := slices.Index(p.buildPath, dir)
	if i < 0 {
		return
	}
	p.buildPath = slices.Delete(p.buildPath, i, i+1)
	p.generation++
}

// Extensions returns the enabled extensions, sorted.
func (p *Project) Extensions() []string {
	out := make([]string, 0, len(p.extensions))
	for name, on := range p.extensions {
		if on {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// ExtensionEnabled reports whether an extension is on.
func (p *Project) ExtensionEnabled(name string) bool {
	return p.extensions[name]
}

// ExtensionSet returns the extension toggles as a map for checker contexts.
func (p *Project) ExtensionSet() map[string]bool {
	out := make(map[string]bool, len(p.extensions))
	for name, on := range p.extensions {
		out[name] = on
	}
	return out
}

// EnableExtension turns on a known extension.
func (p *Project) EnableExtension(name string) error {
	if !slices.Contains(KnownExtensions, name) {
		return fmt.Errorf("unknown extension %q", name)
	}
	if !p.extensions[name] {
		p.extensions[name] = true
		p.generation++
	}
	return nil
}

// DisableExtension turns off an extension.
func (p *Project) DisableExtension(name string) error {
	if !slices.Contains(KnownExtensions, name) {
		return fmt.Errorf("unknown extension %q", name)
	}
	if p.extensions[name] {
		delete(p.extensions, name)
		p.generation++
	}
	return nil
}

// Packages returns the loaded package list.
func (p *Project) Packages() []string {
	return slices.Clone(p.packages)
}

// LoadPackage adds a package to the environment, ignoring duplicates.
func (p *Project) LoadPackage(name string) {
	if slices.Contains(p.packages, name) {
		return
	}
	p.packages = append(p.packages, name)
	p.generation++
}

// Store is a keyed get-or-create cache of projects. It is safe for
// concurrent lookup; the projects it hands out are not synchronized.
type Store struct {
	mu       sync.Mutex
	projects map[string]*Project
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{projects: make(map[string]*Project)}
}

// ByKey returns the project for key, creating a default one on first use.
// Every caller asking for the same key observes the same project.
func (s *Store) ByKey(key string) *Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.projects[key]; ok {
		return p
	}
	p := newProject(key)
	s.projects[key] = p
	return p
}

// Key derives a configuration key from a config file location. Keys are
// cleaned absolute paths so two spellings of the same file share a project.
// An empty location is the default scope.
func Key(configPath string) string {
	if configPath == "" {
		return ""
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return filepath.Clean(configPath)
	}
	return filepath.Clean(abs)
}
