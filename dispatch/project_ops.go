package dispatch

import (
	"context"

	"github.com/kestrel-ml/kestrel/project"
	"github.com/kestrel-ml/kestrel/telemetry"
)

// Project-scoped operations. These mutate shared configuration, so like
// every non-feed mutation they drop any open feed session first.

// LoadConfig switches the session to the project scope keyed by the config
// file's identity, applying its settings. Failures are reported alongside
// the best-effort project; the buffer keeps working regardless.
func (d *Dispatcher) LoadConfig(ctx context.Context, configPath string) []error {
	timer := telemetry.FromContext(ctx).Start("load config")
	defer timer.End()

	d.clearSession()

	key := project.Key(configPath)
	proj := d.store.ByKey(key)

	cfg, failures := project.LoadConfig(configPath)
	failures = append(failures, proj.Apply(cfg)...)

	d.proj = proj
	d.buf.SetProject(proj)
	d.log.Infof("session %s: project %q loaded with %d failure(s)", d.id, key, len(failures))
	return failures
}

// Extensions returns the project's enabled extensions, sorted.
func (d *Dispatcher) Extensions(ctx context.Context) []string {
	return d.proj.Extensions()
}

// KnownExtensions returns every extension that may be enabled.
func (d *Dispatcher) KnownExtensions(ctx context.Context) []string {
	return project.KnownExtensions
}

// EnableExtension turns on a language extension for the shared project.
func (d *Dispatcher) EnableExtension(ctx context.Context, name string) error {
	d.clearSession()
	return d.proj.EnableExtension(name)
}

// DisableExtension turns off a language extension for the shared project.
func (d *Dispatcher) DisableExtension(ctx context.Context, name string) error {
	d.clearSession()
	return d.proj.DisableExtension(name)
}

// AddSourcePath adds a directory to the project's source search paths.
func (d *Dispatcher) AddSourcePath(ctx context.Context, dir string) {
	d.clearSession()
	d.proj.AddSourcePath(dir)
}

// RemoveSourcePath removes a directory from the source search paths.
func (d *Dispatcher) RemoveSourcePath(ctx context.Context, dir string) {
	d.clearSession()
	d.proj.RemoveSourcePath(dir)
}

// LoadPackage adds a package's predeclared values to the environment.
func (d *Dispatcher) LoadPackage(ctx context.Context, name string) {
	d.clearSession()
	d.proj.LoadPackage(name)
}

// Refresh forces every buffer on this project to recompute derived state on
// its next read.
func (d *Dispatcher) Refresh(ctx context.Context) {
	timer := telemetry.FromContext(ctx).Start("refresh")
	defer timer.End()

	d.clearSession()
	d.proj.Refresh()
	d.log.Debugf("session %s: project %q refreshed", d.id, d.proj.Key())
}
