package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrel-ml/kestrel/types"
)

// Config is the on-disk shape of a .kestrel configuration file.
type Config struct {
	SourcePaths []string `json:"source_paths,omitempty"`
	BuildPaths  []string `json:"build_paths,omitempty"`
	Extensions  []string `json:"extensions,omitempty"`
	Packages    []string `json:"packages,omitempty"`
}

// LoadConfig reads a configuration file. A missing or malformed file is a
// failure, not a fatal error: the zero Config is still returned so a buffer
// can operate degraded.
func LoadConfig(path string) (Config, []error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, []error{fmt.Errorf("read config: %w", err)}
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, []error{fmt.Errorf("parse config %s: %w", path, err)}
	}
	return cfg, nil
}

// Apply merges a config into the project. Unknown extensions and packages
// are collected as failures; everything valid is still applied.
func (p *Project) Apply(cfg Config) []error {
	var failures []error

	for _, dir := range cfg.SourcePaths {
		p.AddSourcePath(dir)
	}
	for _, dir := range cfg.BuildPaths {
		p.AddBuildPath(dir)
	}
	for _, ext := range cfg.Extensions {
		if err := p.EnableExtension(ext); err != nil {
			failures = append(failures, err)
		}
	}
	for _, pkg := range cfg.Packages {
		if !types.KnownPackage(pkg) {
			failures = append(failures, fmt.Errorf("unknown package %q", pkg))
			continue
		}
		p.LoadPackage(pkg)
	}

	return failures
}

// WriteConfig writes a configuration file, used by interactive setup.
func WriteConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
