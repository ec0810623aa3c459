//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ConfigEnv names the environment variable pointing to an HCL config file.
const ConfigEnv = "DLDRIVER_CONFIG"

// Backends accepted in the config file.
const (
	BackendShared = "shared"
	BackendNative = "native"
)

// FileConfig is the content of an HCL config file. Every field is optional.
type FileConfig struct {
	Library  string        `hcl:"library,optional"`
	Backend  string        `hcl:"backend,optional"`
	LogLevel string        `hcl:"log_level,optional"`
	Symbols  *SymbolsBlock `hcl:"symbols,block"`
	Native   *NativeBlock  `hcl:"native,block"`
}

// SymbolsBlock overrides the exported entry point names.
type SymbolsBlock struct {
	Download string `hcl:"download,optional"`
	Delete   string `hcl:"delete,optional"`
}

// NativeBlock configures the native backend.
type NativeBlock struct {
	OutputDir         string            `hcl:"output_dir,optional"`
	InactivityTimeout string            `hcl:"inactivity_timeout,optional"`
	Extractor         string            `hcl:"extractor,optional"`
	NoResume          bool              `hcl:"no_resume,optional"`
	Insecure          bool              `hcl:"insecure,optional"`
	Headers           map[string]string `hcl:"headers,optional"`
}

// LoadConfigFile parses and validates the HCL file at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var fc FileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	switch fc.Backend {
	case "", BackendShared, BackendNative:
	default:
		return nil, fmt.Errorf("config file %s: invalid backend %q: must be %q or %q", path, fc.Backend, BackendShared, BackendNative)
	}
	if _, err := fc.Level(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := fc.InactivityTimeout(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &fc, nil
}

// Apply overrides the fields of c that are set in the file.
func (fc *FileConfig) Apply(c Config) Config {
	if fc.Library != "" {
		c.LibraryPath = fc.Library
	}
	if fc.Symbols != nil {
		if fc.Symbols.Download != "" {
			c.DownloadSymbol = fc.Symbols.Download
		}
		if fc.Symbols.Delete != "" {
			c.DeleteSymbol = fc.Symbols.Delete
		}
	}
	return c
}

// UseNative returns true if the native backend was selected.
func (fc *FileConfig) UseNative() bool {
	return fc.Backend == BackendNative
}

// Level returns the configured log level, slog.LevelWarn if unset.
func (fc *FileConfig) Level() (slog.Level, error) {
	if fc.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(fc.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn' or 'error'", fc.LogLevel)
	}
	return level, nil
}

// InactivityTimeout returns the native download inactivity timeout, 0 if unset.
func (fc *FileConfig) InactivityTimeout() (time.Duration, error) {
	if fc.Native == nil || fc.Native.InactivityTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(fc.Native.InactivityTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid inactivity_timeout %q: %w", fc.Native.InactivityTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid inactivity_timeout %q: must not be negative", fc.Native.InactivityTimeout)
	}
	return d, nil
}
