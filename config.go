//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

import (
	"runtime"
	"sync"
)

// Config contains the configuration for the Driver
type Config struct {
	// Program is the name shown in the usage text.
	Program string
	// LibraryPath is the module handed to the Loader.
	LibraryPath string
	// DownloadSymbol is the exported name of the download entry point.
	DownloadSymbol string
	// DeleteSymbol is the exported name of the delete entry point.
	DeleteSymbol string
	// DeleteFlag is the argument that enables deletion mode.
	DeleteFlag string
}

// DefaultLibraryName returns the platform file name of the downloader module.
func DefaultLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "downloader_dll.pyd"
	case "darwin":
		return "libdownloader_dll.dylib"
	default:
		return "libdownloader_dll.so"
	}
}

var defaultConfig Config = Config{
	Program:        "example_usage",
	LibraryPath:    DefaultLibraryName(),
	DownloadSymbol: "download_from_url",
	DeleteSymbol:   "delete_file",
	DeleteFlag:     "--delete",
}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration returned by GetDefaultConfig.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	return defaultConfig
}

// withDefaults fills the empty fields of c from the default configuration.
func (c Config) withDefaults() Config {
	def := GetDefaultConfig()
	if c.Program == "" {
		c.Program = def.Program
	}
	if c.LibraryPath == "" {
		c.LibraryPath = def.LibraryPath
	}
	if c.DownloadSymbol == "" {
		c.DownloadSymbol = def.DownloadSymbol
	}
	if c.DeleteSymbol == "" {
		c.DeleteSymbol = def.DeleteSymbol
	}
	if c.DeleteFlag == "" {
		c.DeleteFlag = def.DeleteFlag
	}
	return c
}
