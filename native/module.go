//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.bug.st/dldriver"
)

// Exported entry point names, the same as the shared library.
const (
	DownloadSymbol = "download_from_url"
	DeleteSymbol   = "delete_file"
)

var (
	// ErrFileNotFound is returned by DeleteFile for a missing path.
	ErrFileNotFound = errors.New("file not found")
	// ErrNoSuchSymbol is returned when resolving an unknown entry point.
	ErrNoSuchSymbol = errors.New("no such symbol")
)

// Module downloads into OutputDir and deletes files.
type Module struct {
	// Config is used for direct media transfers.
	Config Config
	// OutputDir receives the downloaded files, created if missing.
	OutputDir string
	// Extractor handles the URLs that are not direct media links.
	Extractor Extractor
	// ProgressInterval is how often transfer progress is logged.
	ProgressInterval time.Duration
	// Logger receives status messages, slog.Default() if nil.
	Logger *slog.Logger
}

// New returns a Module writing to the "output" directory with the default
// Config and yt-dlp as extractor.
func New() *Module {
	return &Module{
		Config:           GetDefaultConfig(),
		OutputDir:        "output",
		Extractor:        &YtDlp{},
		ProgressInterval: time.Second,
	}
}

func (m *Module) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// DownloadFromURL downloads the content at url and returns the path of the
// saved file.
func (m *Module) DownloadFromURL(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(m.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if IsDirectMediaURL(url) {
		return m.downloadDirect(ctx, url)
	}
	if m.Extractor == nil {
		return "", fmt.Errorf("no extractor available for %s", url)
	}
	m.logger().Info("Extracting media", "url", url)
	file, err := m.Extractor.Extract(ctx, url, m.OutputDir)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", url, err)
	}
	m.logger().Info("Successfully downloaded video", "path", file)
	return file, nil
}

func (m *Module) downloadDirect(ctx context.Context, url string) (string, error) {
	log := m.logger()
	file := filepath.Join(m.OutputDir, fileNameFromURL(url))

	log.Info("Downloading file directly", "url", url)
	t, err := StartTransfer(ctx, file, url, m.Config)
	if err != nil {
		return "", err
	}
	if t.Skipped() {
		log.Info("File already downloaded", "path", file)
		return file, nil
	}
	size := t.Size()
	if size > 0 {
		log.Info("Total file size", "MB", fmt.Sprintf("%.2f", float64(size)/(1024*1024)))
	} else {
		log.Info("Unknown file size, downloading")
	}

	interval := m.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	err = t.RunAndPoll(func(current int64) {
		if size > 0 {
			log.Debug("Downloaded", "MB", fmt.Sprintf("%.2f", float64(current)/(1024*1024)), "percent", fmt.Sprintf("%.2f", float64(current)*100/float64(size)))
		}
	}, interval)
	if err != nil {
		return "", err
	}
	log.Info("Successfully downloaded file", "path", file)
	return file, nil
}

// DeleteFile removes the regular file at path.
func (m *Module) DeleteFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return os.Remove(path)
}

// Library exposes the module entry points under the shared library
// symbol names. ctx bounds the downloads.
func (m *Module) Library(ctx context.Context) dldriver.Library {
	return &library{module: m, ctx: ctx}
}

// Loader returns a dldriver.Loader that always yields m.Library(ctx),
// whatever the library name.
func (m *Module) Loader(ctx context.Context) dldriver.Loader {
	return dldriver.LoaderFunc(func(name string) (dldriver.Library, error) {
		m.logger().Debug("Using native module", "library", name)
		return m.Library(ctx), nil
	})
}

type library struct {
	module *Module
	ctx    context.Context
	closed bool
}

func (l *library) Resolve(symbol string) (dldriver.EntryPoint, error) {
	if l.closed {
		return nil, &dldriver.SymbolError{Symbol: symbol, Err: dldriver.ErrClosed}
	}
	log := l.module.logger()
	switch symbol {
	case DownloadSymbol:
		return l.guard(symbol, func(url string) dldriver.Result {
			if _, err := l.module.DownloadFromURL(l.ctx, url); err != nil {
				log.Error("Download failed", "url", url, "error", err)
				return dldriver.Failure
			}
			return dldriver.Success
		}), nil
	case DeleteSymbol:
		return l.guard(symbol, func(path string) dldriver.Result {
			if err := l.module.DeleteFile(path); err != nil {
				log.Error("Delete failed", "path", path, "error", err)
				return dldriver.Failure
			}
			return dldriver.Success
		}), nil
	}
	return nil, &dldriver.SymbolError{Symbol: symbol, Err: ErrNoSuchSymbol}
}

func (l *library) guard(symbol string, fn dldriver.EntryPoint) dldriver.EntryPoint {
	return func(arg string) dldriver.Result {
		if l.closed {
			panic(fmt.Errorf("calling %s: %w", symbol, dldriver.ErrClosed))
		}
		return fn(arg)
	}
}

func (l *library) Close() error {
	l.closed = true
	return nil
}
