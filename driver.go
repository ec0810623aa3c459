//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Driver runs the download-then-maybe-delete sequence against a module.
type Driver struct {
	// Config selects the module and the entry points. Empty fields are
	// taken from GetDefaultConfig.
	Config Config
	// Loader acquires the module, SharedLibraries if nil.
	Loader Loader
	// Stdin is read once for the path of the file to delete.
	Stdin io.Reader
	// Stdout receives usage and status messages.
	Stdout io.Writer
	// Logger receives diagnostics, slog.Default() if nil.
	Logger *slog.Logger
}

// NewDriver returns a Driver using the given loader and console streams.
func NewDriver(config Config, loader Loader, stdin io.Reader, stdout io.Writer) *Driver {
	return &Driver{
		Config: config,
		Loader: loader,
		Stdin:  stdin,
		Stdout: stdout,
	}
}

// Run executes the driver with the program arguments (without the program
// name): a URL optionally followed by the delete flag.
//
// Download and delete outcomes are only printed. An *ExitError is returned
// when the arguments are missing, the module cannot be loaded or an entry
// point cannot be resolved; the library, if loaded, is always released
// before Run returns.
func (d *Driver) Run(args []string) error {
	cfg := d.Config.withDefaults()
	out := d.stdout()
	log := d.logger()

	if len(args) < 1 {
		d.usage(cfg)
		return &ExitError{Code: 1}
	}
	url := args[0]
	deleteAfterDownload := hasFlag(args[1:], cfg.DeleteFlag)
	log.Debug("Arguments parsed", "url", url, "delete", deleteAfterDownload)

	lib, err := d.loader().Load(cfg.LibraryPath)
	if err != nil {
		return &ExitError{Code: 1, Message: "Failed to load library. Error code: " + ErrorCode(err), Err: err}
	}
	log.Debug("Library loaded", "library", cfg.LibraryPath)
	defer func() {
		if err := lib.Close(); err != nil {
			log.Warn("Failed to unload library", "library", cfg.LibraryPath, "error", err)
		}
		log.Debug("Library unloaded", "library", cfg.LibraryPath)
	}()

	download, err := lib.Resolve(cfg.DownloadSymbol)
	if err != nil {
		return &ExitError{Code: 1, Message: "Failed to get download function address. Error code: " + ErrorCode(err), Err: err}
	}

	var deleteFile EntryPoint
	if deleteAfterDownload {
		deleteFile, err = lib.Resolve(cfg.DeleteSymbol)
		if err != nil {
			return &ExitError{Code: 1, Message: "Failed to get delete function address. Error code: " + ErrorCode(err), Err: err}
		}
	}

	fmt.Fprintf(out, "Downloading from URL: %s\n", url)
	res := download(url)
	log.Debug("Download returned", "result", res)
	if !res.Ok() {
		fmt.Fprintln(out, "Download failed.")
		return nil
	}
	fmt.Fprintln(out, "Download successful!")

	if deleteFile != nil {
		d.promptAndDelete(deleteFile)
	}
	return nil
}

func (d *Driver) promptAndDelete(deleteFile EntryPoint) {
	out := d.stdout()

	fmt.Fprint(out, "Enter the path of the file to delete: ")
	path := d.readLine()
	if strings.TrimSpace(path) == "" {
		fmt.Fprintln(out, "No file path provided, skipping deletion.")
		return
	}

	fmt.Fprintf(out, "Deleting file: %s\n", path)
	res := deleteFile(path)
	d.logger().Debug("Delete returned", "path", path, "result", res)
	if res.Ok() {
		fmt.Fprintln(out, "File deletion successful!")
	} else {
		fmt.Fprintln(out, "File deletion failed.")
	}
}

// readLine returns one line of Stdin without its terminator. A read error
// yields whatever was read before it.
func (d *Driver) readLine() string {
	in := d.Stdin
	if in == nil {
		in = os.Stdin
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		d.logger().Warn("Failed to read from standard input", "error", err)
	}
	return strings.TrimRight(line, "\r\n")
}

func (d *Driver) usage(cfg Config) {
	out := d.stdout()
	fmt.Fprintf(out, "Usage: %s <url> [%s]\n", cfg.Program, cfg.DeleteFlag)
	fmt.Fprintf(out, "Example: %s https://www.youtube.com/watch?v=dQw4w9WgXcQ\n", cfg.Program)
	fmt.Fprintf(out, "Add %s to test the file deletion functionality\n", cfg.DeleteFlag)
}

func (d *Driver) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Driver) loader() Loader {
	if d.Loader == nil {
		return SharedLibraries
	}
	return d.Loader
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// hasFlag reports whether flag appears in args.
func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
