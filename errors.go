//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

import (
	"errors"
	"fmt"
	"strconv"
	"syscall"
)

var (
	// ErrLoad is matched by every error returned by a Loader.
	ErrLoad = errors.New("cannot load library")
	// ErrSymbol is matched by every error returned by Library.Resolve.
	ErrSymbol = errors.New("cannot resolve symbol")
	// ErrClosed is raised when an entry point outlives its library.
	ErrClosed = errors.New("library already closed")
	// ErrUnsupportedPlatform is returned by SharedLibraries where dynamic
	// loading is not available.
	ErrUnsupportedPlatform = errors.New("dynamic loading is not supported on this platform")
)

// LoadError reports a failure to load the library Name.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLoad) true for any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// SymbolError reports a symbol missing from a loaded library.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("resolving %s: %s", e.Symbol, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSymbol) true for any SymbolError.
func (e *SymbolError) Is(target error) bool {
	return target == ErrSymbol
}

// ErrorCode renders the platform error carried by err: the numeric system
// error code when there is one (Windows), the dynamic loader message otherwise.
func ErrorCode(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return strconv.FormatUint(uint64(errno), 10)
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.Err != nil {
		return loadErr.Err.Error()
	}
	var symErr *SymbolError
	if errors.As(err, &symErr) && symErr.Err != nil {
		return symErr.Err.Error()
	}
	return err.Error()
}

// ExitError carries the exit status of a run that must terminate the process.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
