//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

import (
	"fmt"
)

// EntryPoint is a resolved module function taking a single string.
type EntryPoint func(arg string) Result

// Library is a loaded module. Entry points returned by Resolve must not be
// called after Close.
type Library interface {
	Resolve(symbol string) (EntryPoint, error)
	Close() error
}

// Loader acquires a Library by name.
type Loader interface {
	Load(name string) (Library, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (Library, error)

// Load calls f(name)
func (f LoaderFunc) Load(name string) (Library, error) {
	return f(name)
}

// SharedLibraries loads modules with the operating system dynamic loader.
var SharedLibraries Loader = LoaderFunc(func(name string) (Library, error) {
	lib, err := OpenSharedLibrary(name)
	if err != nil {
		return nil, err
	}
	return lib, nil
})

// SharedLibrary is a module opened by the operating system dynamic loader.
type SharedLibrary struct {
	name   string
	handle libHandle
	closed bool
}

// OpenSharedLibrary loads the shared library name. Errors are *LoadError.
func OpenSharedLibrary(name string) (*SharedLibrary, error) {
	h, err := openLibrary(name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return &SharedLibrary{name: name, handle: h}, nil
}

// Name returns the name the library was opened with.
func (l *SharedLibrary) Name() string { return l.name }

// Resolve looks up symbol and binds it as an int(const char*) function.
// Errors are *SymbolError.
func (l *SharedLibrary) Resolve(symbol string) (EntryPoint, error) {
	if l.closed {
		return nil, &SymbolError{Symbol: symbol, Err: ErrClosed}
	}
	addr, err := lookupSymbol(l.handle, symbol)
	if err != nil {
		return nil, &SymbolError{Symbol: symbol, Err: err}
	}
	call := bindEntryPoint(addr)
	return func(arg string) Result {
		if l.closed {
			panic(fmt.Errorf("calling %s: %w", symbol, ErrClosed))
		}
		return ResultFromInt(call(arg))
	}, nil
}

// Close unloads the library. Calling Close more than once is a no-op.
func (l *SharedLibrary) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := closeLibrary(l.handle); err != nil {
		return fmt.Errorf("closing %s: %w", l.name, err)
	}
	return nil
}
