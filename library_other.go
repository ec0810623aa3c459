//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build !darwin && !freebsd && !linux && !windows

package dldriver

type libHandle struct{}

func openLibrary(name string) (libHandle, error) {
	return libHandle{}, ErrUnsupportedPlatform
}

func lookupSymbol(h libHandle, name string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func closeLibrary(h libHandle) error {
	return nil
}

func bindEntryPoint(addr uintptr) func(string) int32 {
	return func(string) int32 { return 0 }
}
