//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build windows

package dldriver

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

type libHandle = *windows.DLL

// The DLLError returned by x/sys wraps the Errno used by ErrorCode.
func openLibrary(name string) (libHandle, error) {
	return windows.LoadDLL(name)
}

func lookupSymbol(h libHandle, name string) (uintptr, error) {
	proc, err := h.FindProc(name)
	if err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

func closeLibrary(h libHandle) error {
	return h.Release()
}

func bindEntryPoint(addr uintptr) func(string) int32 {
	var fn func(string) int32
	purego.RegisterFunc(&fn, addr)
	return fn
}
