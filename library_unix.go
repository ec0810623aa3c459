//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build darwin || freebsd || linux

package dldriver

import "github.com/ebitengine/purego"

type libHandle = uintptr

func openLibrary(name string) (libHandle, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func lookupSymbol(h libHandle, name string) (uintptr, error) {
	return purego.Dlsym(h, name)
}

func closeLibrary(h libHandle) error {
	return purego.Dlclose(h)
}

func bindEntryPoint(addr uintptr) func(string) int32 {
	var fn func(string) int32
	purego.RegisterFunc(&fn, addr)
	return fn
}
