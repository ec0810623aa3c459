//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package dldriver loads a downloader module at runtime and drives its two
// entry points, download_from_url and delete_file, from the command line.
//
// A module is anything implementing Library: a shared library opened through
// SharedLibraries, or the Go implementation in the native subpackage.
package dldriver
