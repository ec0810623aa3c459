//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package native is a Go implementation of the downloader module.
//
// Direct links to media files are fetched with a resumable HTTP transfer
// (see StartTransfer); any other URL is handed to an Extractor, by default
// the yt-dlp program. A Module can be plugged into a dldriver.Driver through
// Module.Loader in place of the shared library.
package native
