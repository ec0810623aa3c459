//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"net/url"
	"path"
	"strings"
)

var mediaExtensions = []string{
	// video
	".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm", ".m4v", ".mpg", ".mpeg",
	// audio
	".mp3", ".wav", ".ogg", ".m4a", ".aac", ".flac",
}

// fallbackFileName is used when the URL path has no file name.
const fallbackFileName = "downloaded_file.mp4"

// IsDirectMediaURL returns true if the path of rawURL ends with a known
// audio or video file extension. Query and fragment are ignored.
func IsDirectMediaURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// fileNameFromURL returns the last element of the URL path.
func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackFileName
	}
	name := path.Base(u.Path)
	switch name {
	case ".", "/", "..":
		return fallbackFileName
	}
	return name
}
