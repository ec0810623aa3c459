//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Extractor downloads media from pages of video platforms.
type Extractor interface {
	// Extract saves the media found at url inside outputDir and returns
	// the path of the saved file.
	Extract(ctx context.Context, url, outputDir string) (string, error)
}

// YtDlpFormat prefers anything but webm, falling back to the best available.
const YtDlpFormat = "bestvideo[ext!=webm]+bestaudio[ext!=webm]/best[ext!=webm]/best"

// YtDlp runs the yt-dlp program. The result is always converted to mp4.
type YtDlp struct {
	// Path of the executable, "yt-dlp" (searched in PATH) if empty.
	Path string
	// Insecure disables the TLS certificate checks.
	Insecure bool
	// Stderr receives the output of the program, os.Stderr if nil.
	Stderr io.Writer
}

// Extract implements Extractor.
func (y *YtDlp) Extract(ctx context.Context, url, outputDir string) (string, error) {
	bin := y.Path
	if bin == "" {
		bin = "yt-dlp"
	}
	exe, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("extractor %s not available: %w", bin, err)
	}

	args := []string{
		"--format", YtDlpFormat,
		"--output", filepath.Join(outputDir, "%(title)s.%(ext)s"),
		"--no-playlist",
		"--geo-bypass",
		"--recode-video", "mp4",
		"--no-simulate",
		"--print", "after_move:filepath",
	}
	if y.Insecure {
		args = append(args, "--no-check-certificates")
	}
	args = append(args, "--", url)

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = y.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w", bin, err)
	}

	file := lastLine(stdout.String())
	if file == "" {
		return "", fmt.Errorf("%s did not report any file for %s", bin, url)
	}
	if _, err := os.Stat(file); err != nil {
		return "", fmt.Errorf("file not found after download: %w", err)
	}
	return file, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
