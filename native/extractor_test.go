//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYtDlpNotInstalled(t *testing.T) {
	y := &YtDlp{Path: "yt-dlp-that-does-not-exist"}
	file, err := y.Extract(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", t.TempDir())
	require.ErrorIs(t, err, exec.ErrNotFound)
	require.Empty(t, file)
}

func TestLastLine(t *testing.T) {
	require.Equal(t, "output/b.mp4", lastLine("output/a.mp4\noutput/b.mp4\n"))
	require.Equal(t, "output/a.mp4", lastLine("  output/a.mp4\r\n"))
	require.Equal(t, "", lastLine(""))
}
