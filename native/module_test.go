//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/dldriver"
)

type fakeExtractor struct {
	urls []string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, url, outputDir string) (string, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	file := filepath.Join(outputDir, "Never Gonna Give You Up.mp4")
	return file, os.WriteFile(file, []byte("video"), 0644)
}

func newTestModule(t *testing.T) (*Module, *fakeExtractor) {
	extractor := &fakeExtractor{}
	m := New()
	m.OutputDir = filepath.Join(t.TempDir(), "output")
	m.Extractor = extractor
	m.ProgressInterval = time.Millisecond
	m.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return m, extractor
}

func TestDownloadDirectMedia(t *testing.T) {
	srv := newFileServer(t)
	m, extractor := newTestModule(t)

	file, err := m.DownloadFromURL(context.Background(), srv.URL+"/media/clip.mp4?sig=1")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(m.OutputDir, "clip.mp4"), file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, testContent, data)
	require.Empty(t, extractor.urls)

	// a second download finds the file complete
	file, err = m.DownloadFromURL(context.Background(), srv.URL+"/media/clip.mp4?sig=1")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(m.OutputDir, "clip.mp4"), file)
	require.Equal(t, []string{""}, srv.requestedRanges())
}

func TestDownloadDirectMediaNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	m, _ := newTestModule(t)

	_, err := m.DownloadFromURL(context.Background(), srv.URL+"/missing.mp4")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.DirExists(t, m.OutputDir)
}

func TestDownloadWithExtractor(t *testing.T) {
	m, extractor := newTestModule(t)
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	file, err := m.DownloadFromURL(context.Background(), url)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(m.OutputDir, "Never Gonna Give You Up.mp4"), file)
	require.FileExists(t, file)
	require.Equal(t, []string{url}, extractor.urls)

	extractor.err = errors.New("no video formats available")
	_, err = m.DownloadFromURL(context.Background(), url)
	require.ErrorIs(t, err, extractor.err)

	m.Extractor = nil
	_, err = m.DownloadFromURL(context.Background(), url)
	require.Error(t, err)
}

func TestDeleteFile(t *testing.T) {
	m, _ := newTestModule(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "video.mp4")
	require.NoError(t, os.WriteFile(file, []byte("video"), 0644))

	require.NoError(t, m.DeleteFile(file))
	require.NoFileExists(t, file)

	require.ErrorIs(t, m.DeleteFile(file), ErrFileNotFound)
	require.Error(t, m.DeleteFile(dir))
	require.DirExists(t, dir)
}

func TestLibrary(t *testing.T) {
	srv := newFileServer(t)
	m, _ := newTestModule(t)
	lib := m.Library(context.Background())

	download, err := lib.Resolve(DownloadSymbol)
	require.NoError(t, err)
	deleteFile, err := lib.Resolve(DeleteSymbol)
	require.NoError(t, err)

	_, err = lib.Resolve("download_video")
	require.ErrorIs(t, err, dldriver.ErrSymbol)
	require.ErrorIs(t, err, ErrNoSuchSymbol)

	require.Equal(t, dldriver.Success, download(srv.URL+"/a.mp4"))
	require.Equal(t, dldriver.Failure, download("asd://go.bug.st/a.mp4"))
	require.Equal(t, dldriver.Success, deleteFile(filepath.Join(m.OutputDir, "a.mp4")))
	require.Equal(t, dldriver.Failure, deleteFile(filepath.Join(m.OutputDir, "a.mp4")))

	require.NoError(t, lib.Close())
	require.Panics(t, func() { download(srv.URL + "/a.mp4") })
	_, err = lib.Resolve(DownloadSymbol)
	require.ErrorIs(t, err, dldriver.ErrClosed)
}

func TestDriverWithNativeModule(t *testing.T) {
	srv := newFileServer(t)
	m, _ := newTestModule(t)
	file := filepath.Join(m.OutputDir, "video.mp4")

	out := &bytes.Buffer{}
	d := dldriver.NewDriver(dldriver.Config{}, m.Loader(context.Background()), strings.NewReader(file+"\n"), out)
	require.NoError(t, d.Run([]string{srv.URL + "/video.mp4", "--delete"}))
	require.Equal(t,
		"Downloading from URL: "+srv.URL+"/video.mp4\n"+
			"Download successful!\n"+
			"Enter the path of the file to delete: "+
			"Deleting file: "+file+"\n"+
			"File deletion successful!\n", out.String())
	require.NoFileExists(t, file)

	out.Reset()
	d.Stdin = strings.NewReader("")
	require.NoError(t, d.Run([]string{"asd://go.bug.st/video.mp4", "--delete"}))
	require.Equal(t, "Downloading from URL: asd://go.bug.st/video.mp4\nDownload failed.\n", out.String())
}
