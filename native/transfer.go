//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Transfer copies the body of an HTTP GET into a local file.
type Transfer struct {
	URL  string
	File string
	// Done is closed when Run returns.
	Done chan struct{}

	resp          *http.Response
	out           *os.File
	wd            *inactivityWatchdog
	skip          bool
	completed     int64
	completedLock sync.Mutex
	size          int64
	err           error
}

// StartTransfer probes reqURL with a HEAD request and opens the GET request
// and the output file; call Run to copy the data.
//
// A previous download is resumed if the local file is shorter than the remote
// file and the server accepts byte ranges. The transfer is skipped if the
// local file has the same size of the remote file. Otherwise the file is
// downloaded again from scratch.
func StartTransfer(ctx context.Context, file string, reqURL string, config Config) (*Transfer, error) {
	clientCanResume := !config.DoNotResumeDownload

	localSize := int64(-1)
	if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
		localSize = info.Size()
	}

	headReq, err := config.newRequest(ctx, http.MethodHead, reqURL)
	if err != nil {
		return nil, err
	}
	headResp, err := config.HttpClient.Do(headReq)
	if err != nil {
		return nil, fmt.Errorf("performing HEAD request: %w", err)
	}
	remoteSize := headResp.ContentLength // -1 if server doesn't send Content-Length
	serverCanResume := (headResp.Header.Get("Accept-Ranges") == "bytes") && (remoteSize != -1)
	var acceptError error
	if config.AcceptFunc != nil {
		acceptError = config.AcceptFunc(headResp)
	}
	_, _ = io.Copy(io.Discard, headResp.Body)
	_ = headResp.Body.Close()
	if acceptError != nil {
		return nil, acceptError
	}

	var completed int64
	if clientCanResume && localSize >= 0 {
		if localSize == remoteSize {
			return &Transfer{
				URL:       reqURL,
				File:      file,
				Done:      make(chan struct{}),
				skip:      true,
				completed: remoteSize,
				size:      remoteSize,
			}, nil
		}
		if localSize < remoteSize {
			completed = localSize
		}
	}

	wd := newInactivityWatchdog(ctx, config.InactivityTimeout)
	req, err := config.newRequest(wd.ctx, http.MethodGet, reqURL)
	if err != nil {
		wd.stop()
		return nil, err
	}
	resume := clientCanResume && serverCanResume && completed > 0
	if resume {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", completed))
	}
	resp, err := config.HttpClient.Do(req)
	if err != nil {
		wd.stop()
		return nil, fmt.Errorf("performing GET request: %w", err)
	}
	if err := config.checkStatus(reqURL, resp); err != nil {
		_ = resp.Body.Close()
		wd.stop()
		return nil, err
	}
	if resume && resp.StatusCode != http.StatusPartialContent {
		// Range ignored: the body is the whole file
		resume = false
	}
	if !resume {
		completed = 0
	}

	flags := os.O_WRONLY
	if resume {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(file, flags, 0644)
	if err != nil {
		_ = resp.Body.Close()
		wd.stop()
		return nil, fmt.Errorf("opening %s for writing: %w", file, err)
	}

	return &Transfer{
		URL:       reqURL,
		File:      file,
		Done:      make(chan struct{}),
		resp:      resp,
		out:       f,
		wd:        wd,
		completed: completed,
		size:      remoteSize,
	}, nil
}

// Run copies the response body into the file until the end of the stream,
// an error, or the inactivity timeout. It closes Done before returning.
func (t *Transfer) Run() error {
	defer close(t.Done)
	if t.skip {
		return nil
	}
	defer t.wd.stop()

	buff := make([]byte, 32*1024)
	for {
		n, err := t.resp.Body.Read(buff)
		if n > 0 {
			t.wd.kick()
			if _, werr := t.out.Write(buff[:n]); werr != nil {
				t.err = fmt.Errorf("writing %s: %w", t.File, werr)
				break
			}
			t.completedLock.Lock()
			t.completed += int64(n)
			t.completedLock.Unlock()
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if cause := t.wd.cause(); cause != nil {
				err = cause
			}
			t.err = fmt.Errorf("reading %s: %w", t.URL, err)
			break
		}
	}
	if err := t.Close(); err != nil && t.err == nil {
		t.err = err
	}
	return t.err
}

// RunAndPoll runs the transfer and calls poll every interval with the bytes
// completed so far, and once more at the end.
func (t *Transfer) RunAndPoll(poll func(current int64), interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	go t.Run()
	for {
		select {
		case <-ticker.C:
			poll(t.Completed())
		case <-t.Done:
			poll(t.Completed())
			return t.Error()
		}
	}
}

// Close releases the output file and the response body.
func (t *Transfer) Close() error {
	var errOut, errIn error
	if t.out != nil {
		errOut = t.out.Close()
	}
	if t.resp != nil {
		errIn = t.resp.Body.Close()
	}
	if errOut != nil {
		return fmt.Errorf("closing output file: %w", errOut)
	}
	if errIn != nil {
		return fmt.Errorf("closing input stream: %w", errIn)
	}
	return nil
}

// Skipped returns true if the local file was already complete.
func (t *Transfer) Skipped() bool {
	return t.skip
}

// Size returns the size of the remote file, -1 if the server didn't tell.
func (t *Transfer) Size() int64 {
	return t.size
}

// Error returns the error that stopped Run, if any.
func (t *Transfer) Error() error {
	return t.err
}

// Completed returns the bytes present in the file so far.
func (t *Transfer) Completed() int64 {
	t.completedLock.Lock()
	defer t.completedLock.Unlock()
	return t.completed
}
