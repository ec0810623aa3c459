//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Config contains the configuration of HTTP transfers
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// DoNotResumeDownload set to true to disallow resuming downloads.
	DoNotResumeDownload bool
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called
	// when the HTTP HEAD request is done, before starting the download.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(head *http.Response) error
	// DoNotErrorOnNon2xxStatusCode set to true to not return an error
	// if the server returns a non-2xx status code.
	DoNotErrorOnNon2xxStatusCode bool
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration used by New.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	return defaultConfig
}

func (c *Config) newRequest(ctx context.Context, method, reqURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("setting up %s request: %w", method, err)
	}
	for k, v := range c.ExtraHeaders {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *Config) checkStatus(reqURL string, resp *http.Response) error {
	if c.DoNotErrorOnNon2xxStatusCode {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}
	return nil
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}
