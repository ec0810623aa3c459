//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package native

import (
	"context"
	"os"
	"time"
)

// inactivityWatchdog cancels its context with os.ErrDeadlineExceeded when
// kick is not called for longer than timeout. A zero timeout never fires.
type inactivityWatchdog struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newInactivityWatchdog(parent context.Context, timeout time.Duration) *inactivityWatchdog {
	ctx, cancel := context.WithCancelCause(parent)
	wd := &inactivityWatchdog{ctx: ctx, cancel: cancel, timeout: timeout}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return wd
}

func (wd *inactivityWatchdog) kick() {
	if wd.timer != nil {
		wd.timer.Reset(wd.timeout)
	}
}

// cause returns why the context was cancelled, nil if it is still alive.
func (wd *inactivityWatchdog) cause() error {
	return context.Cause(wd.ctx)
}

func (wd *inactivityWatchdog) stop() {
	if wd.timer != nil {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}
