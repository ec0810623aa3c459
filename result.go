//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package dldriver

// Result is the outcome of a call to a module entry point.
type Result bool

const (
	// Failure is reported by an entry point returning zero.
	Failure Result = false
	// Success is reported by an entry point returning a non-zero value.
	Success Result = true
)

// ResultFromInt converts the C int returned by an entry point.
func ResultFromInt(v int32) Result {
	return v != 0
}

// Ok returns true on Success
func (r Result) Ok() bool {
	return bool(r)
}

func (r Result) String() string {
	if r {
		return "success"
	}
	return "failure"
}
