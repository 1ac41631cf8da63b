// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import "errors"

// exitError carries a specific process exit code alongside an optional
// underlying error, so main can report the engine's documented exit
// code contract (0 matched, 1 no match, 2 parse error, 3 internal limit
// exceeded) without cobra's default error-printing getting in the way.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode extracts the intended process exit code from err, defaulting
// to 1 for any error that did not originate as an exitError.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
