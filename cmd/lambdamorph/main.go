// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Command lambdamorph is the CLI front end for the verification engine.
package main

import (
	"context"
	"os"

	"github.com/lambdamorph/lambdamorph/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	logging.SetDefault("lambdamorph", version, "text")

	cmd := NewRootCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	code := exitCode(err)
	if err != nil && err.Error() != "" {
		// The plain "no match" outcome carries an empty message (its
		// proof was already printed to stdout); anything with text is
		// a genuine failure worth surfacing on stderr.
		cmd.PrintErrln(err)
	}
	os.Exit(code)
}
