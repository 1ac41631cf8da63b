// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package errutil

import (
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// expectedCodes are oops codes the engine raises for ordinary,
// client-facing outcomes (a malformed expression, a rejected
// registration) rather than an internal failure. LogError logs these at
// Warn instead of Error so dashboards built on log level don't page an
// operator for a user's typo.
var expectedCodes = map[string]bool{
	"PARSE_FAILED":           true,
	"MORPHISM_NAME_REQUIRED": true,
	"MORPHISM_NAME_CONFLICT": true,
}

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, "error", err)
		return
	}

	attrs := []any{
		"error", oopsErr.Error(),
	}
	var codeStr string
	if code := oopsErr.Code(); code != nil {
		codeStr = fmt.Sprintf("%v", code)
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}

	if expectedCodes[codeStr] {
		logger.Warn(msg, attrs...)
		return
	}
	logger.Error(msg, attrs...)
}
