// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MyEdSpace Contributors

// Package main is the entry point for the LMS content access CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/myedspace/lms/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.Execute(); err != nil {
		errutil.LogError(slog.Default(), "command failed", err)
		os.Exit(1)
	}
}
