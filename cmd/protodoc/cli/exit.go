// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message: the command is expected to have already written its
// own diagnostics (for example the cumulative-tree dump on a fatal
// generation error). main checks for the ExitCode method to
// distinguish a handled non-zero exit from an unexpected error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the process exit code to use.
func (e *ExitError) ExitCode() int {
	return e.Code
}
