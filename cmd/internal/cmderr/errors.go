package cmderr

import (
	"errors"
	"fmt"
	"os"
)

// ExitErr specific error for ExitOnErr function that passes the exit code and error caused.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

// Unwrap returns the cause.
func (x ExitErr) Unwrap() error { return x.Cause }

// ExitCode returns the exit code carried by err or 1 if there is none.
// Returns 0 for nil err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e ExitErr
	if !errors.As(err, &e) || e.Code == 0 {
		return 1
	}
	return e.Code
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with passed exit code or by default 1.
// Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}
