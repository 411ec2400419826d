package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func usageErrorf(code int, format string, args ...interface{}) error {
	return &exitError{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

// exactArgs reports a wrong argument count as a usage error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf(2, "Usage: %s", usage)
		}
		return nil
	}
}
