package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/probe"
	"github.com/luckyjian/my/internal/result"
)

// reportedError marks an error whose diagnostic has already been written by
// writeFailure, so execute does not print it a second time.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// writeResult renders v to the command's stdout in the selected format.
// command is the name as typed, used in the diagnostic should rendering fail.
func writeResult(cmd *cobra.Command, format result.Format, command string, v result.Value) error {
	if err := result.Render(cmd.OutOrStdout(), v, format); err != nil {
		return writeFailure(cmd, format, command, err)
	}
	return nil
}

// writeFailure emits the diagnostic for a failed command on stderr and
// returns the error so cobra propagates a non-zero exit.
func writeFailure(cmd *cobra.Command, format result.Format, command string, err error) error {
	result.RenderError(cmd.ErrOrStderr(), command, err, format)
	return reportedError{err: err}
}

// probeCmd builds a command whose whole job is: run one probe off the main
// control-flow path, wrap the answer, render it once.
func probeCmd[T result.Value](use, short string, format *result.Format, fn func() (T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()

			v, err := probe.Run(ctx, fn)
			if err != nil {
				return writeFailure(cmd, *format, use, err)
			}
			return writeResult(cmd, *format, use, v)
		},
	}
}
