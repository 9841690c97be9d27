package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/glox"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check path...",
		Short: "Compile files without running them and report every failure",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.checkHandler,
	}
}

func (a *app) checkHandler(cmd *cobra.Command, args []string) error {
	var result *multierror.Error
	for _, path := range args {
		source, err := a.readSource(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, err := glox.Compile(source, glox.WithStderr(io.Discard)); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listErrors
	return &exitError{code: exitDataErr, err: result.ErrorOrNil()}
}

func listErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}
