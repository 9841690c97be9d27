package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/glox/compiler"
	"github.com/deepnoodle-ai/glox/dis"
)

func (a *app) newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [path]",
		Short: "Disassemble the bytecode compiled from an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.disHandler,
	}
	cmd.Flags().StringP("code", "c", "", "code to disassemble")
	cmd.Flags().String("name", "", "name printed in the header")
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}

func (a *app) disHandler(cmd *cobra.Command, args []string) error {
	source, name, err := a.getDisCode(cmd, args)
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetString("name"); n != "" {
		name = n
	}

	chunk, err := compiler.Compile(source, compiler.WithErrorWriter(a.diagnostics()))
	if err != nil {
		return &exitError{code: exitDataErr}
	}
	instructions, err := dis.Disassemble(chunk)
	if err != nil {
		return fail(exitSoftware, "%v", err)
	}

	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "text":
		dis.Print(instructions, name, a.stdout, dis.WithColor(a.colorEnabled(a.stdout)))
		return nil
	case "json":
		output, err := a.formatJSON(instructions)
		if err != nil {
			return fail(exitSoftware, "%v", err)
		}
		fmt.Fprintln(a.stdout, string(output))
		return nil
	default:
		return fail(exitUsage, "unknown output format: %s", format)
	}
}

// getDisCode returns the source from --code, a path, or stdin, along with a
// default name for the header.
func (a *app) getDisCode(cmd *cobra.Command, args []string) (string, string, error) {
	codeSet := cmd.Flags().Changed("code")
	if codeSet && len(args) > 0 {
		return "", "", fail(exitUsage, "multiple input sources specified")
	}
	if codeSet {
		code, _ := cmd.Flags().GetString("code")
		return code, "code", nil
	}
	if len(args) > 0 {
		source, err := a.readSource(args[0])
		return source, args[0], err
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", "", fail(exitIOErr, "read input: %v", err)
	}
	return string(data), "stdin", nil
}

func (a *app) formatJSON(v any) ([]byte, error) {
	if a.colorEnabled(a.stdout) {
		return prettyjson.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
