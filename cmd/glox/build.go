package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/glox"
	"github.com/deepnoodle-ai/glox/bytecode"
)

const chunkFileExt = ".gloxc"

func (a *app) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build path",
		Short: "Compile a source file into an encoded chunk",
		Args:  cobra.ExactArgs(1),
		RunE:  a.buildHandler,
	}
	cmd.Flags().StringP("output", "o", "", "output file (default is the source path with a "+chunkFileExt+" extension)")
	return cmd
}

func (a *app) buildHandler(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := a.readSource(path)
	if err != nil {
		return err
	}
	chunk, err := glox.Compile(source, glox.WithStderr(a.diagnostics()))
	if err != nil {
		return &exitError{code: exitDataErr}
	}
	data, err := bytecode.Marshal(chunk)
	if err != nil {
		return fail(exitSoftware, "encode chunk: %v", err)
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + chunkFileExt
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fail(exitIOErr, "write chunk: %v", err)
	}
	a.logger.Debug().Str("path", out).Int("bytes", len(data)).Msg("chunk written")
	return nil
}

func (a *app) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec chunkfile",
		Short: "Run a chunk produced by build",
		Args:  cobra.ExactArgs(1),
		RunE:  a.execHandler,
	}
}

func (a *app) execHandler(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fail(exitIOErr, "Could not open file \"%s\".", args[0])
	}
	chunk, err := bytecode.Unmarshal(data)
	if err != nil {
		return fail(exitDataErr, "%s: %v", args[0], err)
	}
	a.logger.Debug().
		Int("instructions", chunk.InstructionCount()).
		Int("constants", chunk.ConstantCount()).
		Msg("chunk loaded")
	if _, err := glox.Run(chunk, a.gloxOptions()...); err != nil {
		return &exitError{code: exitSoftware}
	}
	return nil
}
