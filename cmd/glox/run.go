package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/glox"
)

func (a *app) readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Debug().Err(err).Str("path", path).Msg("read failed")
		return "", fail(exitIOErr, "Could not open file \"%s\".", path)
	}
	a.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("source loaded")
	return string(data), nil
}

// interpret compiles and runs one source unit, logging each stage.
func (a *app) interpret(source string) glox.Result {
	opts := a.gloxOptions()
	chunk, err := glox.Compile(source, opts...)
	if err != nil {
		a.logger.Debug().Str("result", glox.ResultCompileError.String()).Msg("execution finished")
		return glox.ResultCompileError
	}
	a.logger.Debug().
		Int("instructions", chunk.InstructionCount()).
		Int("constants", chunk.ConstantCount()).
		Msg("chunk compiled")

	result := glox.ResultOK
	if _, err := glox.Run(chunk, opts...); err != nil {
		result = glox.ResultRuntimeError
	}
	a.logger.Debug().Str("result", result.String()).Msg("execution finished")
	return result
}

func resultError(result glox.Result) error {
	switch result {
	case glox.ResultCompileError:
		return &exitError{code: exitDataErr}
	case glox.ResultRuntimeError:
		return &exitError{code: exitSoftware}
	default:
		return nil
	}
}

func (a *app) runFile(path string) error {
	source, err := a.readSource(path)
	if err != nil {
		return err
	}
	return resultError(a.interpret(source))
}

// repl reads one line at a time and interprets each independently. Errors
// are reported but never end the session. Lines have no length limit.
func (a *app) repl() error {
	prompt := a.v.GetString("prompt")
	reader := bufio.NewReader(a.stdin)
	for {
		fmt.Fprint(a.stdout, prompt)
		line, err := reader.ReadString('\n')
		if line != "" {
			a.interpret(strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			if line != "" {
				fmt.Fprint(a.stdout, prompt)
			}
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return fail(exitIOErr, "read input: %v", err)
		}
	}
}
