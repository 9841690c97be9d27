package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/glox"
	"github.com/deepnoodle-ai/glox/vm"
)

// Exit codes follow the BSD sysexits convention.
const (
	exitOK        = 0
	exitUsage     = 64
	exitDataErr   = 65
	exitSoftware  = 70
	exitIOErr     = 74
	usageMessage  = "Usage: glox [path]"
	defaultPrompt = "> "
)

// exitError carries a process exit code out of a command. A nil err means
// the diagnostic was already written.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func fail(code int, format string, args ...any) *exitError {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	v      *viper.Viper
	logger zerolog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      viper.New(),
		logger: zerolog.Nop(),
	}
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			a.printError(exitErr.err.Error())
		}
		return exitErr.code
	}
	// Flag parsing and unknown commands
	a.printError(err.Error())
	return exitUsage
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glox [path]",
		Short:         "Compile and run glox expressions",
		Long: `Compile and run glox expressions.

With no arguments glox starts a REPL that interprets one line at a time.
With a path it interprets the file once. Subcommand names take precedence
over paths, so run a script named like a subcommand as ./check.`,
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fail(exitUsage, usageMessage)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.repl()
			}
			return a.runFile(args[0])
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.glox.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("trace", false, "log every executed instruction")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("prompt", defaultPrompt, "REPL prompt")
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.newDisCmd(),
		a.newBuildCmd(),
		a.newExecCmd(),
		a.newCheckCmd(),
	)
	return root
}

// initConfig reads the optional config file and environment, then sets up
// logging and colors from the merged configuration.
func (a *app) initConfig() error {
	v := a.v
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".glox")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("glox")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configErr := v.ReadInConfig()
	if configErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if v.GetString("config") != "" && !errors.As(configErr, &notFound) {
			return fail(exitIOErr, "config: %v", configErr)
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
	if err != nil {
		return fail(exitUsage, "invalid log level %q", v.GetString("log-level"))
	}
	if a.noColor() {
		color.NoColor = true
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     a.stderr,
		NoColor: !a.colorEnabled(a.stderr),
	}).Level(level).With().Timestamp().Logger()

	if configErr == nil {
		a.logger.Debug().Str("path", filepath.Clean(v.ConfigFileUsed())).Msg("config loaded")
	}
	return nil
}

func (a *app) noColor() bool {
	return a.v.GetBool("no-color") || os.Getenv("NO_COLOR") != ""
}

// colorEnabled reports whether w is a terminal and colors are not disabled.
func (a *app) colorEnabled(w io.Writer) bool {
	if a.noColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// diagnostics returns the writer for compile and runtime errors.
func (a *app) diagnostics() io.Writer {
	if a.colorEnabled(a.stderr) {
		return &colorWriter{w: a.stderr, c: color.New(color.FgRed)}
	}
	return a.stderr
}

func (a *app) printError(msg string) {
	fmt.Fprintln(a.diagnostics(), msg)
}

// gloxOptions returns the options shared by every command that compiles or
// runs code.
func (a *app) gloxOptions() []glox.Option {
	opts := []glox.Option{
		glox.WithStdout(a.stdout),
		glox.WithStderr(a.diagnostics()),
	}
	if a.v.GetBool("trace") {
		opts = append(opts, glox.WithObserver(vm.NewTraceObserver(a.logger.Level(zerolog.DebugLevel))))
	}
	return opts
}

type colorWriter struct {
	w io.Writer
	c *color.Color
}

func (cw *colorWriter) Write(p []byte) (int, error) {
	cw.c.EnableColor()
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
