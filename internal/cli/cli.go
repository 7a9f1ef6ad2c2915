package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/mentionrank/internal/app"
	"github.com/vk/mentionrank/internal/rank"
	"github.com/vk/mentionrank/internal/report"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mentionrank", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
MentionRank - ranks users of a social network by the mentions they receive.

Usage:
  mentionrank [options] [INPUT_PATH]

Arguments:
  INPUT_PATH
    Newline-delimited tweet JSON. Use "-" to read standard input.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file or directory.")
	inputFlag := flagSet.String("input", "", "Path to the input file.")
	iFlag := flagSet.String("i", "", "Path to the input file (shorthand).")
	precisionFlag := flagSet.Float64("precision", rank.DefaultPrecision, "Stop once no score drops by more than this between rounds.")
	dampingFlag := flagSet.Float64("damping", rank.DefaultDamping, "Damping factor within [0, 1].")
	maxIterFlag := flagSet.Int("max-iterations", 0, "Maximum number of rounds. 0 is unbounded.")
	topFlag := flagSet.Int("top", report.DefaultTop, "Number of users to report.")
	formatFlag := flagSet.String("format", report.FormatText, "Report format. Options: 'text' or 'json'.")
	logFormatFlag := flagSet.String("log-format", app.LogFormatText, "Log output format. Options: 'text', 'json' or 'pretty'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the HTTP server (/health, /metrics, /ranking). 0 is disabled.")
	serveFlag := flagSet.Bool("serve", false, "Keep serving HTTP after ranking until interrupted.")
	publishURLFlag := flagSet.String("publish-url", "", "Socket.IO URL to publish the ranking to.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var overrides app.Overrides
	switch {
	case *inputFlag != "":
		overrides.InputPath = inputFlag
	case *iFlag != "":
		overrides.InputPath = iFlag
	case flagSet.NArg() > 0:
		path := flagSet.Arg(0)
		overrides.InputPath = &path
	}
	if set["precision"] {
		overrides.Precision = precisionFlag
	}
	if set["damping"] {
		overrides.Damping = dampingFlag
	}
	if set["max-iterations"] {
		overrides.MaxIterations = maxIterFlag
	}
	if set["top"] {
		overrides.Top = topFlag
	}
	if set["format"] {
		format := strings.ToLower(*formatFlag)
		overrides.Format = &format
	}
	if set["publish-url"] {
		overrides.PublishURL = publishURLFlag
	}

	if *configFlag == "" && overrides.InputPath == nil {
		slog.Debug("No input or config provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath: *configFlag,
		Overrides:  overrides,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		HTTPPort:   *httpPortFlag,
		Serve:      *serveFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
