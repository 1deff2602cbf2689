package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/cpmgrid/internal/app"
	"github.com/specialistvlad/cpmgrid/internal/optimizer"
	"github.com/specialistvlad/cpmgrid/internal/report"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cpmgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
cpmgrid - Critical Path Method scheduling and labor leveling for construction estimates.

Usage:
  cpmgrid [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the project file or directory.")
	pFlag := flagSet.String("p", "", "Path to the project file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	formatFlag := flagSet.String("format", "json", "Report format. Options: 'json' or 'yaml'.")
	iterationsFlag := flagSet.Int("max-iterations", optimizer.DefaultMaxIterations, "Maximum number of optimizer rounds.")
	strategyFlag := flagSet.String("strategy", "hierarchy", "Dependency inference. Options: 'hierarchy' or 'explicit'.")
	parallelFlag := flagSet.Bool("parallel", false, "Evaluate optimizer candidates concurrently.")
	laborFlag := flagSet.String("labor-groups", "", "Comma-separated resource groups counted as labor (default: labor,рабочие).")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	path := ""
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Project path determined.", "path", path)

	if path == "" {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *iterationsFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid max-iterations: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPath:      path,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		OutputFormat:     report.Format(*formatFlag),
		Strategy:         *strategyFlag,
		MaxIterations:    *iterationsFlag,
		MaxIterationsSet: explicit["max-iterations"],
		Parallel:         *parallelFlag,
		LaborGroups:      splitList(*laborFlag),
		LaborGroupsSet:   explicit["labor-groups"] && strings.TrimSpace(*laborFlag) != "",
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
