package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MiaAltieri/mongodb-operator/internal/app"
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
	flagSet := flag.NewFlagSet("mongodb-operator", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
mongodb-operator - A topology planner for role-partitioned MongoDB clusters.

Usage:
  mongodb-operator [options] [TOPOLOGY_PATH]

Arguments:
  TOPOLOGY_PATH
    Path to a topology descriptor file (.hcl, .yaml or .yml).

Options:
`)
		flagSet.PrintDefaults()
	}

	topologyFlag := flagSet.String("topology", "", "Path to the topology descriptor file.")
	tFlag := flagSet.String("t", "", "Path to the topology descriptor file (shorthand).")
	applyFlag := flagSet.Bool("apply", false, "Realize the plan locally and wait for convergence.")
	timeoutFlag := flagSet.Duration("timeout", 5*time.Minute, "Convergence deadline when applying.")
	pollFlag := flagSet.Duration("poll-interval", time.Second, "Convergence poll interval when applying.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 10, "Number of concurrent workers for the executor.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *topologyFlag != "" {
		path = *topologyFlag
	} else if *tFlag != "" {
		path = *tFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Topology path determined.", "path", path)

	if path == "" {
		slog.Debug("No topology path provided, printing usage and exiting.")
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

	if *timeoutFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid timeout: must be positive"}
	}
	if *pollFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid poll-interval: must be positive"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TopologyPath:    path,
		Apply:           *applyFlag,
		Timeout:         *timeoutFlag,
		PollInterval:    *pollFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
