package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MiaAltieri/mongodb-operator/internal/app"
	"github.com/MiaAltieri/mongodb-operator/internal/cli"
	"github.com/MiaAltieri/mongodb-operator/internal/config"
	"github.com/MiaAltieri/mongodb-operator/internal/hcl"
	"github.com/MiaAltieri/mongodb-operator/internal/yaml"
)

// main is the entrypoint for the mongodb-operator planner.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	planner := app.NewApp(outW, appConfig, loaderForPath(appConfig.TopologyPath))
	return planner.Run(context.Background())
}

// loaderForPath picks the descriptor loader from the file extension. Anything
// that is not YAML is treated as HCL.
func loaderForPath(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.NewLoader()
	default:
		return hcl.NewLoader()
	}
}
