package observability

import (
	"fmt"
	"os"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
)

// CLILogger is used for CLI commands (SIMPLE profile)
var CLILogger *logging.Logger

// InitCLILogger initializes the CLI logger with SIMPLE profile
func InitCLILogger(serviceName string, verbose bool) {
	logger, err := logging.NewCLI(serviceName)
	if err != nil {
		exitWithCodeStderr(foundry.ExitConfigInvalid, "Failed to initialize CLI logger", err)
	}

	// Set level to DEBUG if verbose
	if verbose {
		logger.SetLevel(logging.DEBUG)
	}

	CLILogger = logger
}

// Debug logs through CLILogger when it has been initialized.
func Debug(msg string, fields ...zap.Field) {
	if CLILogger == nil {
		return
	}
	CLILogger.Debug(msg, fields...)
}

// exitWithCodeStderr exits with a semantic exit code, writing to stderr.
// This is a local helper for logger initialization failures before CLI logger is available.
func exitWithCodeStderr(exitCode foundry.ExitCode, msg string, err error) {
	info, ok := foundry.GetExitCodeInfo(exitCode)
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v (exit code: %d)\n", msg, err, exitCode)
		os.Exit(int(exitCode))
	}

	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	fmt.Fprintf(os.Stderr, "Exit Code: %d (%s) - %s\n", info.Code, info.Name, info.Description)

	os.Exit(info.Code)
}
