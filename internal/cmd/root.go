package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/namelens/gh-whenreset/internal/config"
	"github.com/namelens/gh-whenreset/internal/observability"
	"github.com/namelens/gh-whenreset/internal/output"
	"github.com/namelens/gh-whenreset/internal/source"
)

// AppName is the binary name; gh runs it as `gh whenreset` when installed
// as an extension.
const AppName = "gh-whenreset"

// Version info set by main package
var versionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// Environment holds the process resources a command run touches.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether Stdin is interactive.
	IsTerminal func() bool
	Runner     source.CommandRunner
	Now        func() time.Time
}

// DefaultEnvironment binds the real process streams, terminal check, and clock.
func DefaultEnvironment() Environment {
	return Environment{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTerminal: source.FileIsTerminal(os.Stdin),
		Runner:     source.ExecRunner{},
		Now:        time.Now,
	}
}

func (e Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// NewRootCommand builds the command tree bound to env.
func NewRootCommand(env Environment) *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Show when the relevant GitHub API rate limit resets",
		Long: `Show when the relevant GitHub API rate limit resets.

Reads the output of "gh api rate_limit" from stdin, or runs gh itself when
stdin is a terminal, and prints the latest reset among exhausted buckets:

  <ISO-8601 timestamp>	<bucket>	<relative time>

Every flag can also be set with a GH_WHENRESET_<FLAG> environment variable.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			observability.InitCLILogger(AppName, v.GetBool("verbose"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runWhenReset(cmd.Context(), cfg, env)
		},
	}

	rootCmd.SetIn(env.Stdin)
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)

	registerFlags(rootCmd)
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func registerFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (sets log level to debug)")

	flags := rootCmd.Flags()
	flags.Bool("all", false, "consider every bucket, not only exhausted ones")
	flags.String("tz", "", "IANA timezone for the timestamp (default: local timezone)")
	flags.String("source", string(source.KindAuto), "payload source: auto|stdin|gh|api")
	flags.String("output-format", string(output.FormatTSV), "output format: tsv|json|yaml|table")
	flags.String("gh", source.DefaultGHBinary, "gh executable used when reading from gh")
	flags.String("api-url", "", "GitHub API base URL for --source api (default https://api.github.com/)")
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, env Environment) int {
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}

	rootCmd := NewRootCommand(env)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return ReportError(env.Stderr, err)
	}
	return 0
}
