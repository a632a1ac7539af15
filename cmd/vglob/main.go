package main

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vglob"
	"github.com/vango-dev/vglob/internal/config"
	"github.com/vango-dev/vglob/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errNoMatch makes match exit with status 1 without printing an error.
var errNoMatch = stderrors.New("no paths matched")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := &cli{stderr: stderr}
	rootCmd := cli.rootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if !stderrors.Is(err, errNoMatch) {
			errors.FprintError(stderr, err)
		}
		return 1
	}
	return 0
}

// cli holds state shared by every command.
type cli struct {
	stderr     io.Writer
	verbose    bool
	configPath string
	flags      optionFlags
	logger     *slog.Logger
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vglob",
		Short: "Compile and evaluate glob patterns",
		Long: `vglob compiles shell-style glob patterns into anchored regular
expressions and matches paths against them.

Supported syntax:

  * ? [...] [[:alpha:]]     wildcards and character classes
  **                        any number of path segments
  {a,b} {1..10} {a..z..2}   braces and ranges
  @() !() ?() *() +()       extglob pattern lists
  !pattern                  negation of the whole pattern`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(c.logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to vglob.json (default: nearest vglob.json above the working directory)")
	c.flags.register(cmd)

	cmd.AddCommand(
		c.compileCmd(),
		c.splitCmd(),
		c.matchCmd(),
		c.serveCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads the configuration and applies the option flags set on
// the command line.
func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if cfg.Path() != "" {
		c.logger.Debug("config loaded", "path", cfg.Path())
	}

	cfg.Options = c.flags.apply(cmd, cfg.Options)
	return cfg, nil
}

// compiler builds a single-use compiler from cfg.
func (c *cli) compiler(cfg *config.Config) *vglob.Compiler {
	return vglob.NewCompiler(
		vglob.WithOptions(cfg.Options),
		vglob.WithCacheSize(0),
		vglob.WithMatchTimeout(time.Duration(cfg.MatchTimeout)),
		vglob.WithLogger(c.logger),
	)
}

// patternArg requires the pattern as the first argument.
func patternArg(usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || args[0] == "" {
			return errors.New("E301").WithExample(usage)
		}
		return nil
	}
}
