package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vglob/internal/errors"
)

func (c *cli) matchCmd() *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "match [flags] PATTERN [PATH...]",
		Short: "Print the paths a glob matches",
		Long: `Print the paths a glob matches, in input order.

Paths come from the arguments, or one per line from standard input when
none are given. The exit status is 1 when nothing matched.

Examples:
  vglob match '*.go' main.go README.md
  git ls-files | vglob match '**/*_test.go'`,
		Args: patternArg("vglob match '*.go' main.go"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := c.compiler(cfg).Compile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			paths := args[1:]
			if len(paths) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						paths = append(paths, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return errors.New("E302").Wrap(err)
				}
			}

			matches := p.Filter(paths)
			c.logger.Debug("match done", "pattern", args[0], "paths", len(paths), "matches", len(matches))

			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, len(matches))
			} else {
				for _, path := range matches {
					fmt.Fprintln(out, path)
				}
			}
			if len(matches) == 0 {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of matching paths")

	return cmd
}
