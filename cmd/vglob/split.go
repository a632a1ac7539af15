package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) splitCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "split [flags] PATTERN",
		Short: "Split a glob into its static directory and the remaining pattern",
		Long: `Split a glob into the longest leading directory that holds no glob
syntax and the pattern that applies below it.

Examples:
  vglob split 'src/lib/**/*.go'    # path: src/lib  pattern: **/*.go
  vglob split '!docs/*.md'         # path: docs     pattern: !*.md`,
		Args: patternArg("vglob split 'src/lib/**/*.go'"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			res := c.compiler(cfg).Split(args[0])

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(res)
			}
			fmt.Fprintf(out, "path:    %s\n", res.Path)
			fmt.Fprintf(out, "pattern: %s\n", res.Pattern)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON object")

	return cmd
}
