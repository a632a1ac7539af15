package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) compileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compile [flags] PATTERN",
		Short: "Print the regular expression a glob compiles to",
		Long: `Print the anchored regular expression a glob compiles to.

Malformed constructs are read literally, so every pattern compiles.

Examples:
  vglob compile '*.go'
  vglob compile --dot 'src/**/*.{ts,tsx}'
  vglob compile --json '!(*.md)'`,
		Args: patternArg("vglob compile 'src/**/*.go'"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := c.compiler(cfg).Compile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintln(out, p.Source())
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Glob       string `json:"glob"`
				Options    string `json:"options"`
				Source     string `json:"source"`
				IgnoreCase bool   `json:"ignoreCase"`
				Negated    bool   `json:"negated"`
			}{
				Glob:       p.Glob(),
				Options:    p.Options().String(),
				Source:     p.Source(),
				IgnoreCase: p.IgnoreCase(),
				Negated:    p.Negated(),
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON object instead of the bare expression")

	return cmd
}
