package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// engineModule is the regular-expression engine compiled patterns run on.
const engineModule = "github.com/dlclark/regexp2"

// syntaxFeatures lists the glob constructs the compiler understands, in the
// order the option flags switch them off.
var syntaxFeatures = []string{"brace", "extglob", "globstar", "negation", "posix-class", "quote"}

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Built     string   `json:"built"`
	GoVersion string   `json:"goVersion"`
	Platform  string   `json:"platform"`
	Engine    string   `json:"engine"`
	Syntax    []string `json:"syntax"`
}

// readBuildInfo starts from the linker-set variables and fills what they
// leave at their defaults from the module build information.
func readBuildInfo() buildInfo {
	info := buildInfo{
		Version:   version,
		Commit:    commit,
		Built:     date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Engine:    engineModule,
		Syntax:    syntaxFeatures,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path == engineModule {
			info.Engine = dep.Path + " " + dep.Version
		}
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Built == "unknown":
			info.Built = s.Value
		}
	}
	return info
}

func versionCmd() *cobra.Command {
	var (
		short  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the vglob version, how the binary was built and which regular
expression engine and glob syntax it supports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := readBuildInfo()

			switch {
			case short:
				fmt.Fprintln(out, info.Version)
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			default:
				fmt.Fprintf(out, "vglob %s\n", info.Version)
				fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
				fmt.Fprintf(out, "  Built:      %s\n", info.Built)
				fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
				fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
				fmt.Fprintf(out, "  Engine:     %s\n", info.Engine)
				fmt.Fprintf(out, "  Syntax:     %s\n", strings.Join(info.Syntax, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON object")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}
