package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/vglob"
)

// optionFlags are the compile option flags shared by every command.
type optionFlags struct {
	dot        bool
	noBrace    bool
	noCase     bool
	noExtGlob  bool
	noGlobStar bool
	noNegate   bool
}

func (f *optionFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolVar(&f.dot, "dot", false, "Let wildcards match a leading '.'")
	flags.BoolVar(&f.noBrace, "no-brace", false, "Treat { and } literally")
	flags.BoolVar(&f.noCase, "no-case", false, "Match case-insensitively")
	flags.BoolVar(&f.noExtGlob, "no-extglob", false, "Treat @( !( ?( *( +( literally")
	flags.BoolVar(&f.noGlobStar, "no-globstar", false, "Make ** behave like *")
	flags.BoolVar(&f.noNegate, "no-negate", false, "Treat a leading ! literally")
}

// apply overrides base with the flags given on the command line.
func (f *optionFlags) apply(cmd *cobra.Command, base vglob.Options) vglob.Options {
	opts := base
	set := cmd.Flags().Changed
	if set("dot") {
		opts.Dot = f.dot
	}
	if set("no-brace") {
		opts.NoBrace = f.noBrace
	}
	if set("no-case") {
		opts.NoCase = f.noCase
	}
	if set("no-extglob") {
		opts.NoExtGlob = f.noExtGlob
	}
	if set("no-globstar") {
		opts.NoGlobStar = f.noGlobStar
	}
	if set("no-negate") {
		opts.NoNegate = f.noNegate
	}
	return opts
}
