package scanner

import "strings"

// Options switch individual glob features. The zero value enables every
// feature and leaves dotfiles unmatched by wildcards.
type Options struct {
	// Dot lets wildcards match a leading '.' in a path segment.
	Dot bool `json:"dot,omitempty"`

	// NoBrace treats '{' and '}' literally.
	NoBrace bool `json:"noBrace,omitempty"`

	// NoCase compiles a case-insensitive expression.
	NoCase bool `json:"noCase,omitempty"`

	// NoExtGlob treats !( *( +( ?( @( as ordinary characters.
	NoExtGlob bool `json:"noExtGlob,omitempty"`

	// NoGlobStar makes ** behave like *.
	NoGlobStar bool `json:"noGlobStar,omitempty"`

	// NoNegate treats a leading '!' literally.
	NoNegate bool `json:"noNegate,omitempty"`
}

// String lists the set flags in a stable order, or "default".
func (o Options) String() string {
	var flags []string
	if o.Dot {
		flags = append(flags, "dot")
	}
	if o.NoBrace {
		flags = append(flags, "nobrace")
	}
	if o.NoCase {
		flags = append(flags, "nocase")
	}
	if o.NoExtGlob {
		flags = append(flags, "noextglob")
	}
	if o.NoGlobStar {
		flags = append(flags, "noglobstar")
	}
	if o.NoNegate {
		flags = append(flags, "nonegate")
	}
	if len(flags) == 0 {
		return "default"
	}
	return strings.Join(flags, ",")
}
