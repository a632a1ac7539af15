// Package errors provides structured, coded errors for vglob.
//
// Compiling a glob never fails on user input: malformed constructs are read
// literally. The errors here cover everything around the compiler: the
// scanner's internal invariant, the regex engine refusing an expression,
// configuration files, HTTP requests and CLI usage.
//
// # Error Categories
//
// Errors are organized into categories:
//   - internal: Scanner invariants (an implementation defect, never user input)
//   - compile: The regex engine rejected or timed out on an expression
//   - config: vglob.json could not be read or holds invalid values
//   - server: Malformed HTTP or WebSocket requests
//   - cli: Command-line usage errors
//
// # Error Codes
//
// Each error has a unique code that maps to a short message, a detailed
// explanation and a documentation anchor. Codes are grouped by range:
// E0xx compile and internal, E1xx config, E2xx server, E3xx cli.
//
// # Usage
//
//	err := errors.New("E010").
//	    WithPattern("src/**/*.go", 4).
//	    WithSuggestion("Report the pattern together with the emitted expression").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E010: Expression rejected by the regex engine
//	//
//	//   src/**/*.go
//	//      ^
//	//
//	//   The scanner emitted an expression the regex engine cannot parse.
//	//
//	//   Hint: Report the pattern together with the emitted expression
package errors
