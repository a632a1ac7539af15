package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/vglob/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Compile and Internal Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryInternal,
		Message:  "Scanner advanced past the end of the pattern",
		Detail:   "The scanner cursor moved beyond the last rune of the pattern. This is a defect in vglob, not in the pattern.",
		DocURL:   docBase + "e001",
	},
	"E010": {
		Category: CategoryCompile,
		Message:  "Expression rejected by the regex engine",
		Detail:   "The scanner emitted an expression the regex engine cannot parse.",
		DocURL:   docBase + "e010",
	},
	"E011": {
		Category: CategoryCompile,
		Message:  "Match timed out",
		Detail:   "Evaluating the expression against the path exceeded the match timeout. Deeply nested pattern lists can backtrack heavily on long paths.",
		DocURL:   docBase + "e011",
	},

	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
		Detail:   "The configuration file exists but could not be read.",
		DocURL:   docBase + "e120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file is not valid JSON or has fields of the wrong type.",
		DocURL:   docBase + "e121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed range.",
		DocURL:   docBase + "e122",
	},

	// ============================================
	// Server Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryServer,
		Message:  "Invalid request body",
		Detail:   "The request body must be a JSON object.",
		DocURL:   docBase + "e201",
	},
	"E202": {
		Category: CategoryServer,
		Message:  "Pattern is required",
		Detail:   "The request did not name a glob pattern.",
		DocURL:   docBase + "e202",
	},
	"E203": {
		Category: CategoryServer,
		Message:  "Too many paths",
		Detail:   "A match request may carry a bounded number of paths.",
		DocURL:   docBase + "e203",
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryCLI,
		Message:  "Missing pattern argument",
		Detail:   "The command needs a glob pattern as its first argument.",
		DocURL:   docBase + "e301",
	},
	"E302": {
		Category: CategoryCLI,
		Message:  "Cannot read paths",
		Detail:   "Reading candidate paths from standard input failed.",
		DocURL:   docBase + "e302",
	},
	"E303": {
		Category: CategoryCLI,
		Message:  "Server stopped with an error",
		Detail:   "The HTTP server could not start or failed while running.",
		DocURL:   docBase + "e303",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
