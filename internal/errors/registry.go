package errors

// ErrorTemplate defines the static parts of a registered error.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
//
// Code bands by category:
//
//	E001-E019  pattern
//	E020-E039  tree
//	E040-E059  manifest
//	E060-E079  config
//	E080-E099  server
//	E100-E119  archive
//	E120-E139  cli
var registry = map[string]ErrorTemplate{
	// Pattern errors (E001-E019)

	"E001": {
		Category:   CategoryPattern,
		Message:    "Invalid route pattern",
		Detail:     "The pattern could not be compiled into segments.",
		Suggestion: "Patterns are slash-separated: literals, :name, :name? and a trailing * or *name.",
	},
	"E002": {
		Category:   CategoryPattern,
		Message:    "Wildcard must be the final segment",
		Detail:     "A * or *name segment consumes the rest of the path, so nothing may follow it.",
		Suggestion: "Move the wildcard to the end of the pattern.",
	},
	"E003": {
		Category:   CategoryPattern,
		Message:    "Parameter segment has no name",
		Suggestion: "Name the parameter after the colon, e.g. :id or :slug?.",
	},
	"E004": {
		Category:   CategoryPattern,
		Message:    "Duplicate parameter name in pattern",
		Detail:     "Each capture name may appear only once within a single pattern.",
		Suggestion: "Rename one of the parameters.",
	},

	// Tree errors (E020-E039)

	"E020": {
		Category: CategoryTree,
		Message:  "Invalid route tree",
	},
	"E021": {
		Category:   CategoryTree,
		Message:    "Multiple index routes among the same siblings",
		Detail:     "At most one child per level may carry the index flag.",
		Suggestion: "Keep a single index entry per children list.",
	},
	"E022": {
		Category:   CategoryTree,
		Message:    "Index route declares a path",
		Detail:     "An index entry completes its parent's path and must not add segments of its own.",
		Suggestion: "Drop the path or drop the index flag.",
	},
	"E023": {
		Category:   CategoryTree,
		Message:    "Route is missing a path",
		Suggestion: "Non-index entries must declare a path pattern.",
	},
	"E024": {
		Category: CategoryTree,
		Message:  "Route table failed validation",
		Detail:   "One or more issues were reported while checking the built tree.",
	},

	// Manifest errors (E040-E059)

	"E040": {
		Category:   CategoryManifest,
		Message:    "Manifest file not found",
		Suggestion: "Check the path, or pass --manifest to point at the route manifest.",
	},
	"E041": {
		Category:   CategoryManifest,
		Message:    "Unsupported manifest format",
		Suggestion: "Use a .json, .yaml, .yml, .toml or .hcl manifest.",
	},
	"E042": {
		Category: CategoryManifest,
		Message:  "Manifest could not be parsed",
	},
	"E043": {
		Category:   CategoryManifest,
		Message:    "Manifest declares no routes",
		Suggestion: "Add at least one route entry to the manifest.",
	},

	// Config errors (E060-E079)

	"E060": {
		Category: CategoryConfig,
		Message:  "Invalid wayfind.json",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Missing required configuration value",
	},
	"E062": {
		Category:   CategoryConfig,
		Message:    "Invalid server port",
		Suggestion: "Use a port between 1 and 65535.",
	},
	"E063": {
		Category:   CategoryConfig,
		Message:    "Unknown archive backend",
		Suggestion: "Set archive.backend to \"disk\" or \"s3\".",
	},

	// Server errors (E080-E099)

	"E080": {
		Category: CategoryServer,
		Message:  "Server failed to start",
	},
	"E081": {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
	},
	"E082": {
		Category: CategoryServer,
		Message:  "Invalid client command",
		Detail:   "The websocket peer sent a command the server does not recognize.",
	},

	// Archive errors (E100-E119)

	"E100": {
		Category: CategoryArchive,
		Message:  "Snapshot not found",
	},
	"E101": {
		Category: CategoryArchive,
		Message:  "Archive backend unavailable",
	},

	// CLI errors (E120-E139)

	"E120": {
		Category:   CategoryCLI,
		Message:    "Not a wayfind project",
		Detail:     "No wayfind.json was found in this directory or any parent.",
		Suggestion: "Run the command from a project directory, or pass --config.",
	},
	"E121": {
		Category:   CategoryCLI,
		Message:    "No manifest configured",
		Suggestion: "Pass --manifest or set the manifest path in wayfind.json.",
	},
	"E122": {
		Category:   CategoryCLI,
		Message:    "Unknown output format",
		Suggestion: "Use table or json.",
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

// Register adds a custom error template. Intended for tests.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
