// Package errors provides structured, actionable error messages for wayfind.
//
// The errors package implements an error system that:
//   - Points at exact locations in user files (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix the issue
//
// # Error Categories
//
// Errors are organized into categories:
//   - pattern: route pattern compilation errors
//   - tree: route tree construction and validation errors
//   - manifest: route manifest loading and parsing errors
//   - config: wayfind.json errors
//   - server: dev server and websocket errors
//   - archive: history snapshot storage errors
//   - cli: command-line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E042") that maps to a short
// message, an optional detailed explanation and a fix suggestion.
//
// # Usage
//
//	err := errors.New("E042").
//	    WithLocation("routes.yaml", 7, 3).
//	    Wrap(parseErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E042: Manifest could not be parsed
//	//
//	//   routes.yaml:7:3
//	//
//	//      5 │   - path: users
//	//      6 │     children:
//	//    → 7 │       - path: [42]
//	//        │   ^
//	//      8 │         name: user
//	//      9 │   - path: about
package errors
