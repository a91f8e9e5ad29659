// Package router builds and resolves declarative route trees.
//
// The router provides:
//   - Route tree construction from nested declarations
//   - Recursive resolution with class precedence and backtracking
//   - Parameter capture with struct binding
//   - Structural validation (duplicates, shadowing, unreachable routes)
//   - Href construction back from payload names
//
// # Declarations
//
// Routes are declared as a nested tree of Decl values:
//
//	decls := []router.Decl{
//	    {Path: "/", Index: true, Payload: "home"},
//	    {Path: "/about", Payload: "about"},
//	    {Path: "/users", Children: []router.Decl{
//	        {Path: "/", Index: true, Payload: "users-index"},
//	        {Path: "/:id/:name?", Payload: "user"},
//	        {Path: "/new", Payload: "user-new"},
//	    }},
//	    {Path: "/college/*", Payload: "college"},
//	}
//
// # Patterns
//
// Each Path is a pattern whose segments may be literals, parameters,
// optional parameters, or a trailing wildcard:
//
//	/about          literal
//	/:id            required parameter
//	/:name?         optional parameter
//	/*              wildcard (captures the remaining path)
//	/*path          named wildcard
//
// # Resolution
//
// Resolve walks the tree against a concrete path and returns the chain
// of matched nodes root to leaf. Siblings are tried in a fixed
// precedence order (literal, parameter, optional, wildcard) and the
// resolver backtracks across subtrees until a complete match is found:
//
//	root, err := router.BuildTree(decls)
//	res := router.Resolve(root, "/users/42")
//	if res.Matched {
//	    // res.Params["id"] == "42"
//	    // res.Payloads() == []string{"user"}
//	}
//
// ResolveCanonical additionally canonicalizes the raw input and
// percent-decodes the captured parameters.
package router
