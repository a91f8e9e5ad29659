// Package manifest loads declarative route manifests.
//
// A manifest describes a nested route tree in a plain data file. JSON,
// YAML, TOML and HCL manifests are supported; the format is picked from
// the file extension.
//
// # Manifest Structure
//
// The YAML form:
//
//	routes:
//	  - index: true
//	    name: home
//	  - path: users
//	    name: users
//	    children:
//	      - path: :id
//	        name: user
//	  - path: files/*path
//	    name: file
//
// The HCL form uses the route path as the block label. Index routes use
// the label "/":
//
//	route "/" {
//	  index = true
//	  name  = "home"
//	}
//
//	route "users" {
//	  name = "users"
//
//	  route ":id" {
//	    name = "user"
//	  }
//	}
//
// # Usage
//
//	m, err := manifest.Load("routes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, err := router.BuildTree(m.Decls())
package manifest
