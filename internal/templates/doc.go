// Package templates provides starter files for new wayfind projects.
//
// Each template pairs a wayfind.json with a route manifest in one of
// the supported formats. The init command picks a template by format
// name and writes its files into the target directory.
//
// # Available Templates
//
//   - yaml: route manifest in YAML (default)
//   - json: route manifest in JSON
//   - toml: route manifest in TOML
//   - hcl: route manifest in HCL
//
// # Usage
//
//	tmpl, err := templates.Get("yaml")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{
//	    ProjectName: "myapp",
//	    Manifest:    tmpl.ManifestFile(),
//	    Port:        4000,
//	})
//
// File contents are text/template bodies executed against Config, so
// starters can reference the project name, manifest path and port.
package templates
