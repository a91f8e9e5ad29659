package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/pkg/router"
)

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <type>",
		Short: "Generate artifacts from the route table",
		Long: `Generate artifacts from the compiled route table.

Types:
  openapi   OpenAPI 3.0 path listing of every resolvable route

Examples:
  wayfind gen openapi
  wayfind gen openapi -o docs/routes.yaml`,
	}

	cmd.AddCommand(
		genOpenAPICmd(),
	)

	return cmd
}

func genOpenAPICmd() *cobra.Command {
	var (
		manifestFlag string
		output       string
		title        string
		description  string
		docVersion   string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate an OpenAPI 3.0 specification",
		Long: `Generate an OpenAPI 3.0 specification from the route table.

Every route that names something it renders becomes a path entry.
Parameters become path parameters; optional parameters produce one
path shape per spelling; a wildcard becomes a single parameter noted
as spanning segments.

The output format follows the file extension: .yaml or .yml produces
YAML, anything else JSON.

Examples:
  wayfind gen openapi                       # openapi.json
  wayfind gen openapi -o docs/routes.yaml   # YAML output
  wayfind gen openapi --title "Storefront"  # custom title`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenOpenAPI(manifestFlag, output, title, description, docVersion)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "openapi.json", "Output file path")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: project name)")
	cmd.Flags().StringVar(&description, "description", "", "Document description")
	cmd.Flags().StringVar(&docVersion, "version", "1.0.0", "Document version")

	return cmd
}

func runGenOpenAPI(manifestFlag, output, title, description, docVersion string) error {
	root, cfg, _, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	if title == "" {
		title = cfg.Name
	}
	if title == "" {
		title = "wayfind"
	}

	gen := router.NewOpenAPIGenerator(root, router.OpenAPIInfo{
		Title:       title,
		Description: description,
		Version:     docVersion,
	})

	var data []byte
	switch strings.ToLower(filepath.Ext(output)) {
	case ".yaml", ".yml":
		data, err = gen.YAML()
	default:
		data, err = gen.JSON()
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	success("Generated %s", output)
	return nil
}
