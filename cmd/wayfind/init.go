package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/config"
	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		name   string
		format string
		port   int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a wayfind project",
		Long: `Initialize a wayfind project in the given directory.

Writes a wayfind.json and a starter route manifest. The manifest
format is selectable; all formats compile into the same route tree.

Formats:
  yaml   Route manifest in YAML (default)
  json   Route manifest in JSON
  toml   Route manifest in TOML
  hcl    Route manifest in HCL

Examples:
  wayfind init
  wayfind init myapp
  wayfind init myapp --format=toml
  wayfind init --name=storefront --port=8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, name, format, port, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Manifest format (yaml, json, toml, hcl)")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Route server port")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(dir, name, format string, port int, force bool) error {
	printBanner()
	fmt.Println("  init")
	fmt.Println()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if config.Exists(absDir) && !force {
		return errors.Newf(errors.CategoryCLI, "wayfind.json already exists in %s", dir).
			WithSuggestion("Pass --force to overwrite the existing project files")
	}

	tmpl, err := templates.Get(strings.ToLower(format))
	if err != nil {
		return err
	}

	if name == "" {
		name = filepath.Base(absDir)
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return err
	}

	info("Writing project files...")
	err = tmpl.Create(absDir, templates.Config{
		ProjectName: name,
		Manifest:    tmpl.ManifestFile(),
		Port:        port,
	})
	if err != nil {
		return err
	}

	// Sanity check: the files we just wrote must load and compile.
	cfg, err := config.Load(absDir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println()
	success("Initialized %s", name)
	info("wayfind.json")
	info("%s", tmpl.ManifestFile())
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	if dir != "." {
		fmt.Printf("    cd %s\n", dir)
	}
	fmt.Println("    wayfind routes")
	fmt.Println("    wayfind serve")
	fmt.Println()

	return nil
}
