package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

func checkCmd() *cobra.Command {
	var (
		manifestFlag string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the route manifest",
		Long: `Validate the route manifest and the compiled tree.

Parse and compile errors always fail the check. Advisory issues, such
as duplicate sibling patterns, unreachable routes and reused route
names, are printed as warnings; with --strict (or "strict": true in
wayfind.json) they fail the check too.

Examples:
  wayfind check
  wayfind check --manifest=routes.hcl
  wayfind check --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(manifestFlag, strict)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat advisory issues as errors")

	return cmd
}

func runCheck(manifestFlag string, strict bool) error {
	root, cfg, path, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	if cfg.Strict {
		strict = true
	}

	issues := router.Validate(root)
	for _, issue := range issues {
		fmt.Print(router.FormatIssue(issue))
	}

	routes := router.Routes(root)

	if len(issues) > 0 {
		if strict {
			return errors.New("E024").Wrap(&router.MultiIssueError{Issues: issues})
		}
		fmt.Println()
		warn("%s: %d routes, %d issues", path, len(routes), len(issues))
		return nil
	}

	success("%s: %d routes, no issues", path, len(routes))
	return nil
}
