package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

func matchCmd() *cobra.Command {
	var (
		manifestFlag string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a path against the route table",
		Long: `Resolve a path the way the runtime resolver would.

The path is canonicalized first: dot segments are collapsed, duplicate
slashes removed, percent escapes normalized. The canonical path is then
matched against the tree and the match chain, captured parameters and
wildcard rest are printed.

Examples:
  wayfind match /users/42
  wayfind match "/docs/guide/intro?lang=en"
  wayfind match //users/../users/42 --output=json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(args[0], manifestFlag, output)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}

// matchResult is the JSON shape of a resolved path.
type matchResult struct {
	Input    string            `json:"input"`
	Path     string            `json:"path"`
	Query    string            `json:"query,omitempty"`
	Changed  bool              `json:"changed"`
	Matched  bool              `json:"matched"`
	Payloads []string          `json:"payloads,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Rest     string            `json:"rest,omitempty"`
}

func runMatch(path, manifestFlag, output string) error {
	root, _, _, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	m, res, err := router.ResolveCanonical(root, path)
	if err != nil {
		return err
	}

	result := matchResult{
		Input:    path,
		Path:     res.Path,
		Query:    res.Query,
		Changed:  res.Changed,
		Matched:  m.Matched,
		Payloads: m.Payloads(),
		Params:   m.Params,
		Rest:     m.Rest,
	}

	switch output {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	case "table":
		if result.Changed {
			info("canonicalized to %s", result.Path)
		}
		if !result.Matched {
			warn("no route matched %s", result.Path)
			return nil
		}

		success("matched %s", result.Path)
		info("chain: %s", strings.Join(result.Payloads, " -> "))
		if len(result.Params) > 0 {
			names := make([]string, 0, len(result.Params))
			for name := range result.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			pairs := make([]string, 0, len(names))
			for _, name := range names {
				pairs = append(pairs, name+"="+result.Params[name])
			}
			info("params: %s", strings.Join(pairs, " "))
		}
		if result.Rest != "" {
			info("rest: %s", result.Rest)
		}
		if result.Query != "" {
			info("query: %s", result.Query)
		}
		return nil

	default:
		return errors.New("E122").WithDetail("output format is " + output)
	}
}
