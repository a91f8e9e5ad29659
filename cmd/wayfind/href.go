package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

func hrefCmd() *cobra.Command {
	var (
		manifestFlag string
		query        []string
	)

	cmd := &cobra.Command{
		Use:   "href <name> [param=value ...]",
		Short: "Build the path for a named route",
		Long: `Build the concrete path for a route name, the inverse of match.

Parameters are given as key=value pairs. Optional parameters may be
omitted; wildcard parameters may span segments.

Examples:
  wayfind href user id=42
  wayfind href docs rest=guide/intro
  wayfind href users-index --query page=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHref(args[0], args[1:], manifestFlag, query)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")

	return cmd
}

func runHref(name string, pairs []string, manifestFlag string, query []string) error {
	root, _, _, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return errors.Newf(errors.CategoryCLI, "invalid parameter %q", pair).
				WithSuggestion("Parameters are key=value pairs, e.g. id=42")
		}
		params[key] = value
	}

	values := url.Values{}
	for _, pair := range query {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return errors.Newf(errors.CategoryCLI, "invalid query parameter %q", pair).
				WithSuggestion("Query parameters are key=value pairs, e.g. page=2")
		}
		values.Add(key, value)
	}

	var href string
	if len(values) > 0 {
		href, err = router.HrefQuery(root, name, params, values)
	} else {
		href, err = router.Href(root, name, params)
	}
	if err != nil {
		return err
	}

	fmt.Println(href)
	return nil
}
