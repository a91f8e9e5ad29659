package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

func routesCmd() *cobra.Command {
	var (
		manifestFlag string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long: `Print the compiled route table, most specific route first.

The table shows each route's full pattern path, the name it renders,
and its specificity score. Index routes are marked.

Examples:
  wayfind routes
  wayfind routes --manifest=routes.toml
  wayfind routes --output=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(manifestFlag, output)
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Route manifest path (default from wayfind.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}

func runRoutes(manifestFlag, output string) error {
	root, _, path, err := loadTree(manifestFlag)
	if err != nil {
		return err
	}

	routes := router.Routes(root)
	router.SortBySpecificity(routes)

	switch output {
	case "json":
		data, err := json.MarshalIndent(map[string][]router.RouteInfo{"routes": routes}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	case "table":
		info("%d routes in %s", len(routes), path)
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  PATH\tNAME\tSPECIFICITY")
		for _, r := range routes {
			name := r.Payload
			if r.Index {
				name += " (index)"
			}
			fmt.Fprintf(w, "  %s\t%s\t%d\n", r.Path, name, r.Specificity)
		}
		return w.Flush()

	default:
		return errors.New("E122").WithDetail("output format is " + output)
	}
}
