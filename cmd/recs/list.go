package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/recskit/aggregator"
	"github.com/kbukum/recskit/clumper"
	"github.com/kbukum/recskit/operation"
	"github.com/kbukum/recskit/sorts"
)

var listCmd = &cobra.Command{
	Use:       "list [operations|aggregators|clumpers|sorts]",
	Short:     "List the available operations and plugins",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"operations", "aggregators", "clumpers", "sorts"},
	Run: func(cmd *cobra.Command, args []string) {
		section := ""
		if len(args) == 1 {
			section = args[0]
		}
		writeCatalogs(cmd.OutOrStdout(), section)
	},
}

type catalog struct {
	name  string
	title string
	help  func() []string
}

var catalogs = []catalog{
	{"operations", "Operations", operation.Registry.Help},
	{"aggregators", "Aggregators", aggregator.Registry.Help},
	{"clumpers", "Clumpers", clumper.Registry.Help},
	{"sorts", "Sort keys", sorts.Registry.Help},
}

// writeCatalogs prints one catalog, or all of them for an empty section.
func writeCatalogs(w io.Writer, section string) {
	first := true
	for _, c := range catalogs {
		if section != "" && section != c.name {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s:\n", c.title)
		for _, l := range c.help() {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
}
