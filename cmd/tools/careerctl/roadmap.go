// cmd/tools/careerctl/roadmap.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoadmapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "roadmap <careerId>",
		Short: "Print the roadmap of one career",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			career, ok := c.Get(args[0])
			if !ok {
				return fmt.Errorf("career %q not found", args[0])
			}
			steps := c.Roadmap(career.ID)

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{
					"careerId":      career.ID,
					"title":         career.Title,
					"salary":        career.FormatSalary(),
					"timeToAchieve": career.TimeToAchieve,
					"steps":         steps,
				})
			}

			fmt.Fprintf(out, "%s | %s | %s\n\n", career.Title, career.FormatSalary(), career.TimeToAchieve)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STEP\tTITLE\tTYPE\tDURATION")
			for i, s := range steps {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Title, s.Type, s.Duration)
			}
			return tw.Flush()
		},
	}
}
