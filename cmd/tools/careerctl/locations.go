// cmd/tools/careerctl/locations.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"career-workers/internal/catalog"
)

func newLocationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locations <state> [district]",
		Short: "List districts of a state, or municipalities of a district",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := catalog.LoadEmbeddedLocations()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			state := args[0]

			if len(args) == 2 {
				munis := locs.Municipalities(state, args[1])
				if opts.asJSON {
					return writeJSON(out, munis)
				}
				if len(munis) == 0 {
					fmt.Fprintf(out, "no municipalities known for %s, %s\n", args[1], state)
					return nil
				}
				for _, m := range munis {
					fmt.Fprintf(out, "%s (%s)\n", m.Name, m.Type)
				}
				return nil
			}

			districts := locs.Districts(state)
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{
					"districts": districts,
					"nearby":    locs.NearbyForState(state),
				})
			}
			if len(districts) == 0 {
				fmt.Fprintf(out, "no districts known for %s; known states: %s\n", state, strings.Join(locs.States(), ", "))
				return nil
			}
			fmt.Fprintln(out, strings.Join(districts, "\n"))
			return nil
		},
	}
}
