// cmd/tools/careerctl/match.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"career-workers/internal/matching"
	"career-workers/internal/models"
)

func newMatchCmd(opts *options) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank careers for a student profile",
		Example: `  careerctl match --profile student.json
  cat student.json | careerctl match --profile - --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			profile, err := readProfile(cmd.InOrStdin(), profilePath)
			if err != nil {
				return err
			}
			if err := profile.Normalize(cfg.Matching.MaxInterests); err != nil {
				return fmt.Errorf("profile invalid: %w", err)
			}

			c, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			engine, err := matching.NewFromSettings(cfg.Matching)
			if err != nil {
				return err
			}
			result := engine.Run(c.Careers(), profile)

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{
					"matches":        result.Matches,
					"eligibleCount":  result.EligibleCount,
					"candidateCount": result.CandidateCount,
				})
			}
			fmt.Fprintf(out, "eligible %d of %d careers, %d candidates scored\n\n",
				result.EligibleCount, c.Len(), result.CandidateCount)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tCAREER\tSCORE\tSALARY\tTIME\tELIGIBLE")
			for i, m := range result.Matches {
				fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%s\t%t\n",
					i+1, m.Career.Title, m.MatchScore, m.Career.FormatSalary(), m.Career.TimeToAchieve, m.Eligible)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "profile JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func readProfile(stdin io.Reader, path string) (*models.UserProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
