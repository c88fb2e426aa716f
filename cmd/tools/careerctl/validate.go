// cmd/tools/careerctl/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"career-workers/pkg/registry"
)

func newValidateCmd(opts *options) *cobra.Command {
	var registryPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the career catalog and the activity registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			c, err := opts.loadCatalog()
			if err != nil {
				return fmt.Errorf("catalog invalid: %w", err)
			}
			fmt.Fprintf(out, "catalog ok: %d careers (version %s)\n", c.Len(), c.Version())

			var reg *registry.ActivityRegistry
			if registryPath == "" {
				reg, err = registry.Embedded()
			} else {
				reg, err = registry.LoadRegistry(registryPath)
			}
			if err != nil {
				return fmt.Errorf("registry invalid: %w", err)
			}
			fmt.Fprintf(out, "registry ok: %d activities (version %s)\n", len(reg.Activities), reg.Version)
			for _, taskType := range reg.TaskTypes() {
				fmt.Fprintf(out, "  - %s\n", taskType)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryPath, "registry", "", "activity registry JSON file (default is the embedded registry)")
	return cmd
}
