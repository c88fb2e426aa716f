// cmd/tools/careerctl/root.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"career-workers/internal/catalog"
	"career-workers/internal/common/config"
)

const app = "careerctl"

type options struct {
	configPath  string
	catalogPath string
	asJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           app,
		Short:         "careerctl inspects the career catalog and runs the matching engine offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is configs/config.yaml)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "career catalog JSON file (default is the embedded catalog)")
	root.PersistentFlags().BoolVarP(&opts.asJSON, "json", "j", false, "print JSON instead of text")

	root.AddCommand(
		newValidateCmd(opts),
		newMatchCmd(opts),
		newRoadmapCmd(opts),
		newLocationsCmd(opts),
		newIndexCmd(opts),
		newScaffoldCmd(),
		newVersionCmd(),
	)
	return root
}

func (o *options) config() (*config.Config, error) {
	return config.LoadForTool(o.configPath)
}

// loadCatalog reads --catalog when given, otherwise the embedded document.
func (o *options) loadCatalog() (*catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.LoadEmbedded()
	}
	data, err := os.ReadFile(o.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", o.catalogPath, err)
	}
	return catalog.Parse(data)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
