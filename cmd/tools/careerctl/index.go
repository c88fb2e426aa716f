// cmd/tools/careerctl/index.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"career-workers/internal/catalog"
	"career-workers/internal/common/database"
)

func newIndexCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Create the career search index and bulk-load the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			c, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			indexer := catalog.NewIndexer(es.Client, cfg.Search.Index)
			if err := indexer.EnsureIndex(ctx); err != nil {
				return err
			}
			n, err := indexer.IndexAll(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d careers into %s\n", n, cfg.Search.Index)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	return cmd
}
