/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var (
	streamInactive bool
	streamPageSize int32
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream every document as JSON lines",
	Long:  `Stream scans the whole table page by page and prints one JSON document per line.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}

		results := col.Store.Stream(cmd.Context(), col.Table,
			storagemodels.WithInactiveItems(streamInactive),
			storagemodels.WithPageSize(streamPageSize),
			storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
				log.Debug().
					Int64("documents", p.Documents).
					Int("pages", p.Pages).
					Int("failures", p.Failures).
					Float64("rate", p.Rate).
					Msg("stream progress")
			}),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		for r := range results {
			if r.Error != nil {
				return r.Error
			}
			if err := enc.Encode(render(r.Item)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().BoolVar(&streamInactive, "inactive", false, "Include archived documents")
	streamCmd.Flags().Int32Var(&streamPageSize, "page-size", 100, "Items per scan page")
}
