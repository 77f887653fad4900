/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var (
	queryIndex    string
	queryDesc     bool
	queryLimit    int32
	queryInactive bool
)

var queryCmd = &cobra.Command{
	Use:   "query [field] [prefix]",
	Short: "Find documents whose field starts with a prefix",
	Long: `Query reads the index sorted by field (named after the field unless --index
is given) for values starting with the lower-cased prefix.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}

		opts := []storagemodels.ReadOption{storagemodels.WithInactive(queryInactive)}
		if queryLimit > 0 {
			opts = append(opts, storagemodels.WithLimit(queryLimit))
		}
		if queryIndex != "" {
			opts = append(opts, storagemodels.WithIndex(queryIndex))
		}
		if queryDesc {
			opts = append(opts, storagemodels.Descending())
		}

		docs, err := col.Store.QueryDocumentsByProp(cmd.Context(), col.Table, args[0], args[1], col.ReadOptions(opts...)...)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), renderAll(docs))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryIndex, "index", "", "Index to query (default: the field name)")
	queryCmd.Flags().BoolVar(&queryDesc, "desc", false, "Sort descending")
	queryCmd.Flags().Int32VarP(&queryLimit, "limit", "l", 0, "Maximum number of documents (default from config)")
	queryCmd.Flags().BoolVar(&queryInactive, "inactive", false, "Include archived documents")
}
