/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var (
	listActive   bool
	listRecent   bool
	listMine     bool
	listOwner    string
	listLimit    int32
	listIndex    string
	listInactive bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Long: `List prints every document of the collection, or with --active only active
ones, --recent newest first, --mine the active documents created by --user, and
--owner all documents created by the given identity.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}

		opts := []storagemodels.ReadOption{storagemodels.WithInactive(listInactive)}
		if listLimit > 0 {
			opts = append(opts, storagemodels.WithLimit(listLimit))
		}
		if listIndex != "" {
			opts = append(opts, storagemodels.WithIndex(listIndex))
		}
		opts = col.ReadOptions(opts...)

		ctx, store, table := cmd.Context(), col.Store, col.Table
		var docs []storagemodels.Document
		switch {
		case listActive:
			docs, err = store.GetActiveDocuments(ctx, table, opts...)
		case listRecent:
			docs, err = store.GetRecentDocuments(ctx, table, opts...)
		case listMine:
			docs, err = store.GetMyDocuments(ctx, table, userID, opts...)
		case listOwner != "":
			docs, err = store.GetUserDocuments(ctx, table, listOwner, opts...)
		default:
			docs, err = store.GetAllDocuments(ctx, table, opts...)
		}
		if err != nil {
			return err
		}
		log.Debug().Str("collection", col.Name).Int("count", len(docs)).Msg("listed documents")
		return printJSON(cmd.OutOrStdout(), renderAll(docs))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listActive, "active", false, "Only active documents")
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "Newest first through the recency index")
	listCmd.Flags().BoolVar(&listMine, "mine", false, "Active documents created by --user")
	listCmd.Flags().StringVar(&listOwner, "owner", "", "All documents created by this identity")
	listCmd.Flags().Int32VarP(&listLimit, "limit", "l", 0, "Maximum number of documents (default from config)")
	listCmd.Flags().StringVar(&listIndex, "index", "", "Secondary index to read")
	listCmd.Flags().BoolVar(&listInactive, "inactive", false, "Include archived documents where the listing filters them")
	listCmd.MarkFlagsMutuallyExclusive("active", "recent", "mine", "owner")
}
