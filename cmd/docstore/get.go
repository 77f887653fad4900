/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var getInactive bool

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a document by id",
	Long:  `Get prints one document. Archived documents are reported as not found unless --inactive is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		doc, err := col.Store.GetDocumentByID(cmd.Context(), col.Table, args[0], storagemodels.WithInactive(getInactive))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), render(doc))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getInactive, "inactive", false, "Return the document even if archived")
}
