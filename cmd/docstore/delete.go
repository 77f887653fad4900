/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document",
	Long:  `Delete permanently removes a document, archived or not.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		doc, err := col.Store.DeleteDocument(cmd.Context(), col.Table, args[0])
		if err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Str("id", args[0]).Msg("document deleted")
		return printJSON(cmd.OutOrStdout(), doc)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
