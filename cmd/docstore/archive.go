/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive (soft-delete) a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		doc, err := col.Store.ArchiveDocument(cmd.Context(), col.Table, userID, args[0])
		if err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Str("id", args[0]).Msg("document archived")
		return printJSON(cmd.OutOrStdout(), render(doc))
	},
}

var dearchiveCmd = &cobra.Command{
	Use:   "dearchive [id]",
	Short: "Restore an archived document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		doc, err := col.Store.DearchiveDocument(cmd.Context(), col.Table, userID, args[0])
		if err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Str("id", args[0]).Msg("document restored")
		return printJSON(cmd.OutOrStdout(), render(doc))
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(dearchiveCmd)
}
