/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var (
	updateData       string
	updateFile       string
	updateNoMetadata bool
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update fields of a document",
	Long: `Update sets the fields of a JSON object on an existing document and prints the
result. id, created and createdBy are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		updates, err := readDocument(updateData, updateFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		var opts []storagemodels.WriteOption
		if updateNoMetadata {
			opts = append(opts, storagemodels.WithoutMetadata())
		}
		updated, err := col.Update(cmd.Context(), userID, args[0], updates, opts...)
		if err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Str("id", args[0]).Msg("document updated")
		return printJSON(cmd.OutOrStdout(), render(updated))
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateData, "data", "d", "", "Fields as a JSON object")
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "Read the fields from a file (- for stdin)")
	updateCmd.Flags().BoolVar(&updateNoMetadata, "no-metadata", false, "Leave modified/modifiedBy untouched")
}
