/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/suparena/docstore/storagemodels"
)

var (
	createData        string
	createFile        string
	createNoMetadata  bool
	createNoOverwrite bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a document",
	Long: `Create validates a JSON document against the collection's field rules and
stores it. A random UUID is assigned when the document has no id.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}
		doc, err := readDocument(createData, createFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if doc.ID() == "" {
			doc[storagemodels.FieldID] = uuid.NewString()
		}

		var opts []storagemodels.WriteOption
		if createNoMetadata {
			opts = append(opts, storagemodels.WithoutMetadata())
		}
		if createNoOverwrite {
			opts = append(opts, storagemodels.WithoutOverwrite())
		}

		created, err := col.Create(cmd.Context(), userID, doc, opts...)
		if err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Str("id", created.ID()).Msg("document created")
		return printJSON(cmd.OutOrStdout(), created)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createData, "data", "d", "", "Document as a JSON object")
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Read the document from a file (- for stdin)")
	createCmd.Flags().BoolVar(&createNoMetadata, "no-metadata", false, "Skip created/modified stamps")
	createCmd.Flags().BoolVar(&createNoOverwrite, "no-overwrite", false, "Fail if a document with the id exists")
}
