/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"strings"

	"github.com/spf13/cobra"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

var (
	findProps    []string
	findIn       string
	findLimit    int32
	findInactive bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find documents by property values",
	Long: `Find matches documents whose properties equal every --prop field=value, or,
with --in field=v1,v2,..., whose field equals any of the listed values.
Values are coerced to the declared field type.`,
	Example: `  docstore find -c books --prop pages=304
  docstore find -c books --in createdBy=alice,bob`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collection()
		if err != nil {
			return err
		}

		opts := []storagemodels.ReadOption{storagemodels.WithInactive(findInactive)}
		if findLimit > 0 {
			opts = append(opts, storagemodels.WithLimit(findLimit))
		}
		opts = col.ReadOptions(opts...)

		var docs []storagemodels.Document
		switch {
		case findIn != "":
			field, list, ok := strings.Cut(findIn, "=")
			if !ok || field == "" || list == "" {
				return storeerrors.NewValidationError("in", "expected field=v1,v2,...")
			}
			values := make([]any, 0)
			for _, v := range strings.Split(list, ",") {
				values = append(values, v)
			}
			docs, err = col.Store.GetDocumentsWhereInProp(cmd.Context(), col.Table, field, values, opts...)
		case len(findProps) > 0:
			props, perr := parseAssignments(findProps)
			if perr != nil {
				return perr
			}
			if len(props) == 1 {
				for field, value := range props {
					docs, err = col.Store.GetDocumentsByProp(cmd.Context(), col.Table, field, value, opts...)
				}
			} else {
				docs, err = col.Store.GetDocumentsByProps(cmd.Context(), col.Table, props, opts...)
			}
		default:
			return storeerrors.NewValidationError("prop", "give --prop or --in")
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), renderAll(docs))
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringArrayVarP(&findProps, "prop", "p", nil, "field=value to match (repeatable)")
	findCmd.Flags().StringVar(&findIn, "in", "", "field=v1,v2,... to match any value")
	findCmd.Flags().Int32VarP(&findLimit, "limit", "l", 0, "Maximum number of documents (default from config)")
	findCmd.Flags().BoolVar(&findInactive, "inactive", false, "Include archived documents")
	findCmd.MarkFlagsMutuallyExclusive("prop", "in")
}
