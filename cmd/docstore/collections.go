/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"
)

type collectionInfo struct {
	Name   string            `json:"name"`
	Table  string            `json:"table"`
	Fields map[string]string `json:"fields"`
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the configured collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := make([]collectionInfo, 0)
		for _, name := range catalog.List() {
			col, err := catalog.Get(name)
			if err != nil {
				return err
			}
			fields := make(map[string]string, len(col.Schema))
			for f, t := range col.Schema {
				fields[f] = string(t)
			}
			out = append(out, collectionInfo{Name: col.Name, Table: col.Table, Fields: fields})
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}
