/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docstore"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version information of docstore",
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		info := docstore.GetVersionInfo()
		info.BuildDate = formatTime(info.BuildDate)
		return printJSON(cmd.OutOrStdout(), info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
