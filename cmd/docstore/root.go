/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/logger"
)

var (
	configPath     string
	envFile        string
	collectionName string
	userID         string
	verbose        bool
	isoTimes       bool

	cfg     *config.Config
	log     zerolog.Logger
	catalog *docstore.Catalog
)

// openCatalog is replaced in tests.
var openCatalog = func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*docstore.Catalog, error) {
	return docstore.Open(ctx, cfg, log)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docstore",
	Short: "Schema-typed document store on DynamoDB",
	Long: `docstore creates, reads, updates, archives and deletes documents in the
collections declared in its configuration file. Results are printed as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["offline"] == "true" {
			return nil
		}

		var envFiles []string
		if envFile != "" {
			envFiles = append(envFiles, envFile)
		}
		loaded, err := config.Load(configPath, envFiles...)
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.Logging.Enabled = true
			cfg.Logging.Level = "debug"
		}
		log = logger.Configure(cfg.Logging)

		catalog, err = openCatalog(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("failed to open collections: %w", err)
		}
		log.Debug().Strs("collections", catalog.List()).Msg("catalog opened")
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file loaded before the configuration (default .env)")
	rootCmd.PersistentFlags().StringVarP(&collectionName, "collection", "c", "", "Collection to operate on")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", os.Getenv("DOCSTORE_USER"), "Identity recorded in createdBy/modifiedBy")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&isoTimes, "iso-times", false, "Render created/modified as ISO-8601 timestamps")
}

// collection resolves --collection, defaulting to the only configured one.
func collection() (*docstore.Collection, error) {
	name := collectionName
	if name == "" {
		names := catalog.List()
		if len(names) != 1 {
			return nil, fmt.Errorf("--collection is required, configured: %v", names)
		}
		name = names[0]
	}
	return catalog.Get(name)
}
