// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/product-autogpt/internal/knowledge"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the local research knowledge base",
	Long: `Knowledge manages the SQLite article store used by --lookup local as an
offline alternative to Wikipedia.`,
}

var knowledgeImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import articles from a YAML file",
	Long: `Import reads a YAML file of the form

  articles:
    - title: Water bottle
      summary: Water bottles are containers for liquids...
      source: https://en.wikipedia.org/wiki/Water_bottle

and upserts each article by title.`,
	Args: cobra.ExactArgs(1),
	RunE: runKnowledgeImport,
}

var knowledgeLookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Run a research lookup against the local knowledge base",
	RunE:  runKnowledgeLookup,
}

func runKnowledgeImport(cmd *cobra.Command, args []string) error {
	store, cfg, err := openKnowledge()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d article(s) into %s (%d total)\n", n, cfg.DBPath, total)
	return nil
}

func runKnowledgeLookup(cmd *cobra.Command, args []string) error {
	store, cfg, err := openKnowledge()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := knowledge.NewBackend(store, cfg).Lookup(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func openKnowledge() (*knowledge.Store, types.LookupConfig, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, types.LookupConfig{}, err
	}
	store, err := knowledge.NewStore(cfg.Lookup.DBPath)
	if err != nil {
		return nil, types.LookupConfig{}, err
	}
	return store, cfg.Lookup, nil
}

func init() {
	knowledgeCmd.PersistentFlags().String("db", "", "knowledge base file (default knowledge/lookup.db)")
	if err := viper.BindPFlag("lookup.db_path", knowledgeCmd.PersistentFlags().Lookup("db")); err != nil {
		panic(err)
	}

	knowledgeCmd.AddCommand(knowledgeImportCmd)
	knowledgeCmd.AddCommand(knowledgeLookupCmd)

	rootCmd.AddCommand(knowledgeCmd)
}
