// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/product-autogpt/internal/prompt"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Print the effective prompt templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		set, err := loadTemplates(cfg)
		if err != nil {
			return err
		}
		writeTemplates(os.Stdout, set)
		return nil
	},
}

func writeTemplates(w io.Writer, set prompt.Set) {
	for i, t := range []*prompt.Template{set.Title, set.Description} {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %s (placeholders: %s)\n%s\n", t.ID(), strings.Join(t.Placeholders(), ", "), t.Text())
	}
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}
