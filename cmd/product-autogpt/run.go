// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/product-autogpt/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Generate a product title and description for one topic",
	Long: `Run generates a product title for the topic, looks the topic up in the
research backend, and generates a product description from the title and the
research. The result and both step transcripts are printed to stdout.

An empty topic is allowed and is passed through unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("topic", "", "product topic (alternative to the positional argument)")
	runCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if len(args) > 0 {
		topic = args[0]
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	factory, closeFn, err := newFactory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := factory.Run(cmd.Context(), topic)
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, res, format)
}

// writeResult prints a pipeline result in the requested format.
func writeResult(w io.Writer, res types.PipelineResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		sections := []struct{ heading, body string }{
			{"Your Product Title", res.Title},
			{"Your Product Description", res.Description},
			{"Title History", res.TitleHistory},
			{"Description History", res.DescriptionHistory},
			{"Wikipedia Research History", res.ResearchHistory},
		}
		for i, s := range sections {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "## %s\n%s\n", s.heading, s.body)
		}
		return nil
	}
}
