// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the product-autogpt CLI. It turns a
// product topic into a generated title and description, grounded in a short
// research lookup, from the command line or through a web page.
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/logger"
	"github.com/pdiddy/product-autogpt/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets secrets.Secrets

	// appLog is built in PersistentPreRunE once flags and config are known.
	appLog = zap.NewNop()
)

// rootCmd is the base command for the product-autogpt CLI.
var rootCmd = &cobra.Command{
	Use:   "product-autogpt",
	Short: "Generate product titles and descriptions with a language model",
	Long: `product-autogpt asks a language model for a catchy product title about a
topic, looks the topic up in an encyclopedia, and asks the model again for a
product description that uses the research.

Use "run" for a one-shot generation and "serve" for the web page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLog = logger.New(viper.GetBool("log.debug"))

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, appLog)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			appLog.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLog.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./product-autogpt.yaml or ~/.config/product-autogpt/config.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of API key files (openai-api-key, anthropic-api-key)")
	pf.String("provider", "openai", "LLM provider: openai or anthropic")
	pf.String("model", "", "model identifier (default depends on provider)")
	pf.Float64("temperature", 0.9, "sampling temperature for both generation steps")
	pf.String("lookup", "wikipedia", "research backend: wikipedia or local")
	pf.String("prompts", "", "YAML file overriding the title/description templates")
	pf.Bool("debug", false, "enable debug logging")

	bindFlag("llm.provider", "provider")
	bindFlag("llm.model", "model")
	bindFlag("llm.temperature", "temperature")
	bindFlag("lookup.backend", "lookup")
	bindFlag("prompts.file", "prompts")
	bindFlag("log.debug", "debug")

	setDefaults()
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("product-autogpt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "product-autogpt"))
		}
	}

	viper.SetEnvPrefix("PRODUCT_AUTOGPT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
