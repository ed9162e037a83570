// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/product-autogpt/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the product generator web page",
	Long: `Serve starts an HTTP server with the single-page generator UI at / and a
JSON endpoint at /api/v1/generate. Every request runs its own pipeline with
its own transcripts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	if err := viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	factory, closeFn, err := newFactory(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(factory, appLog).ListenAndServe(ctx, cfg.Server.Addr)
}
