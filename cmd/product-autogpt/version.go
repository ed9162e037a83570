// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of product-autogpt",
	Long: `Version prints the build version, set at build time via ldflags by
"mage build", together with the Go toolchain and platform. --short prints
only the version, which is also the suffix of the Wikipedia User-Agent.`,
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		fmt.Fprintln(cmd.OutOrStdout(), versionString(short))
	},
}

// versionString formats the build version for display.
func versionString(short bool) string {
	if short {
		return version
	}
	return fmt.Sprintf("product-autogpt %s (%s, %s/%s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version")

	rootCmd.AddCommand(versionCmd)
}
