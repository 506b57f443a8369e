package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/marginalia"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of marginalia",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marginalia version %s\n", strings.TrimSpace(marginalia.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
