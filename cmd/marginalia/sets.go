package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the memo sets present in the project",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		gw, _, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		titles, err := gw.DiscoverTitles()
		if err != nil {
			fatal("Failed to discover memo sets", err)
		}

		for _, title := range titles {
			fmt.Println(title)
		}
	},
}

func init() {
	rootCmd.AddCommand(setsCmd)
}
