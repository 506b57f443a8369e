package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Regenerate the Markdown narratives for every memo set",
	Long: `Rewrite each memo set's artifacts from the loaded records. Useful after
hand-editing a record file, or to restore a deleted narrative.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		gw, store, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		for _, set := range store.Sets() {
			if err := flushSet(gw, store, set); err != nil {
				fatal(fmt.Sprintf("Failed to write memo set '%s'", set), err)
			}
			fmt.Printf("Regenerated '%s'.\n", set)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
