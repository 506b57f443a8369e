package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	removeFile string
	removeID   string
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a memo record",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		gw, store, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		tagged, ok := store.Find(removeFile, removeID)
		if !ok {
			fmt.Printf("No memo %s found for %s.\n", removeID, removeFile)
			os.Exit(1)
		}

		if err := store.Delete(removeID, removeFile); err != nil {
			fatal("Failed to remove memo", err)
		}
		if err := flushSet(gw, store, tagged.Set); err != nil {
			fatal("Failed to write memo set", err)
		}

		fmt.Printf("Removed memo %s from set '%s'.\n", removeID, tagged.Set)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVar(&removeFile, "file", "", "Project-relative path of the source file")
	removeCmd.Flags().StringVar(&removeID, "id", "", "Memo record ID")
	removeCmd.MarkFlagRequired("file")
	removeCmd.MarkFlagRequired("id")
}
