package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	updateFile string
	updateID   string
	updateMemo string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the memo text of an existing record",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		gw, store, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		tagged, ok := store.Find(updateFile, updateID)
		if !ok {
			fmt.Printf("No memo %s found for %s.\n", updateID, updateFile)
			os.Exit(1)
		}

		rec := tagged.Record
		rec.Memo = updateMemo
		if err := store.Update(updateID, rec); err != nil {
			fatal("Failed to update memo", err)
		}
		if err := flushSet(gw, store, tagged.Set); err != nil {
			fatal("Failed to write memo set", err)
		}

		fmt.Printf("Updated memo %s in set '%s'.\n", updateID, tagged.Set)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateFile, "file", "", "Project-relative path of the source file")
	updateCmd.Flags().StringVar(&updateID, "id", "", "Memo record ID")
	updateCmd.Flags().StringVarP(&updateMemo, "memo", "m", "", "Replacement memo text")
	updateCmd.MarkFlagRequired("file")
	updateCmd.MarkFlagRequired("id")
	updateCmd.MarkFlagRequired("memo")
}
