package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/marginalia/pkg/core"
)

var (
	listJSON bool
	listSet  string
	listFile string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memo records",
	Long:  `List every memo record in the project, optionally filtered by memo set or by source file.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, store, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		var tagged []core.Tagged
		switch {
		case listSet != "":
			tagged = store.BySet(listSet)
		case listFile != "":
			tagged = store.ByFilePath(listFile)
		default:
			tagged = store.All()
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(tagged); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, t := range tagged {
			rec := t.Record
			fmt.Printf("%s  [%s]  %s:%d  %s\n",
				rec.ID, t.Set, rec.FilePath, rec.StartLine+1, core.Truncate(rec.Memo, 60))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listSet, "set", "", "Filter records by memo set")
	listCmd.Flags().StringVar(&listFile, "file", "", "Filter records by source file path")
}
