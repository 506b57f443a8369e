package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/marginalia"
	"github.com/aretw0/marginalia/pkg/adapters/fs"
	"github.com/aretw0/marginalia/pkg/core"
)

var (
	verbose bool
	suffix  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marginalia",
	Short: "Anchored code-reading memos stored as plain files",
	Long: `Marginalia pins free-text memos to exact spans of source code and keeps
them in your project as plain files: a JSON record file and a regenerated
Markdown narrative per memo set.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&suffix, "suffix", "", "Memo set file name marker (default from config or 'code_memo')")
}

// projectRoot resolves the project root from the working directory, walking
// upwards for a root indicator and falling back to the working directory.
func projectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := marginalia.FindProjectRoot(wd, effectiveSuffix()); err == nil {
		return root, nil
	}
	return wd, nil
}

func effectiveSuffix() string {
	if suffix != "" {
		return suffix
	}
	return fs.DefaultSuffix
}

func gatewayOptions() []marginalia.Option {
	opts := []marginalia.Option{
		marginalia.WithMustExist(true),
		marginalia.WithLogger(slog.Default()),
	}
	if suffix != "" {
		opts = append(opts, marginalia.WithSuffix(suffix))
	}
	return opts
}

// openStore initializes the gateway for the resolved project root and seeds
// a store from its memo sets.
func openStore() (core.Gateway, *core.Store, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, nil, err
	}

	gw, err := marginalia.OpenGateway(root, gatewayOptions()...)
	if err != nil {
		return nil, nil, err
	}

	index, err := gw.LoadAll()
	if err != nil {
		return nil, nil, err
	}

	store := core.NewStore(slog.Default())
	store.Seed(index)
	return gw, store, nil
}

// flushSet overwrites one memo set's artifacts with the store's current view.
func flushSet(gw core.Gateway, store *core.Store, set string) error {
	records := make([]core.Record, 0)
	for _, tagged := range store.BySet(set) {
		records = append(records, tagged.Record)
	}
	_, _, err := gw.WriteSet(set, records)
	return err
}
