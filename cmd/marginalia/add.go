package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/marginalia/pkg/capture"
	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/git"
)

var (
	addFile      string
	addSet       string
	addMemo      string
	addStartLine int
	addEndLine   int
	addStartChar int
	addEndChar   int
)

// fileDocument adapts a plain file on disk to the core.Document surface so
// headless commands can capture selections without an editor host.
type fileDocument struct {
	relPath string
	lines   []string
}

func openFileDocument(root, relPath string) (*fileDocument, error) {
	data, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	return &fileDocument{relPath: relPath, lines: strings.Split(text, "\n")}, nil
}

func (d *fileDocument) Path() string { return d.relPath }

func (d *fileDocument) Line(n int) (string, error) {
	if n < 0 || n >= len(d.lines) {
		return "", fmt.Errorf("line %d out of range (%d lines)", n, len(d.lines))
	}
	return d.lines[n], nil
}

func (d *fileDocument) LineCount() int { return len(d.lines) }

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a memo anchored to a span of a source file",
	Long: `Anchor a memo to a line span of a source file and persist it into a memo
set. Line numbers are 1-based on the command line; character offsets are
0-based. The end character defaults to the full length of the last line.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if addEndLine == 0 {
			addEndLine = addStartLine
		}
		if addEndLine < addStartLine {
			fmt.Println("Error: --end-line must not precede --start-line")
			os.Exit(1)
		}

		root, err := projectRoot()
		if err != nil {
			fatal("Failed to resolve project root", err)
		}

		doc, err := openFileDocument(root, addFile)
		if err != nil {
			fatal("Failed to read source file", err)
		}

		span := core.Span{
			StartLine:      addStartLine - 1,
			StartCharacter: addStartChar,
			EndLine:        addEndLine - 1,
			EndCharacter:   addEndChar,
		}
		if addEndChar == 0 {
			if last, err := doc.Line(span.EndLine); err == nil {
				span.EndCharacter = len(last)
			}
		}

		gw, store, err := openStore()
		if err != nil {
			fatal("Failed to open memo sets", err)
		}

		linker := git.NewClient(root, slog.Default())
		rec, err := capture.Build(context.Background(), addMemo, doc, span, linker)
		if err != nil {
			fatal("Failed to capture selection", err)
		}

		if err := store.Add(addSet, rec); err != nil {
			fatal("Failed to add memo", err)
		}
		if err := flushSet(gw, store, addSet); err != nil {
			fatal("Failed to write memo set", err)
		}

		fmt.Printf("Added memo %s to set '%s'.\n", rec.ID, addSet)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addFile, "file", "", "Project-relative path of the source file")
	addCmd.Flags().StringVar(&addSet, "set", "", "Memo set title")
	addCmd.Flags().StringVarP(&addMemo, "memo", "m", "", "Memo text")
	addCmd.Flags().IntVar(&addStartLine, "start-line", 1, "First line of the span (1-based)")
	addCmd.Flags().IntVar(&addEndLine, "end-line", 0, "Last line of the span (1-based, defaults to start)")
	addCmd.Flags().IntVar(&addStartChar, "start-char", 0, "Start character offset (0-based)")
	addCmd.Flags().IntVar(&addEndChar, "end-char", 0, "End character offset (0-based, defaults to line length)")
	addCmd.MarkFlagRequired("file")
	addCmd.MarkFlagRequired("set")
	addCmd.MarkFlagRequired("memo")
}
