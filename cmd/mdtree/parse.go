package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdtree-go/mdtree"
	"github.com/mdtree-go/mdtree/document"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Markdown file and report item counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, sourcePath, err := readInput(path)
			if err != nil {
				return err
			}
			doc := mdtree.Parse(text, sourcePath, mdtree.Options{})
			printStats(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	return cmd
}

func readInput(path string) (text string, sourcePath string, err error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "<stdin>", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %q: %w", path, err)
	}
	return string(b), path, nil
}

func printStats(w io.Writer, doc *document.Document) {
	counts := map[document.Kind]int{}
	document.Walk(doc.Items, func(it, _ document.Item) {
		counts[it.Kind()]++
	})
	fmt.Fprintf(w, "top-level items: %d\n", len(doc.Items))
	fmt.Fprintf(w, "headings: %d\n", counts[document.KindHeading])
	fmt.Fprintf(w, "links: %d (defined: %d)\n", counts[document.KindLink], len(doc.LabeledLinks))
	fmt.Fprintf(w, "images: %d\n", counts[document.KindImage])
	fmt.Fprintf(w, "footnote refs: %d (defined: %d)\n", counts[document.KindFootnoteRef], len(doc.LabeledFootnotes))
	fmt.Fprintf(w, "code spans and blocks: %d\n", counts[document.KindCode])
	fmt.Fprintf(w, "math spans: %d\n", counts[document.KindMath])
	fmt.Fprintf(w, "tables: %d\n", counts[document.KindTable])
}
