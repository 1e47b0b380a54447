package main

import (
	"github.com/spf13/cobra"

	"github.com/mdtree-go/mdtree"
)

func newTreeCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Dump a Markdown file's parsed item tree",
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
			dumpTree(cmd.OutOrStdout(), doc.Items, !noColor && wantColor())
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI coloring of item kinds")
	return cmd
}
