package main

import (
	"github.com/spf13/cobra"

	"github.com/mdtree-go/mdtree"
)

func newWalkCmd() *cobra.Command {
	var exts []string
	var noColor bool
	cmd := &cobra.Command{
		Use:   "walk <root-file>",
		Short: "Assemble a root file and every local Markdown file it links to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mdtree.ParseFile(args[0], mdtree.Options{
				Recursive:  true,
				Extensions: exts,
			})
			if err != nil {
				return err
			}
			dumpTree(cmd.OutOrStdout(), doc.Items, !noColor && wantColor())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&exts, "ext", nil, "file extensions to follow (default .md,.markdown)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI coloring of item kinds")
	return cmd
}
