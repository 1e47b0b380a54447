// Command mdtree is a small CLI front-end over the mdtree parser: parse a
// file and report basic stats, dump its item tree for debugging, or walk a
// root file's local link graph into one assembled multi-file document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mdtree",
		Short: "Parse Markdown into a position-annotated item tree",
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newWalkCmd())
	return root
}
