package main

import (
	"fmt"

	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newFindCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find <key> [file]",
		Short: "Search a document depth-first for a key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := g.read(cmd, args[1:])
			if err != nil {
				return err
			}
			v, ok := dotted.ValueForKey(doc, args[0])
			if !ok {
				return fmt.Errorf("key %q not found", args[0])
			}
			return g.write(cmd, v)
		},
	}
}
