package main

import (
	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newSetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value> [file]",
		Short: "Write a value at a path and print the document",
		Long: `Write a value at a path, creating intermediate mappings, and print the
updated document. The value is decoded as JSON when possible and used as a
plain string otherwise. Brackets in the path are part of the key.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := g.readMapping(cmd, args[2:])
			if err != nil {
				return err
			}
			if err := dotted.Set(doc, args[0], parseValue(args[1]), g.options()...); err != nil {
				return err
			}
			return g.write(cmd, doc)
		},
	}
}
