package main

import (
	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newFlattenCmd(g *globalFlags) *cobra.Command {
	var childrenKey string

	cmd := &cobra.Command{
		Use:   "flatten [file]",
		Short: "List every node of a hierarchy, descendants first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := g.readMapping(cmd, args)
			if err != nil {
				return err
			}
			flat, err := dotted.Flatten(doc, dotted.WithChildrenKey(childrenKey))
			if err != nil {
				return err
			}
			return g.write(cmd, flat)
		},
	}

	cmd.Flags().StringVar(&childrenKey, "children-key", dotted.DefaultChildrenKey, "Key holding each node's children")
	return cmd
}
