package main

import (
	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newItemsCmd(g *globalFlags) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "items [file]",
		Short: "List every leaf of a document with its full path",
		Long: `List every leaf of a document with its full path, sorted by key.

--match filters paths with a glob where "*" stays within one component and
"**" spans any number of them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := g.readMapping(cmd, args)
			if err != nil {
				return err
			}

			opts := g.options()
			items := dotted.DeepItems(doc, opts...)
			if match != "" {
				if items, err = dotted.MatchItems(items, match, opts...); err != nil {
					return err
				}
			}

			out := make([]any, len(items))
			for i, it := range items {
				out[i] = map[string]any{"path": it.Path, "value": it.Value}
			}
			return g.write(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Only list paths matching this glob")
	return cmd
}
