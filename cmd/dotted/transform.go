package main

import (
	"fmt"
	"strings"

	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newTransformCmd(g *globalFlags) *cobra.Command {
	var (
		rules []string
		clone bool
	)

	cmd := &cobra.Command{
		Use:   "transform --rule to=from ... [file]",
		Short: "Build a new document from path mapping rules",
		Long: `Build a new document by copying the value found at each rule's source path
to its destination path. Rules run in the order given; a failing rule is
reported and the others still apply.`,
		Example: `  dotted transform --rule title=name --rule cost.value=price.amount product.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapper, err := parseRules(rules)
			if err != nil {
				return err
			}
			doc, err := g.readMapping(cmd, args)
			if err != nil {
				return err
			}

			opts := g.options()
			if clone {
				opts = append(opts, dotted.WithClone())
			}

			out, err := dotted.Transform(doc, mapper, opts...)
			if werr := g.write(cmd, out); werr != nil {
				return werr
			}
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&rules, "rule", "r", nil, "Mapping rule as destination=source (repeatable)")
	cmd.Flags().BoolVar(&clone, "clone", false, "Start from a copy of the input instead of an empty document")
	_ = cmd.MarkFlagRequired("rule")
	return cmd
}

// parseRules turns "to=from" flags into a Mapper, preserving order.
func parseRules(rules []string) (dotted.Mapper, error) {
	mapper := make(dotted.Mapper, 0, len(rules))
	for _, r := range rules {
		to, from, ok := strings.Cut(r, "=")
		if !ok || to == "" || from == "" {
			return nil, fmt.Errorf("invalid rule %q: want destination=source", r)
		}
		mapper = append(mapper, dotted.Rule{To: to, From: from})
	}
	return mapper, nil
}
