package main

import (
	"github.com/agentable/dotted"
	"github.com/spf13/cobra"
)

func newGetCmd(g *globalFlags) *cobra.Command {
	var (
		def       string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Resolve a path against a document",
		Long: `Resolve a path against a document and print the result.

Missing keys yield the --default value (null when unset). An index, filter or
wildcard applied to something that is not a sequence is an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := g.read(cmd, args[1:])
			if err != nil {
				return err
			}

			opts := g.options()
			if cmd.Flags().Changed("default") {
				opts = append(opts, dotted.WithDefault(parseValue(def)))
			}
			if normalize {
				opts = append(opts, dotted.WithNormalize())
			}

			v, err := dotted.Get(doc, args[0], opts...)
			if err != nil {
				return err
			}
			return g.write(cmd, v)
		},
	}

	cmd.Flags().StringVar(&def, "default", "", "Value for missing paths, decoded as JSON when possible")
	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "Compare filter values case-insensitively after unescaping HTML entities")
	return cmd
}
