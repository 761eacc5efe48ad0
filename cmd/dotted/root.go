package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/agentable/dotted"
	"github.com/agentable/dotted/internal/document"
	"github.com/agentable/dotted/internal/logging"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	delimiter   string
	logLevel    string
	logFormat   string
	inputFormat string
	output      string
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "dotted",
		Short: "Query and reshape JSON or YAML documents with dotted paths",
		Long: `dotted reads a JSON or YAML document from a file or stdin and applies
a path query, a write, a mapping transform or a tree utility to it.

Paths look like "items[@status=active].tags[*].name": components are
separated by the delimiter and may carry an index, a filter or a wildcard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := document.Lookup(g.output); err != nil {
				return err
			}
			logging.Setup(cmd.ErrOrStderr(), g.logLevel, g.logFormat)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.delimiter, "delimiter", "d", dotted.DefaultDelimiter, "Path component delimiter")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVarP(&g.inputFormat, "input-format", "i", "", "Input format (json, yaml); guessed from the file name when empty")
	pf.StringVarP(&g.output, "output", "o", "json", "Output format (json, yaml, dump)")

	root.AddCommand(
		newGetCmd(g),
		newSetCmd(g),
		newTransformCmd(g),
		newFlattenCmd(g),
		newFindCmd(g),
		newItemsCmd(g),
	)
	return root
}

// options returns the library options implied by the global flags.
func (g *globalFlags) options() []dotted.Option {
	return []dotted.Option{
		dotted.WithDelimiter(g.delimiter),
		dotted.WithLogger(slog.Default()),
	}
}

// read decodes the document named by args, or stdin when args is empty or "-".
func (g *globalFlags) read(cmd *cobra.Command, args []string) (any, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	format := g.inputFormat
	if format == "" {
		format = document.FormatForPath(name)
	}

	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	slog.Debug("reading document", "source", name, "format", format)
	return document.Read(r, format)
}

// readMapping is read for commands that need a mapping at the root.
func (g *globalFlags) readMapping(cmd *cobra.Command, args []string) (map[string]any, error) {
	v, err := g.read(cmd, args)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root is a %s, want a mapping", dotted.KindOf(v))
	}
	return m, nil
}

// write encodes v to the command's output in the selected format.
func (g *globalFlags) write(cmd *cobra.Command, v any) error {
	return document.Write(cmd.OutOrStdout(), v, g.output)
}

// parseValue decodes s as JSON, falling back to the raw string so that
// `--default none` and `set a.b hello` work without quoting.
func parseValue(s string) any {
	v, err := document.JSONCodec{}.Decode([]byte(strings.TrimSpace(s)))
	if err != nil {
		return s
	}
	return v
}
