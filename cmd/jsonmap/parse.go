package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cybergodev/jsonmap"
)

func getCmdParse(gs *globalState) *cobra.Command {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringP("output", "o", "json", "output format: json or yaml")

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the pointer map of a JSON document",
		Long: `Parse a JSON document and print, for every JSON Pointer in it, the
locations of its value and, for object members, its key.

With no file, or when file is -, the document is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, _, err := readInput(gs, args)
			if err != nil {
				return err
			}
			p, err := newProcessor(gs)
			if err != nil {
				return err
			}
			result, err := p.Parse(text)
			if err != nil {
				return err
			}
			return writePointers(gs.stdout, p, result.Pointers, gs.viper.GetString("output"))
		},
	}
	cmd.Flags().AddFlagSet(flags)
	mustBindFlags(gs, flags)
	return cmd
}

func writePointers(w io.Writer, p *jsonmap.Processor, pointers jsonmap.Pointers, format string) error {
	switch format {
	case "json":
		result, err := p.Stringify(pointers, &jsonmap.StringifyOptions{Space: 2})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, result.JSON)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]*jsonmap.PointerEntry(pointers)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected json or yaml", format)
	}
}
