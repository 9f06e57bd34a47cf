package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func getCmdFmt(gs *globalState) *cobra.Command {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringP("space", "s", "2", `indentation: a number of spaces or a whitespace string such as "\t"`)
	flags.BoolP("write", "w", false, "write the result back to the file")

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a JSON document",
		Long: `Parse a JSON document and print it again with the given indentation.
Member order, big integers and -0 are preserved. Use --space 0 for compact
output. The indentation can also be set with JSONMAP_SPACE.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, name, err := readInput(gs, args)
			if err != nil {
				return err
			}
			p, err := newProcessor(gs)
			if err != nil {
				return err
			}
			parsed, err := p.Parse(text)
			if err != nil {
				return err
			}

			if gs.viper.GetBool("write") {
				if name == "-" {
					return errMissingFile
				}
				_, err := p.WriteFile(name, parsed.Data)
				return err
			}

			result, err := p.Stringify(parsed.Data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(gs.stdout, result.JSON)
			return err
		},
	}
	cmd.Flags().AddFlagSet(flags)
	mustBindFlags(gs, flags)
	return cmd
}
