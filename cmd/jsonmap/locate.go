package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cybergodev/jsonmap"
)

func getCmdLocate(gs *globalState) *cobra.Command {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.BoolP("key", "k", false, "locate the member key instead of the value")

	cmd := &cobra.Command{
		Use:   "locate <file> <pointer>",
		Short: "Show where a JSON Pointer is in a document",
		Example: `  jsonmap locate config.json /servers/0/port
  cat config.json | jsonmap locate - /servers/0/port`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			text, name, err := readInput(gs, args[:1])
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

			ptr := args[1]
			entry, ok := result.Pointers.Get(ptr)
			if !ok {
				return fmt.Errorf("%w: '%s'", jsonmap.ErrPointerNotFound, ptr)
			}
			start, end := entry.Value, entry.ValueEnd
			if gs.viper.GetBool("key") {
				if !entry.HasKey() {
					return fmt.Errorf("%w: '%s' is not an object member", jsonmap.ErrInvalidPointer, ptr)
				}
				start, end = *entry.Key, *entry.KeyEnd
			}

			_, _ = fmt.Fprintf(gs.stdout, "%s:%s-%s\n", name, start, end)
			printSourceLine(gs.stdout, gs.colorizer(color.FgGreen, color.Bold), text, start, end)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(flags)
	mustBindFlags(gs, flags)
	return cmd
}

// printSourceLine prints the line holding start with a caret run under the
// span. Tabs are expanded to four spaces so the caret lines up with Column.
func printSourceLine(w io.Writer, caret *color.Color, text string, start, end jsonmap.Location) {
	line := text[start.LinePos:]
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}

	width := 1
	if end.Line == start.Line && end.LinePos == start.LinePos && end.Column > start.Column {
		width = end.Column - start.Column
	}

	_, _ = fmt.Fprintf(w, "%5d | %s\n", start.Line, strings.ReplaceAll(line, "\t", "    "))
	_, _ = fmt.Fprintf(w, "%5s | %s%s\n", "", strings.Repeat(" ", start.Column), caret.Sprint(strings.Repeat("^", width)))
}
