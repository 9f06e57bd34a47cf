package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cybergodev/jsonmap"
)

func newRootCommand(gs *globalState) *cobra.Command {
	root := &cobra.Command{
		Use:           "jsonmap",
		Short:         "Map JSON Pointers to source locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if gs.viper.GetBool("verbose") {
				gs.level.Set(slog.LevelDebug)
			}
			return nil
		},
	}

	flags := rootPersistentFlagSet()
	root.PersistentFlags().AddFlagSet(flags)
	mustBindFlags(gs, flags)

	root.AddCommand(
		getCmdParse(gs),
		getCmdLocate(gs),
		getCmdFmt(gs),
	)
	root.SetIn(gs.stdin)
	root.SetOut(gs.stdout)
	root.SetErr(gs.stderr)
	return root
}

func rootPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	return flags
}

func mustBindFlags(gs *globalState, flags *pflag.FlagSet) {
	if err := gs.viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// execute runs the root command and returns the process exit code
func execute(gs *globalState, args []string) int {
	root := newRootCommand(gs)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		red := gs.colorizer(color.FgRed, color.Bold)
		_, _ = fmt.Fprintln(gs.stderr, red.Sprint("error:"), err.Error())
		if classifier := jsonmap.NewErrorClassifier(); classifier.IsUserError(err) {
			_, _ = fmt.Fprintln(gs.stderr, "hint:", classifier.GetErrorSuggestion(err))
		}
		return 1
	}
	return 0
}

// newProcessor builds a processor that shares the command's filesystem and logger
func newProcessor(gs *globalState) (*jsonmap.Processor, error) {
	space, err := parseSpace(gs.viper.GetString("space"))
	if err != nil {
		return nil, err
	}
	config := jsonmap.DefaultConfig()
	config.Fs = gs.fs
	config.Logger = gs.logger
	config.Space = space
	return jsonmap.New(config)
}

var spaceEscapes = strings.NewReplacer(`\t`, "\t", `\n`, "\n", `\r`, "\r")

// parseSpace reads a --space value: a number of spaces or a whitespace
// string, where \t, \n and \r are accepted as escapes
func parseSpace(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	return spaceEscapes.Replace(raw), nil
}

// readInput reads the named file through the state's filesystem, or stdin
// for "-" or no name
func readInput(gs *globalState, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(gs.stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return string(data), "-", nil
	}
	data, err := afero.ReadFile(gs.fs, args[0])
	if err != nil {
		return "", "", errors.Wrapf(err, "reading %s", args[0])
	}
	return string(data), args[0], nil
}

var errMissingFile = errors.New("a file name is required")
