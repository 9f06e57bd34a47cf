package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const envPrefix = "JSONMAP"

// globalState holds everything a command touches outside its own flags
type globalState struct {
	fs        afero.Fs
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	stdoutTTY bool
	viper     *viper.Viper
	logger    *slog.Logger
	level     *slog.LevelVar
}

func newGlobalState() *globalState {
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return newState(afero.NewOsFs(), os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr(), stdoutTTY)
}

func newState(fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer, tty bool) *globalState {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	return &globalState{
		fs:        fs,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		stdoutTTY: tty,
		viper:     v,
		level:     level,
		logger:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
}

// colorizer returns c enabled only when output goes to a terminal and
// colors were not turned off
func (gs *globalState) colorizer(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if gs.stdoutTTY && !gs.viper.GetBool("no-color") {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
