package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/haijima/cobrax"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	fs := afero.NewOsFs()
	v := viper.NewWithOptions(viper.WithLogger(slog.Default()))
	v.SetFs(fs)

	rootCmd := NewRootCmd(v, fs)
	rootCmd.SetOut(colorable.NewColorableStdout())
	rootCmd.SetErr(colorable.NewColorableStderr())
	cobra.OnInitialize(func() {
		color.NoColor = color.NoColor || v.GetBool("no-color")
		l := newLogger(rootCmd.ErrOrStderr(), cobrax.VerbosityLevel(v), color.NoColor)
		slog.SetDefault(l)
		cobrax.SetLogger(l)
	})

	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger returns a tint logger writing to w. Source locations are added
// below the debug level (-vvvv).
func newLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  level < slog.LevelDebug,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}))
}
