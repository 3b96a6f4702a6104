package main

import (
	"github.com/haijima/cobrax"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flags that make no sense in a shared config file
var genConfHidden = []string{"data", "filter", "positive", "negative", "config", "no-color"}

func NewGenConfCmd(_ *viper.Viper, _ afero.Fs) *cobra.Command {
	cmd := cobrax.PrintConfigCmd("genconf")
	cmd.Short = "Print the current flags as a config file"
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		for _, name := range genConfHidden {
			if f := cmd.Flag(name); f != nil {
				f.Hidden = true
			}
		}
		cmd.Root().HelpFunc()(cmd, args)
	})
	return cmd
}
