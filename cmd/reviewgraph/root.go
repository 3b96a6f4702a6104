package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/haijima/cobrax"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := cobrax.NewRoot(v)
	cmd.Use = "reviewgraph"
	cmd.Short = "reviewgraph explores clusters of product reviews"
	cmd.Long = heredoc.Doc(`
		reviewgraph loads a CSV of product reviews and connects every pair of
		reviews of the same product. Traversals start from the first review
		containing a keyword and list the reachable review cluster.
	`)
	cmd.Version = cobrax.VersionFunc()
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return cobrax.RootPersistentPreRunE(cmd, v, fs, args)
	}
	SetDatasetFlags(cmd)

	cmd.AddCommand(NewTraverseCommand(v, fs))
	cmd.AddCommand(NewNeighborsCommand(v, fs))
	cmd.AddCommand(NewStatsCommand(v, fs))
	cmd.AddCommand(NewGraphCommand(v, fs))
	cmd.AddCommand(NewExploreCommand(v, fs))
	cmd.AddCommand(NewGenConfCmd(v, fs))

	cmd.SetGlobalNormalizationFunc(cobrax.SnakeToKebab)

	return cmd
}
