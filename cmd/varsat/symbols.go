package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/crillab/varsat/coverage"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <model-file> <block-fixture>",
		Short: "enumerate the config-space symbols a file's guards reference, with their Kconfig type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			if m == nil {
				return errors.New("varsat: symbols requires a model file")
			}
			tree, err := loadTree(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, sym := range coverage.EnumerateSymbols(tree, m) {
				fmt.Fprintf(out, "%s (%s)\n", sym.Name, sym.Type)
			}
			return nil
		},
	}
	return cmd
}
