package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/crillab/varsat/coverage"
)

func newMUSCmd() *cobra.Command {
	var blockName string

	cmd := &cobra.Command{
		Use:   "mus <model-file> <block-fixture>",
		Short: "report whether a block is satisfiable, and a minimal unsatisfiable core if not",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if blockName == "" {
				return errors.New("varsat: mus requires --block")
			}

			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			tree, err := loadTree(args[1])
			if err != nil {
				return err
			}

			isSat, core, err := coverage.CheckBlock(tree, m, blockName)
			if err != nil {
				return errors.Wrap(err, "mus")
			}

			out := cmd.OutOrStdout()
			if isSat {
				fmt.Fprintf(out, "%s is satisfiable\n", blockName)
				return nil
			}
			fmt.Fprintf(out, "%s is globally dead\n", blockName)
			for _, clause := range core {
				fmt.Fprintln(out, formatClause(clause))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&blockName, "block", "", "the block to check, e.g. B1")
	return cmd
}

func formatClause(clause []int) string {
	s := "("
	for i, lit := range clause {
		if i > 0 {
			s += " v "
		}
		if lit < 0 {
			s += fmt.Sprintf("!%d", -lit)
		} else {
			s += fmt.Sprintf("%d", lit)
		}
	}
	return s + ")"
}
