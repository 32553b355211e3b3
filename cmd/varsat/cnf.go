package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/crillab/varsat/cnf"
	"github.com/crillab/varsat/coverage"
)

func newCNFCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "cnf <block-fixture>",
		Short: "Tseitin-encode a file's whole-file precondition formula and emit it as DIMACS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}

			f0 := coverage.BaseFormula(tree, nil, nil)
			reg := cnf.NewRegistry(cnf.Bound, nil)
			top, err := reg.Encode(f0)
			if err != nil {
				return errors.Wrap(err, "cnf: encoding")
			}
			reg.AssertTop(top)

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return errors.Wrapf(err, "creating %q", outPath)
				}
				defer f.Close()
				w = f
			}

			if err := cnf.WriteDIMACS(w, reg); err != nil {
				return errors.Wrap(err, "cnf: writing DIMACS")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write DIMACS output to this file instead of stdout")
	return cmd
}
