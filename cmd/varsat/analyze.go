package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/varsat/coverage"
)

func newAnalyzeCmd() *cobra.Command {
	var strategyName string

	cmd := &cobra.Command{
		Use:   "analyze <model-file> <block-fixture>",
		Short: "decide dead/undead blocks and synthesize covering configurations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := parseStrategy(strategyName)
			if err != nil {
				return err
			}

			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			tree, err := loadTree(args[1])
			if err != nil {
				return err
			}

			res, err := coverage.Analyze(tree, m, strategy)
			if err != nil {
				return errors.Wrap(err, "analyze")
			}

			printResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "simple", "coverage strategy: simple|minimize")
	return cmd
}

func parseStrategy(name string) (coverage.Strategy, error) {
	switch name {
	case "simple", "":
		return coverage.Simple, nil
	case "minimize":
		return coverage.Minimize, nil
	default:
		return 0, fmt.Errorf("varsat: unknown strategy %q (want simple|minimize)", name)
	}
}

func printResult(cmd *cobra.Command, res *coverage.Result) {
	out := cmd.OutOrStdout()

	sortedDead := append([]string(nil), res.Dead...)
	sort.Strings(sortedDead)
	for _, name := range sortedDead {
		fmt.Fprintf(out, "dead %s\n", name)
	}

	sortedUndead := append([]string(nil), res.Undead...)
	sort.Strings(sortedUndead)
	for _, name := range sortedUndead {
		fmt.Fprintf(out, "undead %s\n", name)
	}

	log.WithField("solutions", len(res.Solutions)).Debug("varsat: emitting configurations")
	for i, sol := range res.Solutions {
		fmt.Fprintf(out, "# configuration %d\n", i)
		printSolution(out, sol)
	}
}

func printSolution(out io.Writer, sol coverage.Solution) {
	names := make([]string, 0, len(sol))
	for name := range sol {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if sol[name] {
			fmt.Fprintf(out, "%s=y\n", name)
		} else {
			fmt.Fprintf(out, "# %s=n\n", name)
		}
	}
}
