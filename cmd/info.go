package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mcrl2org/besolve/bes"
	"github.com/mcrl2org/besolve/solver"
)

func newInfoCmd(e *env) *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Describe the blocks and the parity game of a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := readSystem(args[0])
			if err != nil {
				e.logger.Error("Failed to read system", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			g, err := solver.BuildGraph(sys)
			if err != nil {
				e.logger.Error("Invalid system", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			return printInfo(cmd.OutOrStdout(), newInfoReport(sys, g), e.cfg.Output.Format)
		},
	}
	infoCmd.Flags().String("format", "text", "Report format (text, yaml)")
	return infoCmd
}

type infoReport struct {
	Equations   int           `yaml:"equations"`
	MaxRank     int           `yaml:"max_rank"`
	Beta        []uint64      `yaml:"beta,flow"`
	Disjunctive int           `yaml:"disjunctive"`
	Conjunctive int           `yaml:"conjunctive"`
	Blocks      []blockReport `yaml:"blocks"`
}

type blockReport struct {
	Symbol    string   `yaml:"symbol"`
	Rank      int      `yaml:"rank"`
	Variables []string `yaml:"variables,flow"`
}

func newInfoReport(sys *bes.System, g *solver.Graph) *infoReport {
	disj := lo.CountBy(g.Vertices, func(vx solver.Vertex) bool { return vx.Owner == solver.Disjunctive })
	rep := &infoReport{
		Equations:   len(g.Vertices),
		MaxRank:     g.Ranking.MaxRank,
		Beta:        g.Ranking.Beta,
		Disjunctive: disj,
		Conjunctive: len(g.Vertices) - disj,
	}
	rep.Blocks = lo.Map(g.Ranking.Blocks(sys.Equations), func(b bes.Block, _ int) blockReport {
		eqs := sys.Equations[b.First : b.First+b.Size]
		return blockReport{
			Symbol:    b.Symbol.String(),
			Rank:      b.Rank,
			Variables: lo.Map(eqs, func(eq bes.Equation, _ int) string { return string(eq.Var) }),
		}
	})
	return rep
}

func printInfo(w io.Writer, rep *infoReport, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("could not encode report: %w", err)
		}
		return enc.Close()
	}
	fmt.Fprintf(w, "c equations: %d\n", rep.Equations)
	fmt.Fprintf(w, "c blocks: %d\n", len(rep.Blocks))
	fmt.Fprintf(w, "c max rank: %d\n", rep.MaxRank)
	fmt.Fprintf(w, "c beta: %v\n", rep.Beta)
	fmt.Fprintf(w, "c disjunctive: %d, conjunctive: %d\n", rep.Disjunctive, rep.Conjunctive)
	for i, b := range rep.Blocks {
		fmt.Fprintf(w, "b %d %s %d: %s\n", i, b.Symbol, b.Rank, strings.Join(b.Variables, " "))
	}
	return nil
}
