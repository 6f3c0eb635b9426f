// Command searchdemo runs the search-control core's reference host
// (internal/fdmodel) against the canonical scenarios used to ground its
// tests: pigeonhole unsatisfiability, a minimize-sum optimization, a
// Luby-restart run, a trivial tabu search, a budget-limited search, and a
// small guided-local-search arc-assignment problem.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/gitrdm/searchcore/internal/fdmodel"
	"github.com/gitrdm/searchcore/internal/parallel"
	"github.com/gitrdm/searchcore/pkg/search"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed int64
	var verbose bool

	root := &cobra.Command{
		Use:   "searchdemo",
		Short: "Demonstrates the search-control core against reference scenarios",
	}
	root.PersistentFlags().Int64Var(&seed, "seed", 1, "RNG seed for the reference solver")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "emit debug-level search logging")

	logger := func() *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: level}))
	}

	root.AddCommand(
		newPigeonholeCmd(&seed, logger),
		newMinimizeSumCmd(&seed, logger),
		newLubyCmd(&seed, logger),
		newTabuCmd(&seed, logger),
		newLimitCmd(&seed, logger),
		newGLSCmd(&seed, logger),
		newSweepCmd(logger),
	)
	return root
}

// newSweepCmd runs the pigeonhole scenario across many seeds concurrently
// through a bounded worker pool, since each run's Solver is independent
// and seed only affects tie-breaking (pigeonhole has no random selector,
// so every run reaches the same verdict; the sweep demonstrates the
// concurrency pattern a host would reuse for scenarios where seed does
// matter, e.g. "luby").
func newSweepCmd(logger func() *slog.Logger) *cobra.Command {
	var runs int
	var workers int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the pigeonhole scenario across many seeds concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := parallel.NewWorkerPool(workers)
			defer pool.Shutdown()

			var wg sync.WaitGroup
			var solved int64
			ctx := context.Background()

			for i := 0; i < runs; i++ {
				seed := int64(i)
				wg.Add(1)
				err := pool.Submit(ctx, func() {
					defer wg.Done()
					s := fdmodel.NewSolver(seed)
					vars := make([]search.IntVar, 3)
					for i := range vars {
						vars[i] = s.NewIntVar(fmt.Sprintf("p[%d]", i), 0, 1)
					}
					for i := 0; i < len(vars); i++ {
						for j := i + 1; j < len(vars); j++ {
							s.AddConstraint(s.MakeNonEquality(vars[i], vars[j]))
						}
					}
					db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMinValue)
					if err != nil {
						return
					}
					if s.Solve(db, nil, true) {
						atomic.AddInt64(&solved, 1)
					}
				})
				if err != nil {
					wg.Done()
					return err
				}
			}
			wg.Wait()
			fmt.Printf("sweep: %d/%d runs found a solution (expect 0, 3 pigeons into 2 holes)\n", solved, runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 16, "number of concurrent seeded runs")
	cmd.Flags().IntVar(&workers, "workers", 4, "worker pool width")
	return cmd
}

func newPigeonholeCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	var pigeons, holes int64
	cmd := &cobra.Command{
		Use:   "pigeonhole",
		Short: "Assign n pigeons to m < n holes with all-different, expecting no solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, pigeons)
			for i := range vars {
				vars[i] = s.NewIntVar(fmt.Sprintf("pigeon[%d]", i), 0, holes-1)
			}
			for i := 0; i < len(vars); i++ {
				for j := i + 1; j < len(vars); j++ {
					s.AddConstraint(s.MakeNonEquality(vars[i], vars[j]))
				}
			}
			db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMinValue)
			if err != nil {
				return err
			}
			log := search.NewSearchLog(s, 0, nil, false, logger(), nil)
			found := s.Solve(db, []search.SearchMonitor{log}, false)
			fmt.Printf("pigeonhole %d->%d: found=%v branches=%d failures=%d\n", pigeons, holes, found, s.Branches(), s.Failures())
			return nil
		},
	}
	cmd.Flags().Int64Var(&pigeons, "pigeons", 3, "number of pigeons")
	cmd.Flags().Int64Var(&holes, "holes", 2, "number of holes")
	return cmd
}

func newMinimizeSumCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	var n int64
	cmd := &cobra.Command{
		Use:   "minimize-sum",
		Short: "Minimize the sum of n variables over [0,9] subject to var[i] >= i",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, n)
			exprs := make([]search.IntExpr, n)
			for i := range vars {
				vars[i] = s.NewIntVar(fmt.Sprintf("x[%d]", i), 0, 9)
				exprs[i] = vars[i]
				s.AddConstraint(s.MakeGreaterOrEqual(vars[i], int64(i)))
			}
			sum := s.MakeSum(exprs...)
			objVar := s.NewIntVar("sum", 0, 9*n)
			s.AddConstraint(s.MakeEquality(objVar, sum))

			db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMinValue)
			if err != nil {
				return err
			}
			opt := search.MakeMinimize(s, objVar, 1)
			collector := search.MakeBestValueSolutionCollector(s, vars, objVar, false)
			log := search.NewSearchLog(s, 0, objVar, false, logger(), nil)
			s.Solve(db, []search.SearchMonitor{opt, collector, log}, false)

			if collector.SolutionCount() == 0 {
				fmt.Println("minimize-sum: no solution found")
				return nil
			}
			best, _, _ := collector.ObjectiveValue(0)
			fmt.Printf("minimize-sum n=%d: best=%d\n", n, best)
			return nil
		},
	}
	cmd.Flags().Int64Var(&n, "n", 5, "number of variables")
	return cmd
}

func newLubyCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	var scale int64
	cmd := &cobra.Command{
		Use:   "luby",
		Short: "Run a deliberately hard coloring search under a Luby restart policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, 8)
			for i := range vars {
				vars[i] = s.NewIntVar(fmt.Sprintf("c[%d]", i), 0, 2)
			}
			for i := 0; i < len(vars); i++ {
				for j := i + 1; j < len(vars); j++ {
					if (i+j)%3 == 0 {
						s.AddConstraint(s.MakeNonEquality(vars[i], vars[j]))
					}
				}
			}
			db, err := search.MakePhaseRandomValue(s, vars, search.ChooseRandom)
			if err != nil {
				return err
			}
			restart := search.MakeLubyRestart(s, scale)
			log := search.NewSearchLog(s, 0, nil, false, logger(), nil)
			found := s.Solve(db, []search.SearchMonitor{restart, log}, true)
			fmt.Printf("luby scale=%d: found=%v restarts observed via failures=%d\n", scale, found, s.Failures())
			return nil
		},
	}
	cmd.Flags().Int64Var(&scale, "scale", 1, "Luby restart scale factor")
	return cmd
}

func newTabuCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabu",
		Short: "Run a tiny tabu search over a 3-variable toy objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, 3)
			for i := range vars {
				vars[i] = s.NewIntVar(fmt.Sprintf("v[%d]", i), 0, 4)
			}
			exprs := make([]search.IntExpr, len(vars))
			for i, v := range vars {
				exprs[i] = v
			}
			objVar := s.NewIntVar("obj", 0, 12)
			s.AddConstraint(s.MakeEquality(objVar, s.MakeSum(exprs...)))

			db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMaxValue)
			if err != nil {
				return err
			}
			tabu := search.MakeTabuSearch(s, true, objVar, 1, vars, 4, 4, 1.0)
			collector := search.MakeBestValueSolutionCollector(s, vars, objVar, true)
			log := search.NewSearchLog(s, 0, objVar, true, logger(), nil)
			limit := search.MakeLimit(s, 0, 200, 200, 0, false)
			s.Solve(db, []search.SearchMonitor{tabu, collector, limit, log}, false)

			if collector.SolutionCount() == 0 {
				fmt.Println("tabu: no solution found")
				return nil
			}
			best, _, _ := collector.ObjectiveValue(0)
			fmt.Printf("tabu: best=%d\n", best)
			return nil
		},
	}
	return cmd
}

func newLimitCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	var branchBudget int64
	cmd := &cobra.Command{
		Use:   "limit",
		Short: "Run an oversized search under a branch budget and report the truncation",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, 12)
			for i := range vars {
				vars[i] = s.NewIntVar(fmt.Sprintf("b[%d]", i), 0, 1)
			}
			db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMinValue)
			if err != nil {
				return err
			}
			limit := search.MakeLimit(s, 0, branchBudget, 0, 0, false)
			collector := search.MakeAllSolutionCollector(s, vars, nil)
			log := search.NewSearchLog(s, 0, nil, false, logger(), nil)
			s.Solve(db, []search.SearchMonitor{limit, collector, log}, false)
			fmt.Printf("limit branches=%d: solutions=%d branches_used=%d\n", branchBudget, collector.SolutionCount(), s.Branches())
			return nil
		},
	}
	cmd.Flags().Int64Var(&branchBudget, "branches", 20, "branch budget before the search is cut off")
	return cmd
}

func newGLSCmd(seed *int64, logger func() *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gls",
		Short: "Run guided local search on a 2-arc toy assignment problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := fdmodel.NewSolver(*seed)
			vars := make([]search.IntVar, 2)
			vars[0] = s.NewIntVar("arc0", 0, 3)
			vars[1] = s.NewIntVar("arc1", 0, 3)

			cost := func(i int, j int64) int64 {
				costs := [2][4]int64{
					{5, 1, 9, 3},
					{2, 7, 1, 6},
				}
				return costs[i][j]
			}
			exprs := []search.IntExpr{
				s.MakeElement(func(j int64) int64 { return cost(0, j) }, vars[0]),
				s.MakeElement(func(j int64) int64 { return cost(1, j) }, vars[1]),
			}
			objVar := s.NewIntVar("total_cost", 0, 20)
			s.AddConstraint(s.MakeEquality(objVar, s.MakeSum(exprs...)))

			db, err := search.MakePhase(vars, search.ChooseFirstUnbound, search.AssignMinValue)
			if err != nil {
				return err
			}
			penalties := search.NewDensePenalties(vars)
			gls := search.MakeGuidedLocalSearch(s, false, objVar, 1, vars, cost, 0.1, penalties)
			collector := search.MakeBestValueSolutionCollector(s, vars, objVar, false)
			limit := search.MakeLimit(s, 0, 500, 500, 0, false)
			log := search.NewSearchLog(s, 0, objVar, false, logger(), nil)
			s.Solve(db, []search.SearchMonitor{gls, collector, limit, log}, false)

			if collector.SolutionCount() == 0 {
				fmt.Println("gls: no solution found")
				return nil
			}
			best, _, _ := collector.ObjectiveValue(0)
			fmt.Printf("gls: best_cost=%d\n", best)
			return nil
		},
	}
	return cmd
}
