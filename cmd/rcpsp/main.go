// Command rcpsp solves resource-constrained project scheduling
// instances: it preprocesses the instance, grows the branching seed
// set, runs the tabu-search metaheuristic and reports the best
// schedule found.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/UncleMehdi/RCPSPGpu/internal/algo"
	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
	"github.com/UncleMehdi/RCPSPGpu/internal/parse"
	"github.com/UncleMehdi/RCPSPGpu/internal/report"
	"github.com/UncleMehdi/RCPSPGpu/internal/tabu"
)

var (
	flagConfig      string
	flagSeed        int64
	flagVerbose     bool
	flagOutput      string
	flagSolutions   int
	flagTabuList    int
	flagSwapRange   int
	flagReadCounter int
	flagDivSwaps    int
	flagBlocks      int
	flagMaxIter     int
	flagMaxIterBest int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rcpsp",
		Short: "Solve resource-constrained project scheduling instances",
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "JSON config file with ConfigureRCPSP options")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "Random seed for branching and diversification")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(boundCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <instance.json>",
		Short: "Run the full branch + tabu pipeline on an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, name, err := parse.Load(args[0])
			if err != nil {
				return err
			}
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			solver, err := algo.NewSolver(inst, params, tabu.New(), rand.New(rand.NewSource(flagSeed)))
			if err != nil {
				return err
			}
			if name != "" {
				fmt.Fprintf(os.Stderr, "instance %s: %d activities, %d resources, critical path %d\n",
					name, inst.NumActivities, inst.NumResources, inst.CriticalPathBound)
			}

			sol, err := solver.Solve(ctx)
			if err != nil {
				return err
			}
			report.Fprint(os.Stdout, inst, sol, flagVerbose)

			if flagOutput != "" {
				if err := writeResult(flagOutput, inst, sol); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print the full schedule and summary")
	cmd.Flags().StringVarP(&flagOutput, "out", "o", "", "Write the binary result file here")
	cmd.Flags().IntVar(&flagSolutions, "solutions", 0, "Number of seed permutations (NUMBER_OF_SET_SOLUTIONS)")
	cmd.Flags().IntVar(&flagTabuList, "tabu-list", 0, "Tabu list size (TABU_LIST_SIZE)")
	cmd.Flags().IntVar(&flagSwapRange, "swap-range", 0, "Neighbourhood swap range (SWAP_RANGE)")
	cmd.Flags().IntVar(&flagReadCounter, "max-read-counter", 0, "Per-seed read cap (MAXIMAL_VALUE_OF_READ_COUNTER)")
	cmd.Flags().IntVar(&flagDivSwaps, "diversification-swaps", 0, "Swaps per diversification burst (DIVERSIFICATION_SWAPS)")
	cmd.Flags().IntVar(&flagBlocks, "blocks", 0, "Device blocks per multiprocessor (NUMBER_OF_BLOCKS_PER_MULTIPROCESSOR)")
	cmd.Flags().IntVar(&flagMaxIter, "max-iter", 0, "Metaheuristic iteration budget")
	cmd.Flags().IntVar(&flagMaxIterBest, "max-iter-since-best", 0, "Stop after this many non-improving iterations")
	return cmd
}

func boundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bound <instance.json>",
		Short: "Print the lower bounds of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, name, err := parse.Load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				fmt.Printf("instance: %s\n", name)
			}
			fmt.Printf("critical path makespan: %d\n", inst.CriticalPathBound)
			fmt.Printf("makespan lower bound: %d\n", algo.LowerBoundOfMakespan(inst))
			fmt.Printf("trivial upper bound: %d\n", inst.UpperBound)

			bounds := algo.ComputeBound(inst, inst.Forward(), inst.Durations, inst.Source(), true)
			fmt.Println("earliest starts (energy reasoning):")
			for a := 0; a < inst.NumActivities; a++ {
				fmt.Printf("  %d:\t%d\n", a, bounds[a])
			}
			return nil
		},
	}
}

// loadParams resolves the parameter set: defaults, then the config
// file, then any explicit flags.
func loadParams(cmd *cobra.Command) (config.Params, error) {
	params := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig, params)
		if err != nil {
			return params, err
		}
		params = loaded
	}
	overlay := func(flag string, value int, dst *int) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}
	overlay("solutions", flagSolutions, &params.Solutions)
	overlay("tabu-list", flagTabuList, &params.TabuListSize)
	overlay("swap-range", flagSwapRange, &params.SwapRange)
	overlay("max-read-counter", flagReadCounter, &params.MaxReadCounter)
	overlay("diversification-swaps", flagDivSwaps, &params.DiversificationSwaps)
	overlay("blocks", flagBlocks, &params.BlocksPerMultiprocessor)
	overlay("max-iter", flagMaxIter, &params.MaxIter)
	overlay("max-iter-since-best", flagMaxIterBest, &params.MaxIterSinceBest)
	return params, params.Validate()
}

func writeResult(path string, inst *core.Instance, sol *core.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := report.WriteBinary(f, inst, sol); err != nil {
		return err
	}
	return f.Close()
}
