package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/karuto/Parallel-Sample-Sort/pkg/benchmark"
	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/karuto/Parallel-Sample-Sort/pkg/sort"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

// Where runSort reads its input from
var openSource data.SourceFactory = data.OpenFileSource

type runOpts struct {
	seed        int64
	maxAttempts int
	quiet       bool
	planFile    string
}

type genOpts struct {
	seed int64
	max  int32
}

func parseCount(arg string, name string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("Invalid %v %q, must be a positive integer", name, arg)
	}
	return n, nil
}

func runSort(ctx context.Context, args []string, opts *runOpts) error {
	threads, err := parseCount(args[0], "number of threads")
	if err != nil {
		return err
	}
	sampleSize, err := parseCount(args[1], "sample size")
	if err != nil {
		return err
	}
	listSize, err := parseCount(args[2], "list size")
	if err != nil {
		return err
	}
	inputFile := args[3]

	// Trailing "n" suppresses output, like the original tool
	quiet := opts.quiet
	if len(args) == 5 {
		if args[4] != "n" {
			return fmt.Errorf("Unknown output option %q, only \"n\" (suppress output) is supported", args[4])
		}
		quiet = true
	}

	cfg := sort.NewConfig(
		sort.WithThreads(threads),
		sort.WithSampleSize(sampleSize),
		sort.WithSeed(opts.seed),
		sort.WithMaxSampleAttempts(opts.maxAttempts),
		sort.WithLogger(log),
	)

	// Reject bad sizes before touching the input
	if err := cfg.Validate(listSize); err != nil {
		return err
	}

	src, err := openSource(inputFile)
	if err != nil {
		return errors.Wrap(err, "Failed to open list")
	}
	list, err := src.Load(listSize)
	src.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to read list")
	}

	if !quiet {
		benchmark.PrintList(os.Stdout, "original list", list)
	}

	res, err := sort.NewSorter(cfg).Sort(ctx, list)
	if err != nil {
		return errors.Wrap(err, "Sort failed")
	}

	benchmark.Report(os.Stdout, res, quiet)

	if opts.planFile != "" {
		if err := writePlan(opts.planFile, res); err != nil {
			return err
		}
	}
	return nil
}

func writePlan(path string, res *sort.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Failed to create plan file")
	}

	if err := sort.NewPlan(res).Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func genInputs(args []string, opts *genOpts) error {
	listSize, err := parseCount(args[0], "list size")
	if err != nil {
		return err
	}
	if opts.max <= 0 {
		return fmt.Errorf("Invalid max key %v", opts.max)
	}

	f, err := os.Create(args[1])
	if err != nil {
		return errors.Wrap(err, "Failed to create output file")
	}

	if err := data.WriteInts(f, data.GenerateInputs(listSize, opts.seed, opts.max)); err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to write %v", args[1])
	}
	return f.Close()
}

func newRootCmd() *cobra.Command {
	var logLevel string
	ropts := &runOpts{}

	root := &cobra.Command{
		Use:           "samplesort [number of threads] [sample size] [list size] [name of input file] [Optional suppress output(n)]",
		Short:         "Parallel sample sort of a list of integers",
		Args:          cobra.RangeArgs(4, 5),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd.Context(), args, ropts)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.Flags().Int64Var(&ropts.seed, "seed", 0, "Base seed for the per-thread random sources")
	root.Flags().IntVar(&ropts.maxAttempts, "max-attempts", 1024, "Random draws per sample key before giving up")
	root.Flags().BoolVarP(&ropts.quiet, "quiet", "q", false, "Suppress printing of the lists")
	root.Flags().StringVar(&ropts.planFile, "plan", "", "Write the partition plan (JSON) to this file")

	gopts := &genOpts{}
	gen := &cobra.Command{
		Use:   "gen [list size] [output file]",
		Short: "Write a file of random integers for use as input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return genInputs(args, gopts)
		},
	}
	gen.Flags().Int64Var(&gopts.seed, "seed", 0, "Random seed")
	gen.Flags().Int32Var(&gopts.max, "max", 1<<30, "Keys are drawn from [0, max)")
	root.AddCommand(gen)

	bcfg := benchmark.BenchConfig{Logger: log}
	bench := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated sorts of generated inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := benchmark.RunBenchmarks(cmd.Context(), bcfg, os.Stdout)
			return err
		},
	}
	bench.Flags().IntVar(&bcfg.Threads, "threads", 4, "Number of threads (0 uses GOMAXPROCS)")
	bench.Flags().IntVar(&bcfg.SampleSize, "sample-size", 1024, "Total sample size")
	bench.Flags().IntVar(&bcfg.ListSize, "list-size", 1<<20, "Number of keys to sort")
	bench.Flags().IntVar(&bcfg.Repeat, "repeat", 5, "Number of timed runs")
	bench.Flags().Int64Var(&bcfg.Seed, "seed", 0, "Seed for input generation and sampling")
	bench.Flags().Int32Var(&bcfg.MaxKey, "max", 1<<30, "Keys are drawn from [0, max)")
	root.AddCommand(bench)

	return root
}

func main() {
	retcode := 0
	defer func() { os.Exit(retcode) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Errorf("%v", err)
		retcode = 1
		return
	}
}
