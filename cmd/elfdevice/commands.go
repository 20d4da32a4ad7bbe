package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/elfdevice/internal/logger"
	"github.com/marmos91/elfdevice/pkg/config"
	"github.com/marmos91/elfdevice/pkg/fstree"
	"github.com/marmos91/elfdevice/pkg/solver"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %v: %w", fs.Name(), err, errUsage)
	}
	return nil
}

func runInit(args []string, stdout io.Writer) error {
	fs := newFlagSet("init")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	path := fs.String("path", "", "Write to this path instead of the default location")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	target := *path
	if target == "" {
		target = config.GetDefaultConfigPath()
	}
	if err := config.InitConfigToPath(target, *force); err != nil {
		return err
	}

	_, err := fmt.Fprintf(stdout, "Configuration written to %s\n", target)
	return err
}

func runSolve(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("solve")
	configPath := fs.String("config", "", "Path to config file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	rt, err := config.InitializeRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("Failed to close runtime: %v", err)
		}
	}()

	var m solver.Metrics
	if rt.Metrics.SolverMetrics != nil {
		m = rt.Metrics.SolverMetrics
	}

	runner, err := solver.NewRunner(solver.RunnerConfig{
		Inputs:  rt.Inputs,
		Results: rt.Results,
		Metrics: m,
		Params:  cfg.Solvers,
		Files:   cfg.Inputs.Files,
	})
	if err != nil {
		return err
	}

	report, runErr := runner.Run(ctx, fs.Args())
	if report != nil {
		if err := printReport(stdout, report); err != nil {
			return err
		}
	}

	if err := rt.Metrics.Push(ctx); err != nil {
		logger.Warn("%v", err)
	}

	return runErr
}

func printReport(w io.Writer, report *solver.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Run %s\n", report.RunID)
	fmt.Fprintln(tw, "PUZZLE\tPART\tANSWER\tDETAIL")
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(tw, "%s\t-\tERROR\t%v\n", o.Puzzle, o.Err)
			continue
		}
		for _, p := range o.Parts {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", o.Puzzle, p.Number, p.Value, p.Label)
		}
	}
	return tw.Flush()
}

func runResults(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("results")
	configPath := fs.String("config", "", "Path to config file")
	runID := fs.String("run", "", "Show the answers of this run")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := config.CreateResultStore(ctx, &cfg.Results)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	if *runID == "" {
		runs, err := store.ListRuns(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "RUN\tSTARTED\tANSWERS")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", r.ID, r.StartedAt.Format(time.RFC3339), r.Answers)
		}
		return tw.Flush()
	}

	id, err := uuid.Parse(*runID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %v: %w", *runID, err, errUsage)
	}
	answers, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "PUZZLE\tPART\tANSWER\tDURATION")
	for _, a := range answers {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", a.Puzzle, a.Part, a.Value, a.Duration)
	}
	return tw.Flush()
}

func runTree(args []string, stdout io.Writer) error {
	fs := newFlagSet("tree")
	configPath := fs.String("config", "", "Path to config file")
	dirs := fs.Bool("dirs", false, "List every directory with its total size")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("tree: expected one transcript file: %w", errUsage)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	params := cfg.Solvers

	arena, err := fstree.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	tree := fstree.Aggregate(arena)
	if err := tree.Verify(); err != nil {
		return err
	}

	stats := tree.Stats()
	fmt.Fprintf(stdout, "Directories: %d\nFiles: %d\nUsed: %d of %d\nMax depth: %d\n",
		stats.Directories, stats.Files, tree.Used(), params.DeviceCapacity, stats.MaxDepth)
	fmt.Fprintf(stdout, "Small directories (<= %d): %d\n",
		params.SmallDirThreshold, tree.SumSmallDirs(params.SmallDirThreshold))

	victim, err := tree.SmallestDirToFree(params.DeviceCapacity, params.RequiredFree)
	switch {
	case fstree.IsCode(err, fstree.ErrNoCandidate):
		fmt.Fprintln(stdout, "Delete: no single directory frees enough space")
	case err != nil:
		return err
	case !victim.Found:
		fmt.Fprintln(stdout, "Delete: nothing, enough space is free")
	default:
		fmt.Fprintf(stdout, "Delete: %s (%d)\n", victim.Path, victim.Size)
	}

	if !*dirs {
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, i := range tree.Directories() {
		size, err := tree.Size(i)
		if err != nil {
			return err
		}
		path, err := tree.Path(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t %s\t\n", size, path)
	}
	return tw.Flush()
}
