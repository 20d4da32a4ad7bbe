package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/elfdevice/internal/logger"
	"github.com/marmos91/elfdevice/pkg/config"
)

const usage = `elfdevice - handheld device puzzle solvers

Usage:
  elfdevice init [--force]                       Write a default config file
  elfdevice solve [--config path] [puzzle...]    Solve puzzles and record answers
  elfdevice results [--config path] [--run id]   List runs or show one run
  elfdevice tree [--config path] [--dirs] <file> Analyze a terminal transcript

Puzzles: calories, strategy, rucksack, sections, crates, signal, filesystem
`

// errUsage marks errors caused by bad command line arguments.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Fatalf("elfdevice: %v", err)
	}
}

// run dispatches a subcommand. Output meant for the user goes to stdout;
// diagnostics go through the logger.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command: %w", errUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "init":
		return runInit(rest, stdout)
	case "solve":
		return runSolve(ctx, rest, stdout)
	case "results":
		return runResults(ctx, rest, stdout)
	case "tree":
		return runTree(rest, stdout)
	case "help", "-h", "--help":
		_, err := fmt.Fprint(stdout, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// loadConfig loads the configuration and applies its logging section.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	logger.Debug("Log level set to: %s", cfg.Logging.Level)
	return cfg, nil
}
