package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"heredity/adapters/excel"
	"heredity/adapters/memory"
	"heredity/app"
	"heredity/domain/genetics"
	"heredity/internal"
	"heredity/internal/inference"
	"heredity/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "heredity",
		Short:         "Exact posterior inference of gene copies and traits in a family",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInferCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type inferOptions struct {
	format        string
	workers       int
	maxPopulation int
	logLevel      string
}

func newInferCmd() *cobra.Command {
	opts := inferOptions{}

	cmd := &cobra.Command{
		Use:   "infer [data.csv|data.xlsx]",
		Short: "Compute gene and trait posteriors for every person in a family file",
		Long: `Compute gene and trait posteriors for every person in a family file.

The file needs the columns name, mother, father and trait. A blank mother and
father marks a founder. trait is 1, 0 or blank when unobserved.

Example: heredity infer data/family0.csv --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, markdown or json")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent trait partitions (0 uses every CPU)")
	cmd.Flags().IntVar(&opts.maxPopulation, "max-population", inference.DefaultMaxPopulation, "Largest family accepted for exact enumeration")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "WARN", "Log level written to stderr")

	return cmd
}

func runInfer(ctx context.Context, out io.Writer, path string, opts inferOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch opts.format {
	case "text", "markdown", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", opts.format)
	}

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(opts.logLevel))

	engineOpts := []inference.Option{
		inference.WithMaxPopulation(opts.maxPopulation),
		inference.WithLogger(logger),
	}
	if opts.workers > 0 {
		engineOpts = append(engineOpts, inference.WithWorkers(opts.workers))
	}

	engine := inference.NewEngine(genetics.DefaultTables(), engineOpts...)
	service := app.NewInferenceService(engine, memory.NewRunRepository(), logger)

	run, err := service.InferFrom(ctx, path, excel.NewFamilyReader(path))
	if err != nil {
		return err
	}

	switch opts.format {
	case "markdown":
		_, err = out.Write(report.Markdown(run))
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	default:
		return report.WriteText(out, run.Result())
	}
}
