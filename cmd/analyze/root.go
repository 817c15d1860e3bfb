package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/guttosm/packing-report/internal/logger"
	"github.com/guttosm/packing-report/internal/report"
	"github.com/guttosm/packing-report/internal/service"
	"github.com/spf13/cobra"
)

type options struct {
	sizeOrder  []int
	title      string
	chartTitle string
	noFormulas bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "analyze <source_file> [output_file]",
		Short: "Build the size, lot and location analysis of a packing list",
		Long: `Reads the DATA sheet of a packing list workbook and writes an analysis
workbook with a size summary, a lot breakdown and a production location
breakdown. The output defaults to <source>_ANALYSIS.xlsx next to the source.`,
		Example:       `  analyze "PACKING LIST 14.xlsx"`,
		Args:          usageOnError(cobra.RangeArgs(1, 2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return err
	})

	flags := cmd.Flags()
	flags.IntSliceVar(&opts.sizeOrder, "size-order", nil, "comma separated size order (default: built-in order)")
	flags.StringVar(&opts.title, "title", "", "summary sheet title")
	flags.StringVar(&opts.chartTitle, "chart-title", "", "pie chart title")
	flags.BoolVar(&opts.noFormulas, "no-formulas", false, "write precomputed totals instead of SUM formulas")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

// usageOnError prints usage when the positional arguments are wrong. Errors
// raised while analyzing are reported without it.
func usageOnError(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			cmd.PrintErrln(cmd.UsageString())
			return err
		}
		return nil
	}
}

// execute runs cmd with args and reports any error on stderr.
func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	if err != nil {
		cmd.PrintErrln("Error:", err)
	}
	return err
}

func runAnalyze(ctx context.Context, out io.Writer, opts *options, args []string) error {
	logger.Init(opts.logLevel, true)

	source := args[0]
	data, err := os.ReadFile(source)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("source file %q not found", source)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	output := filepath.Join(filepath.Dir(source), report.OutputFilename(filepath.Base(source)))
	if len(args) > 1 {
		output = args[1]
	}

	reportOpts := report.DefaultOptions()
	if opts.title != "" {
		reportOpts.Title = opts.title
	}
	if opts.chartTitle != "" {
		reportOpts.ChartTitle = opts.chartTitle
	}
	reportOpts.FormulaTotals = !opts.noFormulas

	var sizeOrder []int
	if len(opts.sizeOrder) > 0 {
		if sizeOrder, err = service.ValidateSizeOrder(opts.sizeOrder); err != nil {
			return err
		}
	}

	analyzer := service.NewAnalysisService(service.WithReportOptions(reportOpts))
	result, err := analyzer.Analyze(ctx, service.AnalyzeInput{
		Data:      data,
		Filename:  filepath.Base(source),
		SizeOrder: sizeOrder,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, result.Report, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	summary := result.Analysis.Summary
	fmt.Fprintf(out, "Analysis file created: %s\n", output)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "Total boxes: %d\n", summary.GrandTotal)
	for _, c := range summary.Categories {
		fmt.Fprintf(out, "Total %s: %d\n", c, summary.CategoryTotals[c])
	}
	if n := len(result.Analysis.Coercion.UnknownCategories); n > 0 {
		fmt.Fprintf(out, "Unknown categories: %v\n", result.Analysis.Coercion.UnknownCategories)
	}
	return nil
}
