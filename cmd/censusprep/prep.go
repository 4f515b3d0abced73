package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Veraticus/census-prep/internal/cli"
	"github.com/Veraticus/census-prep/internal/config"
	"github.com/Veraticus/census-prep/internal/csvio"
	"github.com/Veraticus/census-prep/internal/engine"
	"github.com/Veraticus/census-prep/internal/merge"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/Veraticus/census-prep/internal/plot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func prepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prep",
		Short: "Annotate event tables with census probabilities",
		Long: `Run the preparation pipeline.

The census table is normalized to the customer vocabulary and averaged per
demographic group. Each customer's latest record is matched to its group and
the resulting probabilities are joined onto every --output table by
CUSTOMER_ID. Customers without a matching group are dropped from the outputs.

In train mode the per-attribute averages are plotted before matching.`,
		Example: `  censusprep prep --census census.csv --customers customers.csv \
    --output migration=events/migration.csv --output birth=events/birth.csv \
    --out-dir prepared --mode train --save`,
		RunE: runPrep,
	}

	cmd.Flags().String("census", "", "census CSV file")
	cmd.Flags().String("customers", "", "customer CSV file")
	cmd.Flags().StringArrayP("output", "o", nil, "event table to annotate, as name=path (repeatable)")
	cmd.Flags().String("out-dir", ".", "directory for annotated tables")
	cmd.Flags().String("mode", string(model.ModeScore), "pipeline mode (train, score)")
	cmd.Flags().String("census-out", "", "also write the aggregated census table to this file")
	cmd.Flags().Int("plot-width", 40, "bar width of train-mode plots")
	cmd.Flags().Bool("save", false, "record the run in the history database")

	_ = viper.BindPFlag(config.KeyOutDir, cmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag(config.KeyMode, cmd.Flags().Lookup("mode"))

	return cmd
}

func runPrep(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	censusPath, _ := cmd.Flags().GetString("census")
	customersPath, _ := cmd.Flags().GetString("customers")
	outputSpecs, _ := cmd.Flags().GetStringArray("output")
	censusOut, _ := cmd.Flags().GetString("census-out")
	plotWidth, _ := cmd.Flags().GetInt("plot-width")
	save, _ := cmd.Flags().GetBool("save")

	outputPaths, err := parseOutputs(outputSpecs)
	if err != nil {
		return err
	}

	censusTable, err := readTable("census", censusPath)
	if err != nil {
		return err
	}
	customerTable, err := readTable("customers", customersPath)
	if err != nil {
		return err
	}
	outputs := make(map[string]*model.Table, len(outputPaths))
	for name, path := range outputPaths {
		if outputs[name], err = readTable("output "+name, path); err != nil {
			return err
		}
	}

	var opts []engine.Option
	if cfg.Mode == model.ModeTrain {
		fmt.Fprintln(out, cli.FormatTitle("Census probabilities by attribute"))
		opts = append(opts, engine.WithPlotter(plot.NewBarPlotter(out, plot.WithWidth(plotWidth))))
	}
	eng, err := newEngine(cfg, opts...)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := eng.Run(ctx, engine.Input{
		Census:    censusTable,
		Customers: customerTable,
		Outputs:   outputs,
		Mode:      cfg.Mode,
	})
	if err != nil {
		return fmt.Errorf("preparation failed: %w", err)
	}
	for _, line := range merge.Describe(outputs, res.Outputs) {
		slog.Debug("Annotated output", "summary", line)
	}

	written, err := writeOutputs(out, handler, cfg, res)
	if err != nil {
		return err
	}
	if censusOut != "" {
		path := config.ExpandPath(censusOut)
		if err := csvio.WriteFile(path, model.CensusToTable(res.Census)); err != nil {
			return fmt.Errorf("failed to write aggregated census: %w", err)
		}
		handler.Written(path)
	}

	fmt.Fprintln(out, cli.RenderSummary(res, written))

	if !save {
		return nil
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := newRun(res, started, censusPath, customersPath)
	if err := store.SaveRun(ctx, run, res.Probabilities); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Saved run "+run.ID))
	return nil
}

func writeOutputs(w io.Writer, handler *cli.InterruptHandler, cfg *config.Config, res *engine.Result) (map[string]string, error) {
	names := make([]string, 0, len(res.Outputs))
	for name := range res.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make(map[string]string, len(names))
	if len(names) == 0 {
		return written, nil
	}

	bar := cli.NewProgress(w, len(names), "Writing outputs...")
	for _, name := range names {
		path := cfg.OutputPath(name)
		if err := csvio.WriteFile(path, res.Outputs[name]); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		handler.Written(path)
		written[name] = path
		_ = bar.Add(1)
	}
	return written, nil
}

func newRun(res *engine.Result, started time.Time, censusPath, customersPath string) *model.Run {
	s := res.Stats
	return &model.Run{
		StartedAt:       started,
		Mode:            res.Mode,
		CensusPath:      censusPath,
		CustomersPath:   customersPath,
		CensusRows:      s.CensusRows,
		AggregatedRows:  s.AggregatedRows,
		CustomerRows:    s.CustomerRows,
		LatestCustomers: s.LatestCustomers,
		MatchedRows:     s.Coverage.Matched,
		UnmatchedRows:   len(s.Coverage.Unmatched),
		FilledValues:    s.FilledValues,
		Outputs:         s.OutputRowsAfter,
	}
}
