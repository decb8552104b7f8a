package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/partsight/insight-cli/internal/analytics"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/store"
)

var patternNames = []string{
	"summary",
	"price-anomalies",
	"supplier-risk",
	"delivery-prediction",
	"part-cooccurrence",
	"supplier-clusters",
	"trends",
	"automation-impact",
	"cancellation-analysis",
	"claim-complexity",
	"workshop-demand",
	"dashboard",
}

var (
	analyzeInsurer int64
	analyzeStart   string
	analyzeEnd     string
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:       "analyze <pattern>",
	Short:     "Run one analysis pattern and print the result",
	Long:      "Runs a single analyzer against the order history.\n\nPatterns: " + strings.Join(patternNames, ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: patternNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		source, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer source.Close()

		engine := analytics.NewEngine(source, cfg.Analytics)
		data, err := runPattern(ctx, engine, args[0], filter)
		if err != nil {
			return err
		}

		if analyzeJSON {
			return printJSON(cmd, data)
		}
		printSections(cmd, renderSections(data))
		return nil
	},
}

func buildFilter() (model.FilterSpec, error) {
	var filter model.FilterSpec
	if analyzeInsurer != 0 {
		filter.InsurerID = &analyzeInsurer
	}
	if analyzeStart != "" {
		t, err := time.Parse("2006-01-02", analyzeStart)
		if err != nil {
			return filter, eris.Wrap(err, "cmd: parse --start")
		}
		filter.StartDate = &t
	}
	if analyzeEnd != "" {
		t, err := time.Parse("2006-01-02", analyzeEnd)
		if err != nil {
			return filter, eris.Wrap(err, "cmd: parse --end")
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func runPattern(ctx context.Context, engine *analytics.Engine, pattern string, filter model.FilterSpec) (any, error) {
	switch pattern {
	case "summary":
		return engine.Summary(ctx, filter)
	case "price-anomalies":
		return engine.PriceAnomalies(ctx, filter)
	case "supplier-risk":
		return engine.SupplierRisk(ctx, filter)
	case "delivery-prediction":
		return engine.DeliveryForecast(ctx, filter)
	case "part-cooccurrence":
		return engine.PartAssociations(ctx, filter)
	case "supplier-clusters":
		return engine.SupplierSegments(ctx, filter)
	case "trends":
		return engine.Trends(ctx, filter)
	case "automation-impact":
		return engine.AutomationImpact(ctx, filter)
	case "cancellation-analysis":
		return engine.Cancellations(ctx, filter)
	case "claim-complexity":
		return engine.ClaimComplexity(ctx, filter)
	case "workshop-demand":
		return engine.WorkshopDemand(ctx, filter)
	case "dashboard":
		return engine.Dashboard(ctx, filter)
	default:
		return nil, eris.Errorf("cmd: unknown pattern %q", pattern)
	}
}

func printJSON(cmd *cobra.Command, data any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return eris.Wrap(err, "cmd: encode result")
	}
	return nil
}

func printSections(cmd *cobra.Command, sections []section) {
	out := cmd.OutOrStdout()
	for i, sec := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%d rows)\n", sec.Title, len(sec.Rows))

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(sec.Headers, "\t"))
		for _, row := range sec.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		tw.Flush()
	}
}

func init() {
	analyzeCmd.Flags().Int64Var(&analyzeInsurer, "insurer", 0, "restrict to one insurer by ID")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "earliest order date (YYYY-MM-DD)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "latest order date, inclusive (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit JSON instead of tables")
	rootCmd.AddCommand(analyzeCmd)
}
