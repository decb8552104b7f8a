package analytics

import (
	"time"

	"github.com/partsight/insight-cli/internal/config"
)

// testCfg returns the default analyzer thresholds used across the package
// tests. Individual tests override fields where a tighter cap or floor makes
// the behavior easier to exercise.
func testCfg() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		AnomalyZCutoff:   2.0,
		AnomalyMinSample: 10,
		AnomalyMaxRows:   50,

		RiskMinOrders: 5,
		RiskMaxRows:   50,

		ForecastMinSample: 10,

		AssocMinCoCount: 5,
		AssocMaxRows:    30,

		SegmentMinOrders:   10,
		KeyAccountSharePct: 10,
		GrowthSharePct:     2,

		TrendMonths: 6,

		DemandMonths:   3,
		DemandMinWeeks: 4,
		DemandMaxRows:  50,

		ComplexityMaxRows: 50,

		CancelSupplierMinOrders: 20,
		CancelReasonMaxRows:     10,
		CancelSupplierMaxRows:   20,

		AnalyzerTimeoutSecs: 10,
	}
}

func i64p(v int64) *int64 { return &v }

func f64p(v float64) *float64 { return &v }

func strp(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayp(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}
