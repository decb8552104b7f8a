// Package analytics implements the pattern-recognition layer over the
// part-order fact stream: price anomalies, supplier risk, delivery-time
// forecasts, part associations, supplier segmentation, weekly trends,
// automation impact, and the supplemental cancellation / complexity /
// workshop-demand views.
//
// Every analyzer is a pure, stateless function over an in-memory record
// set fetched once per request. Groups that fail a minimum-sample or
// zero-variance precondition are silently omitted; empty input yields empty
// output, never an error.
package analytics

import (
	"github.com/partsight/insight-cli/internal/stats"
)

// unknownLabel substitutes for missing dimension names in output rows.
const unknownLabel = "Unknown"

func displayName(name string) string {
	if name == "" {
		return unknownLabel
	}
	return name
}

// pct returns numer/denom as a percentage rounded to one decimal.
// Callers guard denom > 0.
func pct(numer, denom int) float64 {
	return stats.Round(float64(numer)*100/float64(denom), 1)
}

func round1(x float64) float64 { return stats.Round(x, 1) }
func round2(x float64) float64 { return stats.Round(x, 2) }

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
