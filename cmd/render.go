package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/partsight/insight-cli/internal/analytics"
	"github.com/partsight/insight-cli/internal/model"
)

// section is one renderable table: analyze prints it aligned, export writes
// it as a worksheet.
type section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// renderSections formats analyzer output for humans. Numbers go through the
// message printer so thousands group per locale conventions.
func renderSections(data any) []section {
	p := message.NewPrinter(language.English)

	switch v := data.(type) {
	case *model.Summary:
		return []section{summarySection(p, v)}
	case []model.PriceAnomaly:
		return []section{anomalySection(p, v)}
	case []model.SupplierRisk:
		return []section{riskSection(p, v)}
	case []model.DeliveryForecast:
		return []section{forecastSection(p, v)}
	case []model.PartAssociation:
		return []section{associationSection(p, v)}
	case []model.SupplierSegment:
		return []section{segmentSection(p, v)}
	case []model.WeeklyTrend:
		return []section{trendSection(p, v)}
	case []model.AutomationImpact:
		return []section{automationSection(p, v)}
	case *model.CancellationAnalysis:
		return cancellationSections(p, v)
	case []model.ClaimComplexity:
		return []section{complexitySection(p, v)}
	case []model.WorkshopDemand:
		return []section{demandSection(p, v)}
	case *analytics.Dashboard:
		return dashboardSections(p, v)
	default:
		return nil
	}
}

func dashboardSections(p *message.Printer, d *analytics.Dashboard) []section {
	var out []section
	if d.Summary != nil {
		out = append(out, summarySection(p, d.Summary))
	}
	out = append(out,
		anomalySection(p, d.PriceAnomalies),
		riskSection(p, d.SupplierRisk),
		forecastSection(p, d.DeliveryForecast),
		associationSection(p, d.PartAssociations),
		segmentSection(p, d.SupplierSegments),
		trendSection(p, d.Trends),
		automationSection(p, d.AutomationImpact),
	)
	if d.Cancellations != nil {
		out = append(out, cancellationSections(p, d.Cancellations)...)
	}
	out = append(out,
		complexitySection(p, d.ClaimComplexity),
		demandSection(p, d.WorkshopDemand),
	)
	return out
}

func summarySection(p *message.Printer, s *model.Summary) section {
	return section{
		Title:   "summary",
		Headers: []string{"metric", "value"},
		Rows: [][]string{
			{"price_anomalies", p.Sprint(s.PriceAnomalies)},
			{"high_risk_suppliers", p.Sprint(s.HighRiskSuppliers)},
			{"complex_claims", p.Sprint(s.ComplexClaims)},
			{"auto_assign_rate", f1(p, s.AutoAssignRate)},
			{"auto_quote_rate", f1(p, s.AutoQuoteRate)},
		},
	}
}

func anomalySection(p *message.Printer, rows []model.PriceAnomaly) section {
	sec := section{
		Title:   "price_anomalies",
		Headers: []string{"part_type", "part", "supplier", "claim", "price", "avg_price", "std_dev", "z_score", "type"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.PartType, r.PartName, r.SupplierName, r.ClaimNumber,
			f2(p, r.Price), f2(p, r.AvgPrice), f2(p, r.StdDev), f2(p, r.ZScore),
			string(r.AnomalyType),
		})
	}
	return sec
}

func riskSection(p *message.Printer, rows []model.SupplierRisk) section {
	sec := section{
		Title:   "supplier_risk",
		Headers: []string{"supplier", "orders", "delivered", "cancelled", "supplier_cancels", "avg_days", "delivery_rate", "cancel_rate", "supplier_cancel_rate", "total_value", "score", "tier"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.SupplierName, p.Sprint(r.TotalOrders), p.Sprint(r.Delivered),
			p.Sprint(r.Cancelled), p.Sprint(r.SupplierCancels),
			optF1(p, r.AvgDeliveryDays), f1(p, r.DeliveryRate),
			f1(p, r.CancelRate), f1(p, r.SupplierCancelRate),
			f2(p, r.TotalValue), p.Sprint(r.RiskScore), string(r.RiskTier),
		})
	}
	return sec
}

func forecastSection(p *message.Printer, rows []model.DeliveryForecast) section {
	sec := section{
		Title:   "delivery_prediction",
		Headers: []string{"part_type", "samples", "avg_days", "median", "min", "max", "p25", "p75", "p90", "std_dev"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.PartType, p.Sprint(r.SampleSize), f1(p, r.AvgDays), f1(p, r.MedianDays),
			p.Sprint(r.MinDays), p.Sprint(r.MaxDays),
			f1(p, r.P25Days), f1(p, r.P75Days), f1(p, r.P90Days), f2(p, r.StdDev),
		})
	}
	return sec
}

func associationSection(p *message.Printer, rows []model.PartAssociation) section {
	sec := section{
		Title:   "part_cooccurrence",
		Headers: []string{"part_a", "part_b", "together", "a_total", "b_total", "pct_a_with_b", "pct_b_with_a", "lift"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.PartA, r.PartB, p.Sprint(r.TimesTogether),
			p.Sprint(r.PartATotal), p.Sprint(r.PartBTotal),
			f1(p, r.PctAWithB), f1(p, r.PctBWithA), f2(p, r.Lift),
		})
	}
	return sec
}

func segmentSection(p *message.Printer, rows []model.SupplierSegment) section {
	sec := section{
		Title:   "supplier_clusters",
		Headers: []string{"supplier", "orders", "delivery_rate", "avg_price", "total_value", "avg_days", "part_types", "workshops", "performance", "reach", "value", "value_share"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.SupplierName, p.Sprint(r.TotalOrders), f1(p, r.DeliveryRate),
			f2(p, r.AvgPrice), f2(p, r.TotalValue), optF1(p, r.AvgDeliveryDays),
			p.Sprint(r.PartTypesServed), p.Sprint(r.WorkshopsServed),
			string(r.PerformanceTier), string(r.ReachTier), string(r.ValueTier),
			f1(p, r.ValueSharePct),
		})
	}
	return sec
}

func trendSection(p *message.Printer, rows []model.WeeklyTrend) section {
	sec := section{
		Title:   "trends",
		Headers: []string{"week", "orders", "claims", "value", "delivered", "cancelled", "delivery_rate", "ma4", "wow"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.Week, p.Sprint(r.OrderCount), p.Sprint(r.ClaimCount), f2(p, r.TotalValue),
			p.Sprint(r.Delivered), p.Sprint(r.Cancelled),
			optF1(p, r.DeliveryRate), p.Sprint(r.MA4Orders), optInt(p, r.WowChange),
		})
	}
	return sec
}

func automationSection(p *message.Printer, rows []model.AutomationImpact) section {
	sec := section{
		Title:   "automation_impact",
		Headers: []string{"level", "orders", "pct_of_total", "delivered", "cancelled", "delivery_rate", "avg_days", "avg_price", "avg_quote_days"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			string(r.AutomationLevel), p.Sprint(r.OrderCount), f1(p, r.PctOfTotal),
			p.Sprint(r.Delivered), p.Sprint(r.Cancelled),
			optF1(p, r.DeliveryRate), optF1(p, r.AvgDeliveryDays),
			optF2(p, r.AvgPrice), optF1(p, r.AvgQuoteDays),
		})
	}
	return sec
}

func cancellationSections(p *message.Printer, c *model.CancellationAnalysis) []section {
	bySource := section{
		Title:   "cancellations_by_source",
		Headers: []string{"source", "count", "pct_of_total"},
	}
	for _, r := range c.BySource {
		bySource.Rows = append(bySource.Rows, []string{
			string(r.CancelSource), p.Sprint(r.CancelCount), f1(p, r.PctOfTotal),
		})
	}

	reasons := section{
		Title:   "cancellation_reasons",
		Headers: []string{"reason", "count"},
	}
	for _, r := range c.TopReasons {
		reasons.Rows = append(reasons.Rows, []string{r.Reason, p.Sprint(r.Count)})
	}

	bySupplier := section{
		Title:   "cancellations_by_supplier",
		Headers: []string{"supplier", "orders", "cancelled", "cancel_rate"},
	}
	for _, r := range c.BySupplier {
		bySupplier.Rows = append(bySupplier.Rows, []string{
			r.SupplierName, p.Sprint(r.TotalOrders), p.Sprint(r.Cancelled), f1(p, r.CancelRate),
		})
	}

	return []section{bySource, reasons, bySupplier}
}

func complexitySection(p *message.Printer, rows []model.ClaimComplexity) section {
	sec := section{
		Title:   "claim_complexity",
		Headers: []string{"claim", "parts", "part_types", "suppliers", "value", "delivered", "cancelled", "avg_days", "cycle_days", "fulfillment_rate", "score", "tier"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.ClaimNumber, p.Sprint(r.PartCount), p.Sprint(r.UniquePartTypes),
			p.Sprint(r.UniqueSuppliers), f2(p, r.TotalValue),
			p.Sprint(r.Delivered), p.Sprint(r.Cancelled),
			optF1(p, r.AvgDeliveryDays), optInt(p, r.CycleTimeDays),
			f1(p, r.FulfillmentRate), p.Sprint(r.ComplexityScore), string(r.ComplexityTier),
		})
	}
	return sec
}

func demandSection(p *message.Printer, rows []model.WorkshopDemand) section {
	sec := section{
		Title:   "workshop_demand",
		Headers: []string{"workshop", "active_weeks", "orders", "avg_weekly", "std", "value", "volatility", "pattern"},
	}
	for _, r := range rows {
		sec.Rows = append(sec.Rows, []string{
			r.WorkshopName, p.Sprint(r.ActiveWeeks), p.Sprint(r.TotalOrders),
			f1(p, r.AvgWeeklyOrders), f2(p, r.StdOrders), f2(p, r.TotalValue),
			optF2(p, r.Volatility), string(r.DemandPattern),
		})
	}
	return sec
}

func f1(p *message.Printer, v float64) string { return p.Sprintf("%.1f", v) }

func f2(p *message.Printer, v float64) string { return p.Sprintf("%.2f", v) }

func optF1(p *message.Printer, v *float64) string {
	if v == nil {
		return "-"
	}
	return f1(p, *v)
}

func optF2(p *message.Printer, v *float64) string {
	if v == nil {
		return "-"
	}
	return f2(p, *v)
}

func optInt(p *message.Printer, v *int) string {
	if v == nil {
		return "-"
	}
	return p.Sprint(*v)
}
