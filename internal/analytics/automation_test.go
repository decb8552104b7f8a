package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsight/insight-cli/internal/model"
)

func TestClassifyAutomation(t *testing.T) {
	cases := []struct {
		assigned, quoted bool
		want             model.AutomationLevel
	}{
		{true, true, model.AutomationFull},
		{true, false, model.AutomationAssignOnly},
		{false, true, model.AutomationQuoteOnly},
		{false, false, model.AutomationManual},
	}
	for _, tc := range cases {
		f := model.OrderFact{IsAutoAssigned: tc.assigned, IsAutoQuoted: tc.quoted}
		assert.Equal(t, tc.want, ClassifyAutomation(&f))
	}
}

func TestAnalyzeAutomationImpact_LevelsPartitionOrders(t *testing.T) {
	// 4 FULL_AUTO, 3 AUTO_ASSIGN_ONLY, 2 AUTO_QUOTE_ONLY, 1 MANUAL. The
	// levels are mutually exclusive, so the counts sum to the fact count.
	var facts []model.OrderFact
	add := func(n int, assigned, quoted bool) {
		for i := 0; i < n; i++ {
			facts = append(facts, model.OrderFact{IsAutoAssigned: assigned, IsAutoQuoted: quoted})
		}
	}
	add(4, true, true)
	add(3, true, false)
	add(2, false, true)
	add(1, false, false)

	out := AnalyzeAutomationImpact(facts)

	require.Len(t, out, 4)
	total := 0
	for _, row := range out {
		total += row.OrderCount
	}
	assert.Equal(t, len(facts), total)

	// Ordered by count descending.
	assert.Equal(t, model.AutomationFull, out[0].AutomationLevel)
	assert.Equal(t, 4, out[0].OrderCount)
	assert.Equal(t, 40.0, out[0].PctOfTotal)
	assert.Equal(t, model.AutomationManual, out[3].AutomationLevel)
	assert.Equal(t, 10.0, out[3].PctOfTotal)
}

func TestAnalyzeAutomationImpact_OutcomeMetrics(t *testing.T) {
	facts := []model.OrderFact{
		{
			IsAutoAssigned: true,
			IsAutoQuoted:   true,
			StatusCategory: model.StatusComplete,
			OrderDate:      dayp(2026, 3, 1),
			DeliveryDate:   dayp(2026, 3, 3),
			Price:          100,
			QuoteDays:      f64p(0.5),
		},
		{
			IsAutoAssigned: true,
			IsAutoQuoted:   true,
			StatusCategory: model.StatusComplete,
			OrderDate:      dayp(2026, 3, 1),
			DeliveryDate:   dayp(2026, 3, 5),
			Price:          300,
			QuoteDays:      f64p(1.5),
		},
		{
			IsAutoAssigned: true,
			IsAutoQuoted:   true,
			StatusCategory: model.StatusCancelled,
		},
	}

	out := AnalyzeAutomationImpact(facts)

	require.Len(t, out, 1)
	row := out[0]
	assert.Equal(t, 3, row.OrderCount)
	assert.Equal(t, 2, row.Delivered)
	assert.Equal(t, 1, row.Cancelled)
	require.NotNil(t, row.DeliveryRate)
	assert.Equal(t, 66.7, *row.DeliveryRate)
	// Durations 2 and 4 days -> 3.0.
	require.NotNil(t, row.AvgDeliveryDays)
	assert.Equal(t, 3.0, *row.AvgDeliveryDays)
	// Priced orders only: (100+300)/2.
	require.NotNil(t, row.AvgPrice)
	assert.Equal(t, 200.0, *row.AvgPrice)
	require.NotNil(t, row.AvgQuoteDays)
	assert.Equal(t, 1.0, *row.AvgQuoteDays)
}

func TestAnalyzeAutomationImpact_NullableAverages(t *testing.T) {
	// No completed deliveries, no prices, no quote times: those averages
	// stay nil instead of reading as zero.
	facts := []model.OrderFact{
		{StatusCategory: model.StatusPending},
		{StatusCategory: model.StatusCancelled},
	}

	out := AnalyzeAutomationImpact(facts)

	require.Len(t, out, 1)
	assert.Nil(t, out[0].AvgDeliveryDays)
	assert.Nil(t, out[0].AvgPrice)
	assert.Nil(t, out[0].AvgQuoteDays)
	require.NotNil(t, out[0].DeliveryRate)
	assert.Equal(t, 0.0, *out[0].DeliveryRate)
}

func TestAnalyzeAutomationImpact_Empty(t *testing.T) {
	assert.Empty(t, AnalyzeAutomationImpact(nil))
}
