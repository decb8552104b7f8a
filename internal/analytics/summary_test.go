package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsight/insight-cli/internal/model"
)

func TestSummarize_HeadlineCounters(t *testing.T) {
	var facts []model.OrderFact

	// One price anomaly: eleven bumpers at 100, one at 1000.
	for i := 0; i < 11; i++ {
		facts = append(facts, pricedFact(1, "Bumper", 100))
	}
	facts = append(facts, pricedFact(1, "Bumper", 1000))

	// One high-risk supplier: 12 orders, 2 cancelled = 16.7% > 15%.
	for i := 0; i < 10; i++ {
		facts = append(facts, model.OrderFact{
			SupplierID: i64p(1), SupplierName: "Flaky", StatusCategory: model.StatusComplete,
		})
	}
	for i := 0; i < 2; i++ {
		facts = append(facts, model.OrderFact{
			SupplierID: i64p(1), SupplierName: "Flaky", StatusCategory: model.StatusCancelled,
		})
	}

	// One complex claim: nine parts across five suppliers.
	for i := 0; i < 9; i++ {
		facts = append(facts, model.OrderFact{
			ClaimID:    i64p(1),
			SupplierID: i64p(int64(i%5 + 10)),
		})
	}

	out := Summarize(facts, testCfg())

	assert.Equal(t, 1, out.PriceAnomalies)
	assert.Equal(t, 1, out.HighRiskSuppliers)
	assert.Equal(t, 1, out.ComplexClaims)
}

func TestSummarize_StricterSupplierFloor(t *testing.T) {
	// 9 orders with a 22% cancel rate: the risk scorer would rank this
	// supplier, but the headline counter requires ten orders.
	var facts []model.OrderFact
	for i := 0; i < 7; i++ {
		facts = append(facts, model.OrderFact{
			SupplierID: i64p(1), SupplierName: "Small", StatusCategory: model.StatusComplete,
		})
	}
	for i := 0; i < 2; i++ {
		facts = append(facts, model.OrderFact{
			SupplierID: i64p(1), SupplierName: "Small", StatusCategory: model.StatusCancelled,
		})
	}

	out := Summarize(facts, testCfg())

	assert.Equal(t, 0, out.HighRiskSuppliers)
	require.Len(t, ScoreSupplierRisk(facts, testCfg()), 1)
}

func TestSummarize_AutomationRates(t *testing.T) {
	// 3 of 4 auto-assigned, 1 of 4 auto-quoted.
	facts := []model.OrderFact{
		{IsAutoAssigned: true, IsAutoQuoted: true},
		{IsAutoAssigned: true},
		{IsAutoAssigned: true},
		{},
	}

	out := Summarize(facts, testCfg())

	assert.Equal(t, 75.0, out.AutoAssignRate)
	assert.Equal(t, 25.0, out.AutoQuoteRate)
}

func TestSummarize_Empty(t *testing.T) {
	out := Summarize(nil, testCfg())

	require.NotNil(t, out)
	assert.Equal(t, 0, out.PriceAnomalies)
	assert.Equal(t, 0.0, out.AutoAssignRate)
}
