package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsight/insight-cli/internal/model"
)

func claimPart(claimID, partTypeID int64, partType string) model.OrderFact {
	return model.OrderFact{
		ClaimID:    i64p(claimID),
		PartTypeID: i64p(partTypeID),
		PartType:   partType,
	}
}

func TestMinePartAssociations_PairMetrics(t *testing.T) {
	// Claims 1-6 contain both Bumper (type 1) and Headlight (type 2);
	// claims 7-8 contain Bumper alone.
	// support(Bumper) = 8, support(Headlight) = 6, co = 6
	// lift = 6^2 / (8*6) * 1000 = 750
	// pct_a_with_b = 6/8 = 75%, pct_b_with_a = 6/6 = 100%
	var facts []model.OrderFact
	for c := int64(1); c <= 6; c++ {
		facts = append(facts, claimPart(c, 1, "Bumper"), claimPart(c, 2, "Headlight"))
	}
	facts = append(facts, claimPart(7, 1, "Bumper"), claimPart(8, 1, "Bumper"))

	out := MinePartAssociations(facts, testCfg())

	require.Len(t, out, 1)
	p := out[0]
	assert.Equal(t, "Bumper", p.PartA)
	assert.Equal(t, "Headlight", p.PartB)
	assert.Equal(t, 6, p.TimesTogether)
	assert.Equal(t, 8, p.PartATotal)
	assert.Equal(t, 6, p.PartBTotal)
	assert.Equal(t, 75.0, p.PctAWithB)
	assert.Equal(t, 100.0, p.PctBWithA)
	assert.Equal(t, 750.0, p.Lift)
	// A pair can never co-occur more often than its rarer member appears.
	assert.LessOrEqual(t, p.TimesTogether, p.PartATotal)
	assert.LessOrEqual(t, p.TimesTogether, p.PartBTotal)
}

func TestMinePartAssociations_NoiseFloor(t *testing.T) {
	// support(A) = 4, support(B) = 3, co = 2: below the five-claim floor.
	var facts []model.OrderFact
	facts = append(facts, claimPart(1, 1, "Bumper"), claimPart(1, 2, "Headlight"))
	facts = append(facts, claimPart(2, 1, "Bumper"), claimPart(2, 2, "Headlight"))
	facts = append(facts, claimPart(3, 1, "Bumper"))
	facts = append(facts, claimPart(4, 1, "Bumper"))
	facts = append(facts, claimPart(5, 2, "Headlight"))

	assert.Empty(t, MinePartAssociations(facts, testCfg()))
}

func TestMinePartAssociations_DistinctClaimsOnly(t *testing.T) {
	// Duplicate part-type rows within one claim count once: five claims
	// with two Bumper rows and one Headlight row each still yield co = 5,
	// support(Bumper) = 5.
	var facts []model.OrderFact
	for c := int64(1); c <= 5; c++ {
		facts = append(facts,
			claimPart(c, 1, "Bumper"),
			claimPart(c, 1, "Bumper"),
			claimPart(c, 2, "Headlight"),
		)
	}

	out := MinePartAssociations(facts, testCfg())

	require.Len(t, out, 1)
	assert.Equal(t, 5, out[0].TimesTogether)
	assert.Equal(t, 5, out[0].PartATotal)
	assert.Equal(t, 5, out[0].PartBTotal)
	// lift = 25 / 25 * 1000
	assert.Equal(t, 1000.0, out[0].Lift)
}

func TestMinePartAssociations_PairOrderedByTypeID(t *testing.T) {
	// PartA is always the lower part-type id regardless of row order or
	// lexicographic name order.
	var facts []model.OrderFact
	for c := int64(1); c <= 5; c++ {
		facts = append(facts, claimPart(c, 2, "Axle"), claimPart(c, 1, "Wing"))
	}

	out := MinePartAssociations(facts, testCfg())

	require.Len(t, out, 1)
	assert.Equal(t, "Wing", out[0].PartA)
	assert.Equal(t, "Axle", out[0].PartB)
}

func TestMinePartAssociations_MissingDimensionsSkipped(t *testing.T) {
	facts := []model.OrderFact{
		{ClaimID: i64p(1)},
		{PartTypeID: i64p(1), PartType: "Bumper"},
	}
	assert.Empty(t, MinePartAssociations(facts, testCfg()))
}

func TestMinePartAssociations_Capped(t *testing.T) {
	// Three part types pairwise together in five claims each produce three
	// pairs; a cap of 2 keeps the top two by co-count (here equal, so the
	// name tiebreak applies).
	var facts []model.OrderFact
	for c := int64(1); c <= 5; c++ {
		facts = append(facts,
			claimPart(c, 1, "A"),
			claimPart(c, 2, "B"),
			claimPart(c, 3, "C"),
		)
	}

	cfg := testCfg()
	cfg.AssocMaxRows = 2
	out := MinePartAssociations(facts, cfg)

	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].PartA)
	assert.Equal(t, "B", out[0].PartB)
	assert.Equal(t, "A", out[1].PartA)
	assert.Equal(t, "C", out[1].PartB)
}
