package analytics

import (
	"sort"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/stats"
)

// MinePartAssociations runs the market-basket analysis: which part types are
// ordered together within the same claim. Pairs are unordered (a < b by
// part-type id) so each claim contributes a pair at most once. Pairs below
// the co-occurrence noise floor are excluded.
//
// Lift is the scaled variant co_count^2 / (support_a * support_b) * 1000,
// not the textbook P(a,b)/(P(a)P(b)); the scaling constant is preserved for
// output comparability.
func MinePartAssociations(facts []model.OrderFact, cfg config.AnalyticsConfig) []model.PartAssociation {
	// Claim part-type sets.
	claimParts := make(map[int64]map[int64]struct{})
	names := make(map[int64]string)
	for i := range facts {
		f := &facts[i]
		if f.ClaimID == nil || f.PartTypeID == nil {
			continue
		}
		set := claimParts[*f.ClaimID]
		if set == nil {
			set = make(map[int64]struct{})
			claimParts[*f.ClaimID] = set
		}
		set[*f.PartTypeID] = struct{}{}
		if names[*f.PartTypeID] == "" {
			names[*f.PartTypeID] = f.PartType
		}
	}

	// Supports and pair co-occurrence counts over distinct claims.
	support := make(map[int64]int)
	type pairKey struct{ a, b int64 }
	coCount := make(map[pairKey]int)

	for _, set := range claimParts {
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for i, a := range ids {
			support[a]++
			for _, b := range ids[i+1:] {
				coCount[pairKey{a, b}]++
			}
		}
	}

	var out []model.PartAssociation
	for key, co := range coCount {
		if co < cfg.AssocMinCoCount {
			continue
		}
		supA, supB := support[key.a], support[key.b]
		lift := float64(co) * float64(co) / (float64(supA) * float64(supB)) * 1000
		out = append(out, model.PartAssociation{
			PartA:         displayName(names[key.a]),
			PartB:         displayName(names[key.b]),
			TimesTogether: co,
			PartATotal:    supA,
			PartBTotal:    supB,
			PctAWithB:     pct(co, supA),
			PctBWithA:     pct(co, supB),
			Lift:          stats.Round(lift, 2),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimesTogether != out[j].TimesTogether {
			return out[i].TimesTogether > out[j].TimesTogether
		}
		if out[i].PartA != out[j].PartA {
			return out[i].PartA < out[j].PartA
		}
		return out[i].PartB < out[j].PartB
	})
	if len(out) > cfg.AssocMaxRows {
		out = out[:cfg.AssocMaxRows]
	}
	return out
}
