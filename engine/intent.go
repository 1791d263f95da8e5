package engine

import (
	"sort"

	"github.com/tseward/overmind/model"
)

// Focus is the primary behavioral stance for one turn.
type Focus string

const (
	FocusMilitary  Focus = "military"
	FocusEconomic  Focus = "economic"
	FocusCovert    Focus = "covert"
	FocusExpansion Focus = "expansion"
	FocusDefensive Focus = "defensive"
	FocusBalanced  Focus = "balanced"
)

// StrategicIntent is the derived short-term stance guiding one turn's
// scoring. Recomputed fresh each turn from the goal and faction state;
// never persisted.
type StrategicIntent struct {
	Focus           Focus
	Aggression      int    // 0–100
	TargetRival     string // faction id, empty when no rivals exist
	PrioritySystems []string
}

// focusForGoal maps goal categories onto primary focuses.
var focusForGoal = map[model.GoalType]Focus{
	model.GoalMilitaryConquest:     FocusMilitary,
	model.GoalBloodTheEnemy:        FocusMilitary,
	model.GoalDestroyTheFoe:        FocusMilitary,
	model.GoalInvincibleValor:      FocusMilitary,
	model.GoalCommercialExpansion:  FocusEconomic,
	model.GoalWealthOfWorlds:       FocusEconomic,
	model.GoalIntelligenceCoup:     FocusCovert,
	model.GoalInsideEnemyTerritory: FocusCovert,
	model.GoalExpandInfluence:      FocusExpansion,
	model.GoalPlanetarySeizure:     FocusExpansion,
	model.GoalPeaceableKingdom:     FocusDefensive,
}

// eliminationGoals target the weakest rival; everything else watches the
// strongest.
var eliminationGoals = map[model.GoalType]bool{
	model.GoalDestroyTheFoe:    true,
	model.GoalMilitaryConquest: true,
}

// DeriveIntent computes the faction's strategic intent for this turn.
// Aggression starts at 50, shifts by the owned tags' aggression deltas,
// and drops as the faction takes hull damage.
func (e *Engine) DeriveIntent(w *model.WorldSnapshot, f *model.Faction, goal *model.Goal) StrategicIntent {
	intent := StrategicIntent{Focus: FocusBalanced}

	aggression := 50 + tagAggressionDelta(f)
	ratio := f.HPRatio()
	if ratio < 0.5 {
		aggression -= 15
	}
	if ratio < 0.3 {
		aggression -= 15
	}
	intent.Aggression = clampInt(aggression, 0, 100)

	if goal != nil {
		if focus, ok := focusForGoal[goal.Type]; ok {
			intent.Focus = focus
		}
	}

	rivals := w.Rivals(f.ID)
	var target *model.Faction
	if goal != nil && eliminationGoals[goal.Type] {
		target = weakestRival(rivals)
	} else {
		target = strongestRival(rivals)
	}
	if target != nil {
		intent.TargetRival = target.ID
	}

	intent.PrioritySystems = e.prioritySystems(w, f, target)
	return intent
}

// prioritySystems ranks systems by the faction's stake in them: systems
// where the target rival operates first, then own holdings by local asset
// count. At most five entries.
func (e *Engine) prioritySystems(w *model.WorldSnapshot, f *model.Faction, target *model.Faction) []string {
	type stake struct {
		system string
		weight int
	}
	var stakes []stake

	seen := map[string]bool{}
	if target != nil {
		for _, sys := range target.Systems() {
			if !seen[sys] {
				seen[sys] = true
				stakes = append(stakes, stake{system: sys, weight: 20 + len(target.AssetsIn(sys))})
			}
		}
	}
	for _, sys := range f.Systems() {
		if !seen[sys] {
			seen[sys] = true
			weight := len(f.AssetsIn(sys))
			if sys == f.HomeSystem {
				weight += 10
			}
			stakes = append(stakes, stake{system: sys, weight: weight})
		}
	}

	sort.SliceStable(stakes, func(i, j int) bool { return stakes[i].weight > stakes[j].weight })
	out := make([]string, 0, 5)
	for _, s := range stakes {
		out = append(out, s.system)
		if len(out) == 5 {
			break
		}
	}
	return out
}
