package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tseward/overmind/model"
)

// GoalWeight is one goal type's computed preference for a faction.
type GoalWeight struct {
	Type        model.GoalType
	Base        float64
	Personality float64
	Situational float64
	Total       float64 // clamp(base+personality+situational, 0, 100)
}

// GoalWeights computes the weighted preference over the full goal catalog,
// in catalog order.
func (e *Engine) GoalWeights(w *model.WorldSnapshot, f *model.Faction) []GoalWeight {
	out := make([]GoalWeight, 0, len(model.GoalCatalog))
	for _, gt := range model.GoalCatalog {
		gw := GoalWeight{
			Type:        gt,
			Base:        e.goalBaseWeight(w, f, gt),
			Personality: e.goalPersonality(f, gt),
			Situational: e.goalSituational(w, f, gt),
		}
		gw.Total = clamp(gw.Base+gw.Personality+gw.Situational, 0, 100)
		out = append(out, gw)
	}
	return out
}

// goalBaseWeight scales each goal by the attribute it draws on. Expand
// Influence is the universal fallback: its base weight is always positive
// so a faction is never left without a viable goal.
func (e *Engine) goalBaseWeight(w *model.WorldSnapshot, f *model.Faction, gt model.GoalType) float64 {
	attrs := f.Attributes
	rivals := w.Rivals(f.ID)
	switch gt {
	case model.GoalMilitaryConquest:
		return float64(attrs.Force) * 10
	case model.GoalCommercialExpansion:
		return float64(attrs.Wealth) * 10
	case model.GoalIntelligenceCoup:
		return float64(attrs.Cunning) * 10
	case model.GoalPlanetarySeizure:
		return float64(attrs.Force+attrs.Cunning) * 5
	case model.GoalExpandInfluence:
		return 30 + float64(attrs.Wealth)*3
	case model.GoalBloodTheEnemy:
		if len(rivals) == 0 {
			return 0
		}
		return float64(attrs.Force) * 8
	case model.GoalPeaceableKingdom:
		return 20
	case model.GoalDestroyTheFoe:
		weakest := weakestRival(rivals)
		if weakest == nil {
			return 0
		}
		if model.FactionStrength(weakest)*2 < model.FactionStrength(f) {
			return float64(attrs.Force) * 6
		}
		return float64(attrs.Force) * 2
	case model.GoalInsideEnemyTerritory:
		if len(rivals) == 0 {
			return 0
		}
		return float64(attrs.Cunning) * 8
	case model.GoalInvincibleValor:
		if strongestRival(rivals) == nil || model.FactionStrength(strongestRival(rivals)) <= model.FactionStrength(f) {
			return 0
		}
		return float64(attrs.Force) * 5
	case model.GoalWealthOfWorlds:
		return float64(attrs.Wealth) * 8
	}
	return 0
}

func (e *Engine) goalPersonality(f *model.Faction, gt model.GoalType) float64 {
	total := 0.0
	for _, tag := range f.Tags {
		a, ok := affinityFor(tag)
		if !ok {
			continue
		}
		for _, pg := range a.PrefersGoals {
			if pg == gt {
				total += e.tuning.TagGoalPrefer
			}
		}
		for _, ag := range a.AvoidsGoals {
			if ag == gt {
				total -= e.tuning.TagGoalAvoid
			}
		}
	}
	return total
}

// aggressiveGoals are penalized when the faction is weakened or badly
// outmatched.
var aggressiveGoals = map[model.GoalType]bool{
	model.GoalMilitaryConquest: true,
	model.GoalBloodTheEnemy:    true,
	model.GoalDestroyTheFoe:    true,
	model.GoalInvincibleValor:  true,
}

func (e *Engine) goalSituational(w *model.WorldSnapshot, f *model.Faction, gt model.GoalType) float64 {
	total := 0.0
	rivals := w.Rivals(f.ID)

	if f.HPRatio() < 0.5 {
		if gt == model.GoalPeaceableKingdom {
			total += 20
		}
		if aggressiveGoals[gt] {
			total -= 10
		}
	}

	if f.Credits >= 15 {
		switch gt {
		case model.GoalWealthOfWorlds:
			total += 15
		case model.GoalCommercialExpansion:
			total += 10
		}
	}

	if len(f.Assets) < 3 {
		switch gt {
		case model.GoalExpandInfluence:
			total += 20
		case model.GoalCommercialExpansion:
			total += 10
		}
	}

	if len(rivals) >= 3 && gt == model.GoalPeaceableKingdom {
		total += 10
	}

	stronger := 0
	for _, r := range rivals {
		if model.FactionStrength(r) > model.FactionStrength(f) {
			stronger++
		}
	}
	if stronger > len(rivals)/2 && aggressiveGoals[gt] {
		total -= 10
	}

	if weakest := weakestRival(rivals); weakest != nil && model.FactionStrength(weakest)*2 < model.FactionStrength(f) {
		switch gt {
		case model.GoalDestroyTheFoe:
			total += 15
		case model.GoalMilitaryConquest:
			total += 5
		}
	}

	return total
}

// SelectBestGoal picks the highest-weighted goal with weight > 0 and
// materializes it. Ties keep the first encountered in catalog order.
// Returns nil only when every goal weighs zero.
func (e *Engine) SelectBestGoal(w *model.WorldSnapshot, f *model.Faction) *model.Goal {
	weights := e.GoalWeights(w, f)
	var best *GoalWeight
	for i := range weights {
		if weights[i].Total <= 0 {
			continue
		}
		if best == nil || weights[i].Total > best.Total {
			best = &weights[i]
		}
	}
	if best == nil {
		return nil
	}
	return e.newGoal(w, f, best.Type)
}

// ShouldChangeGoal reports whether the faction should abandon its current
// goal: no goal, a completed goal, or an alternative beating the current
// weight by more than the hysteresis threshold. The threshold prevents
// oscillation between near-equal goals.
func (e *Engine) ShouldChangeGoal(w *model.WorldSnapshot, f *model.Faction) bool {
	if f.Goal == nil || f.Goal.Complete {
		return true
	}
	weights := e.GoalWeights(w, f)
	current := 0.0
	best := 0.0
	for _, gw := range weights {
		if gw.Type == f.Goal.Type {
			current = gw.Total
		}
		if gw.Total > best {
			best = gw.Total
		}
	}
	return best-current > e.tuning.GoalHysteresis
}

// newGoal materializes a goal of the given type with a fresh identity and
// a type-appropriate numeric target.
func (e *Engine) newGoal(w *model.WorldSnapshot, f *model.Faction, gt model.GoalType) *model.Goal {
	g := &model.Goal{
		ID:         uuid.NewString(),
		Type:       gt,
		Difficulty: 1,
		Progress:   model.GoalProgress{Target: 1},
	}
	rivals := w.Rivals(f.ID)
	switch gt {
	case model.GoalMilitaryConquest:
		g.Difficulty = 2
		g.Progress.Target = 3
		g.Description = "Destroy three force assets of rival factions"
	case model.GoalCommercialExpansion:
		g.Progress.Target = 3
		g.Description = "Destroy or outcompete three wealth assets of rivals"
	case model.GoalIntelligenceCoup:
		g.Progress.Target = 3
		g.Description = "Destroy three cunning assets of rival factions"
	case model.GoalPlanetarySeizure:
		g.Difficulty = 2
		g.Description = "Seize control of a rival-held system"
	case model.GoalExpandInfluence:
		g.Description = "Plant a new base of influence"
	case model.GoalBloodTheEnemy:
		g.Difficulty = 2
		g.Progress.Target = f.Attributes.Force + f.Attributes.Cunning + f.Attributes.Wealth
		g.Description = "Inflict lasting damage on rival factions"
	case model.GoalPeaceableKingdom:
		g.Progress.Target = 4
		g.Description = "Avoid attacks for four turns"
	case model.GoalDestroyTheFoe:
		g.Difficulty = 3
		if weakest := weakestRival(rivals); weakest != nil {
			g.Description = fmt.Sprintf("Destroy the faction %s", weakest.Name)
			g.Progress.Meta = map[string]string{"rival": weakest.ID}
		} else {
			g.Description = "Destroy a rival faction"
		}
	case model.GoalInsideEnemyTerritory:
		g.Progress.Target = 2
		g.Description = "Operate stealthed assets inside rival territory"
	case model.GoalInvincibleValor:
		g.Difficulty = 2
		g.Description = "Destroy a force asset of a stronger faction"
	case model.GoalWealthOfWorlds:
		g.Progress.Target = 8
		g.Description = "Spend eight credits furthering commercial dominance"
	}
	return g
}

func weakestRival(rivals []*model.Faction) *model.Faction {
	var out *model.Faction
	for _, r := range rivals {
		if out == nil || model.FactionStrength(r) < model.FactionStrength(out) {
			out = r
		}
	}
	return out
}

func strongestRival(rivals []*model.Faction) *model.Faction {
	var out *model.Faction
	for _, r := range rivals {
		if out == nil || model.FactionStrength(r) > model.FactionStrength(out) {
			out = r
		}
	}
	return out
}
