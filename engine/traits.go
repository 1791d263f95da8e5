package engine

import "github.com/tseward/overmind/model"

// TagAffinity is the immutable behavior record for one personality trait.
// Goal selection, action scoring and intent derivation resolve traits by
// folding over the faction's tag set against this registry.
type TagAffinity struct {
	PrefersGoals []model.GoalType
	AvoidsGoals  []model.GoalType
	ActionBias   map[ActionKind]float64
	Categories   []model.Category // preferred asset categories for purchases
	Aggression   int              // delta applied to the 0–100 aggression level
	Mobile       bool             // blanket mobility: all assets may move
}

// tagAffinities is the static trait registry. Initialized once, read-only
// at runtime.
var tagAffinities = map[model.Tag]TagAffinity{
	model.TagWarlike: {
		PrefersGoals: []model.GoalType{model.GoalMilitaryConquest, model.GoalBloodTheEnemy, model.GoalDestroyTheFoe, model.GoalInvincibleValor},
		AvoidsGoals:  []model.GoalType{model.GoalPeaceableKingdom},
		ActionBias:   map[ActionKind]float64{ActionAttack: 15, ActionDefend: -5},
		Categories:   []model.Category{model.CategoryForce},
		Aggression:   20,
	},
	model.TagImperialists: {
		PrefersGoals: []model.GoalType{model.GoalPlanetarySeizure, model.GoalMilitaryConquest},
		ActionBias:   map[ActionKind]float64{ActionExpand: 10, ActionAttack: 5},
		Categories:   []model.Category{model.CategoryForce},
		Aggression:   10,
	},
	model.TagMachiavellian: {
		PrefersGoals: []model.GoalType{model.GoalIntelligenceCoup, model.GoalInsideEnemyTerritory},
		AvoidsGoals:  []model.GoalType{model.GoalInvincibleValor},
		ActionBias:   map[ActionKind]float64{ActionMove: 5},
		Categories:   []model.Category{model.CategoryCunning},
		Aggression:   5,
	},
	model.TagPlutocratic: {
		PrefersGoals: []model.GoalType{model.GoalCommercialExpansion, model.GoalWealthOfWorlds},
		AvoidsGoals:  []model.GoalType{model.GoalBloodTheEnemy},
		ActionBias:   map[ActionKind]float64{ActionExpand: 5, ActionAttack: -5},
		Categories:   []model.Category{model.CategoryWealth},
		Aggression:   -5,
	},
	model.TagPirates: {
		PrefersGoals: []model.GoalType{model.GoalBloodTheEnemy, model.GoalCommercialExpansion},
		ActionBias:   map[ActionKind]float64{ActionMove: 10, ActionAttack: 5},
		Categories:   []model.Category{model.CategoryCunning, model.CategoryForce},
		Aggression:   10,
		Mobile:       true,
	},
	model.TagScavengers: {
		PrefersGoals: []model.GoalType{model.GoalWealthOfWorlds},
		ActionBias:   map[ActionKind]float64{ActionMove: 5},
		Categories:   []model.Category{model.CategoryWealth},
	},
	model.TagSecretive: {
		PrefersGoals: []model.GoalType{model.GoalInsideEnemyTerritory, model.GoalIntelligenceCoup},
		AvoidsGoals:  []model.GoalType{model.GoalMilitaryConquest},
		Categories:   []model.Category{model.CategoryCunning},
		Aggression:   -5,
	},
	model.TagDeepRooted: {
		PrefersGoals: []model.GoalType{model.GoalPeaceableKingdom, model.GoalExpandInfluence},
		AvoidsGoals:  []model.GoalType{model.GoalPlanetarySeizure},
		ActionBias:   map[ActionKind]float64{ActionDefend: 15},
		Aggression:   -10,
	},
	model.TagTechnicalExpertise: {
		PrefersGoals: []model.GoalType{model.GoalExpandInfluence, model.GoalCommercialExpansion},
		Categories:   []model.Category{model.CategoryWealth, model.CategoryCunning},
	},
	model.TagFanatical: {
		PrefersGoals: []model.GoalType{model.GoalBloodTheEnemy, model.GoalInvincibleValor},
		AvoidsGoals:  []model.GoalType{model.GoalPeaceableKingdom},
		ActionBias:   map[ActionKind]float64{ActionAttack: 10},
		Aggression:   15,
	},
	model.TagMercenary: {
		PrefersGoals: []model.GoalType{model.GoalWealthOfWorlds},
		ActionBias:   map[ActionKind]float64{ActionMove: 10},
		Categories:   []model.Category{model.CategoryForce},
		Aggression:   5,
		Mobile:       true,
	},
	model.TagExchange: {
		PrefersGoals: []model.GoalType{model.GoalCommercialExpansion, model.GoalPeaceableKingdom},
		AvoidsGoals:  []model.GoalType{model.GoalMilitaryConquest, model.GoalBloodTheEnemy},
		ActionBias:   map[ActionKind]float64{ActionAttack: -10, ActionExpand: 5},
		Categories:   []model.Category{model.CategoryWealth},
		Aggression:   -15,
	},
}

// affinityFor resolves a tag against the registry. Unknown tags resolve to
// a zero affinity so snapshots from newer game data degrade gracefully.
func affinityFor(t model.Tag) (TagAffinity, bool) {
	a, ok := tagAffinities[t]
	return a, ok
}

// hasBlanketMobility reports whether any of the faction's tags grants
// mobility to all assets.
func hasBlanketMobility(f *model.Faction) bool {
	for _, t := range f.Tags {
		if a, ok := affinityFor(t); ok && a.Mobile {
			return true
		}
	}
	return false
}

// tagActionBias sums per-tag score deltas for the given action kind.
func tagActionBias(f *model.Faction, kind ActionKind) float64 {
	total := 0.0
	for _, t := range f.Tags {
		if a, ok := affinityFor(t); ok {
			total += a.ActionBias[kind]
		}
	}
	return total
}

// tagAggressionDelta sums the aggression deltas of the faction's tags.
func tagAggressionDelta(f *model.Faction) int {
	total := 0
	for _, t := range f.Tags {
		if a, ok := affinityFor(t); ok {
			total += a.Aggression
		}
	}
	return total
}

// tagPrefersCategory reports whether any tag lists the category among its
// preferred purchase categories.
func tagPrefersCategory(f *model.Faction, c model.Category) bool {
	for _, t := range f.Tags {
		a, ok := affinityFor(t)
		if !ok {
			continue
		}
		for _, pc := range a.Categories {
			if pc == c {
				return true
			}
		}
	}
	return false
}
