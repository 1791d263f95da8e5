package engine

import "github.com/tseward/overmind/model"

// ScoredAction wraps a candidate with its scoring breakdown. Scores are
// clamped at zero; ties between equal scores keep generation order.
type ScoredAction struct {
	Candidate
	BaseUtility    float64
	TagModifier    float64
	GoalSynergy    float64
	Score          float64
	WinProbability float64 // filled by the outcome predictor on hard/expert
	Avoid          bool    // expert tier: excluded from consideration
}

// ScoreCandidates assigns every candidate a combined utility score:
// kind-specific base utility, personality modifier from the faction's
// tags, and synergy with the strategic intent, combined through the
// configurable weight triple.
func (e *Engine) ScoreCandidates(w *model.WorldSnapshot, f *model.Faction, intent StrategicIntent, threat ThreatMap, cands []Candidate) []ScoredAction {
	t := e.tuning
	out := make([]ScoredAction, 0, len(cands))
	for _, c := range cands {
		sa := ScoredAction{Candidate: c}
		sa.BaseUtility = e.baseUtility(w, f, threat, c)
		sa.TagModifier = tagActionBias(f, c.Kind)
		sa.GoalSynergy = e.goalSynergy(intent, c)
		sa.Score = clamp(
			sa.BaseUtility*t.Weights.Base+sa.TagModifier*t.Weights.Tag+sa.GoalSynergy*t.Weights.Goal,
			0, 1e9)
		out = append(out, sa)
	}
	return out
}

func (e *Engine) baseUtility(w *model.WorldSnapshot, f *model.Faction, threat ThreatMap, c Candidate) float64 {
	switch c.Kind {
	case ActionMove:
		return e.moveUtility(w, f, c)
	case ActionAttack:
		return e.attackUtility(w, f, threat, c)
	case ActionExpand:
		return e.expandUtility(w, f, c)
	case ActionDefend:
		return e.defendUtility(f, threat, c)
	}
	return 0
}

func (e *Engine) moveUtility(w *model.WorldSnapshot, f *model.Faction, c Candidate) float64 {
	asset, ok := f.Asset(c.AssetID)
	if !ok {
		return 0
	}
	def, ok := e.definition(*asset)
	if !ok {
		return 0
	}

	score := 10.0
	enemiesAtDest := w.RivalAssetsAt(c.To, f.ID, false)
	enemiesAtSrc := w.RivalAssetsAt(c.From, f.ID, false)
	hpRatio := 1.0
	if asset.MaxHP > 0 {
		hpRatio = float64(asset.HP) / float64(asset.MaxHP)
	}

	if def.CanAttack() {
		// Reward closing with something we can legally damage.
		for _, enemy := range enemiesAtDest {
			edef, ok := e.catalog.Definition(enemy.Asset.DefID)
			if !ok {
				continue
			}
			score += 40
			if enemy.Asset.HP <= 2 {
				score += 15
			} else if edef.Cost >= 8 || edef.Income > 0 {
				score += 15
			}
			break
		}
		// Retreating a healthy attacker away from a fight wastes it.
		if len(enemiesAtSrc) > 0 && len(enemiesAtDest) == 0 && hpRatio >= 0.7 {
			score -= 15
		}
	} else if len(enemiesAtDest) > 0 {
		// Non-combatants have no business closing with the enemy.
		score -= 20
	}

	// Pulling a critically damaged asset to safety is always worthwhile.
	if hpRatio <= 0.3 && len(enemiesAtSrc) > 0 && len(enemiesAtDest) == 0 {
		score += 35
	}

	return score
}

func (e *Engine) attackUtility(w *model.WorldSnapshot, f *model.Faction, threat ThreatMap, c Candidate) float64 {
	asset, ok := f.Asset(c.AssetID)
	if !ok {
		return 0
	}
	def, ok := e.definition(*asset)
	if !ok || !def.CanAttack() {
		return 0
	}
	targetOwner, ok := w.Faction(c.TargetFaction)
	if !ok {
		return 0
	}
	target, ok := targetOwner.Asset(c.TargetAsset)
	if !ok {
		return 0
	}
	tdef, tdefKnown := e.catalog.Definition(target.DefID)

	score := 30.0
	rating := f.Attributes.Rating(def.Attack.Attacker)
	expected, err := e.combat.ExpectedDamage(def.Attack.Damage, rating, targetOwner.Attributes.Rating(def.Attack.Defender))
	if err == nil && expected >= float64(target.HP) {
		score += 25 // likely kill
	}

	if target.HP <= 2 {
		score += 10
	}
	if tdefKnown && (tdef.Cost >= 8 || tdef.Income >= 2) {
		score += 15
	}

	ownRatio := 1.0
	if asset.MaxHP > 0 {
		ownRatio = float64(asset.HP) / float64(asset.MaxHP)
	}
	targetRatio := 1.0
	if target.MaxHP > 0 {
		targetRatio = float64(target.HP) / float64(target.MaxHP)
	}
	if ownRatio > targetRatio {
		score += 10
	}
	if threat.Threat(c.From) < 30 {
		score += 10
	}

	if tdefKnown && tdef.Counter != "" {
		counter, err := e.combat.ExpectedDamage(tdef.Counter, targetOwner.Attributes.Rating(tdef.Category), rating)
		if err == nil {
			score -= counter * 3
		}
	}
	if ownRatio <= 0.5 {
		score -= 15
	}

	return score
}

func (e *Engine) expandUtility(w *model.WorldSnapshot, f *model.Faction, c Candidate) float64 {
	score := 0.0
	if sys, ok := w.System(c.To); ok {
		score += float64(sys.Value) * 4
	}
	score += float64(len(f.AssetsIn(c.To))) * 5 // partial control

	baseCost := 4
	if def, ok := e.baseDefinition(); ok {
		baseCost = def.Cost
	}
	switch {
	case f.Credits < baseCost:
		score *= 0.25
	case f.Credits < baseCost*2:
		score *= 0.6
	}
	return score
}

func (e *Engine) defendUtility(f *model.Faction, threat ThreatMap, c Candidate) float64 {
	// Defending is the do-nothing option; it only scores under real danger.
	score := 5.0
	local := threat.Threat(c.From)
	if local > 50 {
		score += float64(local) / 2
	}
	if c.From == f.HomeSystem && local > 30 {
		score += 20
	}
	return score
}

// goalSynergy rewards actions that serve the strategic intent: the focus
// shapes kind preferences, the designated rival and priority systems earn
// extra attention, and the aggression level tilts attack against defend.
func (e *Engine) goalSynergy(intent StrategicIntent, c Candidate) float64 {
	score := 0.0
	switch intent.Focus {
	case FocusMilitary:
		switch c.Kind {
		case ActionAttack:
			score += 25
		case ActionMove:
			score += 15
		case ActionDefend:
			score -= 5
		}
	case FocusEconomic:
		switch c.Kind {
		case ActionExpand:
			score += 15
		case ActionAttack:
			score -= 10
		}
	case FocusCovert:
		switch c.Kind {
		case ActionMove:
			score += 10
		case ActionExpand:
			score += 5
		}
	case FocusExpansion:
		switch c.Kind {
		case ActionExpand:
			score += 25
		case ActionMove:
			score += 5
		}
	case FocusDefensive:
		switch c.Kind {
		case ActionDefend:
			score += 25
		case ActionAttack:
			score -= 20
		}
	}

	if intent.TargetRival != "" && c.TargetFaction == intent.TargetRival {
		score += 15
	}
	for _, sys := range intent.PrioritySystems {
		if c.To == sys || c.From == sys {
			score += 10
			break
		}
	}

	tilt := float64(intent.Aggression-50) / 5
	switch c.Kind {
	case ActionAttack:
		score += tilt
	case ActionDefend:
		score -= tilt / 2
	}

	return score
}
