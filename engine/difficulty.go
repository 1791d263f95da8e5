package engine

import (
	"fmt"
	"log/slog"

	"github.com/tseward/overmind/model"
)

// ApplyDifficulty post-processes scored actions for the given tier.
//
//	easy:   bounded symmetric noise on every score (the only random tier)
//	normal: scores pass through untouched
//	hard:   attacks below the minimum win probability are penalized
//	expert: losing attacks are flagged avoid and excluded; damaged assets
//	        in overrun systems get priority relocation actions prepended
//
// The input slice order is preserved; expert relocations are prepended so
// they are considered before everything else.
func (e *Engine) ApplyDifficulty(w *model.WorldSnapshot, f *model.Faction, threat ThreatMap, scored []ScoredAction, d Difficulty) []ScoredAction {
	switch d {
	case DifficultyEasy:
		return e.applyNoise(scored)
	case DifficultyNormal:
		return scored
	case DifficultyHard:
		return e.applyPrediction(w, f, scored, e.tuning.HardMinWinProbability, false)
	case DifficultyExpert:
		out := e.applyPrediction(w, f, scored, e.tuning.ExpertMinWinProbability, true)
		return append(e.retreatActions(w, f, threat), out...)
	}
	return scored
}

func (e *Engine) applyNoise(scored []ScoredAction) []ScoredAction {
	r := e.tuning.EasyNoiseRange
	out := make([]ScoredAction, len(scored))
	for i, sa := range scored {
		jitter := (e.noise.Float64()*2 - 1) * r
		sa.Score = clamp(sa.Score+jitter, 0, 1e9)
		out[i] = sa
	}
	return out
}

func (e *Engine) applyPrediction(w *model.WorldSnapshot, f *model.Faction, scored []ScoredAction, minWinProb float64, veto bool) []ScoredAction {
	out := make([]ScoredAction, len(scored))
	for i, sa := range scored {
		if sa.Kind == ActionAttack {
			if pred, ok := e.PredictAttack(w, f, sa.Candidate); ok {
				sa.WinProbability = pred.WinProbability
				sa.Score = clamp(sa.Score+pred.NetValue*5, 0, 1e9)
				if pred.WinProbability < minWinProb {
					if veto {
						sa.Avoid = true
						slog.Debug("attack vetoed", "faction", f.ID, "target", sa.TargetAsset, "winProb", pred.WinProbability)
					} else {
						sa.Score = clamp(sa.Score-e.tuning.LowOddsPenalty, 0, 1e9)
					}
				}
			}
		}
		out[i] = sa
	}
	return out
}

// retreatActions is the expert-tier retreat-necessity check: when a
// system's rival attack potential substantially exceeds the faction's
// defensive capacity there, damaged assets are flagged for relocation
// ahead of all other options.
func (e *Engine) retreatActions(w *model.WorldSnapshot, f *model.Faction, threat ThreatMap) []ScoredAction {
	var out []ScoredAction
	for _, sys := range f.Systems() {
		rival, own := e.systemBalance(w, f, sys)
		if rival <= own*1.5 {
			continue
		}
		for _, a := range f.AssetsIn(sys) {
			if a.MaxHP <= 0 || float64(a.HP)/float64(a.MaxHP) > 0.5 {
				continue
			}
			def, ok := e.definition(a)
			if !ok {
				continue
			}
			hops := e.moveRange(f, def)
			if hops == 0 {
				continue
			}
			dest, ok := e.nearestSafeSystem(w, f, a.System, hops)
			if !ok {
				continue
			}
			out = append(out, ScoredAction{
				Candidate: Candidate{
					Kind:        ActionMove,
					AssetID:     a.ID,
					From:        a.System,
					To:          dest,
					Description: fmt.Sprintf("Withdraw %s from %s to %s", def.Name, e.systemName(w, a.System), e.systemName(w, dest)),
				},
				BaseUtility: 90,
				Score:       90,
			})
		}
	}
	if len(out) > 0 {
		slog.Debug("retreat necessity triggered", "faction", f.ID, "relocations", len(out))
	}
	return out
}

// nearestSafeSystem picks the reachable system with the fewest visible
// rival attackers, preferring systems with none.
func (e *Engine) nearestSafeSystem(w *model.WorldSnapshot, f *model.Faction, from string, hops int) (string, bool) {
	bestID := ""
	bestRivals := -1
	for _, dest := range e.movement.Reachable(w, from, hops) {
		n := len(w.RivalAssetsAt(dest, f.ID, false))
		if bestRivals == -1 || n < bestRivals {
			bestRivals = n
			bestID = dest
		}
		if n == 0 {
			return dest, true
		}
	}
	return bestID, bestID != ""
}
