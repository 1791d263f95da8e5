package engine

import "github.com/tseward/overmind/model"

// Prediction is the adversarial outcome estimate for one attack
// candidate. Deterministic: probabilities are analytic, damage is
// evaluated at expectation.
type Prediction struct {
	WinProbability float64
	ExpectedDealt  float64 // damage to the target, odds-weighted
	ExpectedTaken  float64 // counterattack damage to us, odds-weighted
	NetValue       float64 // value-weighted dealt minus taken
	LikelyKill     bool
}

// PredictAttack estimates the outcome of an attack candidate. Reports
// false when the candidate's references cannot be resolved; the caller
// drops such candidates.
func (e *Engine) PredictAttack(w *model.WorldSnapshot, f *model.Faction, c Candidate) (Prediction, bool) {
	asset, ok := f.Asset(c.AssetID)
	if !ok {
		return Prediction{}, false
	}
	def, ok := e.definition(*asset)
	if !ok || !def.CanAttack() {
		return Prediction{}, false
	}
	owner, ok := w.Faction(c.TargetFaction)
	if !ok {
		return Prediction{}, false
	}
	target, ok := owner.Asset(c.TargetAsset)
	if !ok {
		return Prediction{}, false
	}

	attRating := f.Attributes.Rating(def.Attack.Attacker)
	defRating := owner.Attributes.Rating(def.Attack.Defender)

	var p Prediction
	p.WinProbability = e.combat.WinProbability(attRating, defRating)

	rawDealt, err := e.combat.ExpectedDamage(def.Attack.Damage, attRating, defRating)
	if err != nil {
		return Prediction{}, false
	}
	p.ExpectedDealt = rawDealt * p.WinProbability
	p.LikelyKill = rawDealt >= float64(target.HP) && p.WinProbability >= 0.5

	if tdef, ok := e.catalog.Definition(target.DefID); ok && tdef.Counter != "" {
		rawTaken, err := e.combat.ExpectedDamage(tdef.Counter, owner.Attributes.Rating(tdef.Category), attRating)
		if err == nil {
			p.ExpectedTaken = rawTaken * (1 - p.WinProbability)
		}
	}

	p.NetValue = p.ExpectedDealt*e.assetValuePerHP(*target) - p.ExpectedTaken*e.assetValuePerHP(*asset)
	return p, true
}

// assetValuePerHP weights damage by what the hit points are worth:
// replacement cost spread over max hp.
func (e *Engine) assetValuePerHP(a model.Asset) float64 {
	def, ok := e.catalog.Definition(a.DefID)
	if !ok || a.MaxHP <= 0 {
		return 1
	}
	return float64(def.Cost) / float64(a.MaxHP)
}
