package engine

import "github.com/tseward/overmind/model"

// ThreatMap holds per-system danger ratings, 0–100, from one faction's
// point of view. Systems the faction has no presence in are absent.
type ThreatMap map[string]int

// Threat returns the danger rating for a system, 0 when unrated.
func (t ThreatMap) Threat(systemID string) int { return t[systemID] }

// Max returns the highest danger rating across the map.
func (t ThreatMap) Max() int {
	out := 0
	for _, v := range t {
		if v > out {
			out = v
		}
	}
	return out
}

// BuildThreatMap rates every system the faction occupies by comparing
// local rival attack potential against the faction's own defensive
// capacity there.
func (e *Engine) BuildThreatMap(w *model.WorldSnapshot, f *model.Faction) ThreatMap {
	out := make(ThreatMap)
	for _, sys := range f.Systems() {
		rival, own := e.systemBalance(w, f, sys)
		out[sys] = balanceToThreat(rival, own)
	}
	return out
}

// systemBalance sums rival attack potential and own defensive capacity in
// a system. Stealthed rival assets are invisible to the assessment.
func (e *Engine) systemBalance(w *model.WorldSnapshot, f *model.Faction, systemID string) (rival, own float64) {
	for _, oa := range w.RivalAssetsAt(systemID, f.ID, false) {
		def, ok := e.catalog.Definition(oa.Asset.DefID)
		if !ok || !def.CanAttack() {
			continue
		}
		rating := oa.Owner.Attributes.Rating(def.Attack.Attacker)
		dmg, err := e.combat.ExpectedDamage(def.Attack.Damage, rating, 0)
		if err != nil {
			continue
		}
		rival += float64(rating) + dmg
	}

	for _, a := range f.AssetsIn(systemID) {
		def, ok := e.definition(a)
		if !ok {
			continue
		}
		own += float64(a.HP) / 2
		if def.Counter != "" {
			dmg, err := e.combat.ExpectedDamage(def.Counter, f.Attributes.Rating(def.Category), 0)
			if err == nil {
				own += dmg
			}
		}
		if def.CanAttack() {
			own += float64(f.Attributes.Rating(def.Attack.Attacker)) / 2
		}
	}
	return rival, own
}

// balanceToThreat maps a rival/own power ratio onto 0–100.
func balanceToThreat(rival, own float64) int {
	if rival <= 0 {
		return 0
	}
	if own < 1 {
		own = 1
	}
	return clampInt(int(50*rival/own), 0, 100)
}
