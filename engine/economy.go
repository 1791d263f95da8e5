package engine

import (
	"math"
	"sort"

	"github.com/tseward/overmind/model"
)

// RepairDecision is one damaged asset ranked for repair.
type RepairDecision struct {
	AssetID  string
	System   string
	Damage   int
	Cost     int
	Priority float64
}

// PurchaseRecommendation is the single best new-asset purchase.
type PurchaseRecommendation struct {
	DefID  string
	Name   string
	System string
	Cost   int
	Score  float64
}

// EconomicPlan allocates the faction's credits between repairs and one
// purchase. Invariants: RepairReserve + SpendingBudget <= AvailableFunds,
// and any recommended purchase costs no more than SpendingBudget.
type EconomicPlan struct {
	AvailableFunds int
	RepairReserve  int
	SpendingBudget int
	Repairs        []RepairDecision
	Purchase       *PurchaseRecommendation
}

// PlanEconomy produces the faction's spending plan for the turn. Repairs
// are ranked by urgency, the reserve scales with sector danger, and the
// remainder funds at most one purchase.
func (e *Engine) PlanEconomy(w *model.WorldSnapshot, f *model.Faction, intent StrategicIntent, threat ThreatMap) EconomicPlan {
	plan := EconomicPlan{AvailableFunds: f.Credits}

	plan.Repairs = e.GenerateRepairDecisions(w, f, threat)
	totalRepairCost := 0
	for _, r := range plan.Repairs {
		totalRepairCost += r.Cost
	}

	dangerFactor := math.Min(1, float64(threat.Max())/100)
	desired := int(float64(totalRepairCost) * dangerFactor * e.tuning.RepairReserveFactor)
	plan.RepairReserve = minInt(desired, plan.AvailableFunds, totalRepairCost)
	plan.SpendingBudget = plan.AvailableFunds - plan.RepairReserve

	plan.Purchase = e.recommendPurchase(w, f, intent, plan.SpendingBudget)
	return plan
}

// GenerateRepairDecisions ranks every damaged asset by repair urgency:
// damage fraction, replacement value, combat relevance under threat, and
// imminent destruction, less a discount for non-combatants.
func (e *Engine) GenerateRepairDecisions(w *model.WorldSnapshot, f *model.Faction, threat ThreatMap) []RepairDecision {
	var out []RepairDecision
	for _, a := range f.Assets {
		if a.Damage() == 0 {
			continue
		}
		def, ok := e.definition(a)
		if !ok {
			continue
		}

		priority := a.DamageRatio() * 50
		switch {
		case def.Cost >= 8:
			priority += 20
		case def.Cost >= 5:
			priority += 10
		}
		fights := def.CanAttack() || def.Counter != ""
		if threat.Threat(a.System) > 50 && fights {
			priority += 15
		}
		if a.HP <= 2 {
			priority += 25
		}
		if !fights {
			priority -= 10
		}

		out = append(out, RepairDecision{
			AssetID:  a.ID,
			System:   a.System,
			Damage:   a.Damage(),
			Cost:     e.RepairCost(f, a.Damage()),
			Priority: priority,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// RepairCost uses the triangular batch formula: healing comes in batches
// of the faction's best attribute rating, and the nth batch costs n
// credits, so n batches cost n(n+1)/2.
func (e *Engine) RepairCost(f *model.Faction, damage int) int {
	if damage <= 0 {
		return 0
	}
	perBatch := f.Attributes.Max()
	if perBatch < 1 {
		perBatch = 1
	}
	n := (damage + perBatch - 1) / perBatch
	return n * (n + 1) / 2
}

// SelectRepairsWithinBudget walks the ranked decisions in order and keeps
// those that fit. Lower-priority repairs are deferred, never partially
// funded.
func SelectRepairsWithinBudget(decisions []RepairDecision, budget int) []RepairDecision {
	var out []RepairDecision
	remaining := budget
	for _, d := range decisions {
		if d.Cost > remaining {
			continue
		}
		remaining -= d.Cost
		out = append(out, d)
	}
	return out
}

// recommendPurchase scores every affordable, legally purchasable
// definition and returns the best at its best legal location. Nil when
// nothing affordable exists.
func (e *Engine) recommendPurchase(w *model.WorldSnapshot, f *model.Faction, intent StrategicIntent, budget int) *PurchaseRecommendation {
	var best *PurchaseRecommendation
	for _, def := range e.catalog.All() {
		if def.Base || def.Cost > budget {
			continue
		}
		if f.Attributes.Rating(def.Category) < def.RequiredRating {
			continue
		}
		location, ok := e.bestPurchaseLocation(w, f, def)
		if !ok {
			continue
		}

		score := e.purchaseBaseValue(def) +
			e.purchaseTagSynergy(f, def) +
			e.purchaseGoalSynergy(intent, def) +
			e.purchaseDiversification(f, def) +
			e.purchaseStrategicNeeds(f, intent, def)

		if e.categoryCount(f, def.Category) >= e.tuning.CategoryAssetCap {
			score /= 2
		}

		if best == nil || score > best.Score {
			best = &PurchaseRecommendation{
				DefID:  def.ID,
				Name:   def.Name,
				System: location,
				Cost:   def.Cost,
				Score:  score,
			}
		}
	}
	return best
}

// bestPurchaseLocation finds the highest-tech system where the faction
// has a foothold and the local tech level supports the definition.
func (e *Engine) bestPurchaseLocation(w *model.WorldSnapshot, f *model.Faction, def model.AssetDefinition) (string, bool) {
	bestID := ""
	bestTL := -1
	for _, sysID := range f.Systems() {
		if !e.hasInfluenceBase(f, sysID) {
			continue
		}
		sys, ok := w.System(sysID)
		if !ok || sys.TechLevel < def.TechLevel {
			continue
		}
		if sys.TechLevel > bestTL {
			bestTL = sys.TechLevel
			bestID = sysID
		}
	}
	return bestID, bestID != ""
}

func (e *Engine) purchaseBaseValue(def model.AssetDefinition) float64 {
	score := math.Sqrt(float64(def.MaxHP)) * 6 // diminishing returns on hp
	if def.Attack != nil {
		if dmg, err := e.combat.ExpectedDamage(def.Attack.Damage, 0, 0); err == nil {
			score += dmg * 4
		}
	}
	if def.Counter != "" {
		if dmg, err := e.combat.ExpectedDamage(def.Counter, 0, 0); err == nil {
			score += dmg * 2
		}
	}
	if def.Mobile {
		score += 8
	}
	score += float64(def.Income) * 5
	score -= float64(def.Maintenance) * 6
	score -= float64(def.TechLevel) * 2 // permission hurdles at high tech
	return score
}

func (e *Engine) purchaseTagSynergy(f *model.Faction, def model.AssetDefinition) float64 {
	score := 0.0
	if tagPrefersCategory(f, def.Category) {
		score += 12
	}
	if def.Mobile && hasBlanketMobility(f) {
		score += 6
	}
	return score
}

func (e *Engine) purchaseGoalSynergy(intent StrategicIntent, def model.AssetDefinition) float64 {
	switch intent.Focus {
	case FocusMilitary:
		if def.Category == model.CategoryForce && def.CanAttack() {
			return 15
		}
	case FocusEconomic:
		if def.Income > 0 {
			return 15
		}
	case FocusCovert:
		if def.Stealthed {
			return 15
		}
	case FocusExpansion:
		if def.Mobile {
			return 10
		}
	case FocusDefensive:
		if def.Counter != "" {
			return 10
		}
	}
	return 0
}

// purchaseDiversification punishes duplicates hard and nudges toward
// under-represented categories.
func (e *Engine) purchaseDiversification(f *model.Faction, def model.AssetDefinition) float64 {
	score := 0.0
	owned := 0
	for _, a := range f.Assets {
		if a.DefID == def.ID {
			owned++
		}
	}
	score -= float64(owned) * e.tuning.DuplicatePenalty
	if owned == 0 {
		score += 8
	}

	minCount := math.MaxInt
	for _, c := range model.Categories {
		if n := e.categoryCount(f, c); n < minCount {
			minCount = n
		}
	}
	if e.categoryCount(f, def.Category) == minCount {
		score += 10
	}
	return score
}

// purchaseStrategicNeeds fills capability gaps: a missing force-vs-force
// attacker is the critical one, then any attacker, mobility, and income.
func (e *Engine) purchaseStrategicNeeds(f *model.Faction, intent StrategicIntent, def model.AssetDefinition) float64 {
	hasForceAttacker := false
	hasAnyAttacker := false
	hasMobile := false
	income := 0
	for _, a := range f.Assets {
		adef, ok := e.definition(a)
		if !ok {
			continue
		}
		if adef.CanAttack() {
			hasAnyAttacker = true
			if adef.Attack.Attacker == model.CategoryForce && adef.Attack.Defender == model.CategoryForce {
				hasForceAttacker = true
			}
		}
		if adef.Mobile {
			hasMobile = true
		}
		income += adef.Income
	}

	score := 0.0
	if !hasForceAttacker && def.Attack != nil &&
		def.Attack.Attacker == model.CategoryForce && def.Attack.Defender == model.CategoryForce {
		score += e.tuning.CriticalAttackerGapBonus
	}
	if !hasAnyAttacker && def.CanAttack() {
		score += 25
	}
	if !hasMobile && def.Mobile {
		score += 15
	}
	if income == 0 && def.Income > 0 {
		score += 15
	}
	if intent.Focus == FocusMilitary && !hasForceAttacker && def.Category == model.CategoryForce {
		score += 10
	}
	return score
}

func (e *Engine) categoryCount(f *model.Faction, c model.Category) int {
	n := 0
	for _, a := range f.Assets {
		if def, ok := e.definition(a); ok && def.Category == c {
			n++
		}
	}
	return n
}

func minInt(vals ...int) int {
	out := vals[0]
	for _, v := range vals[1:] {
		if v < out {
			out = v
		}
	}
	return out
}
