package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tseward/overmind/model"
)

// ObjectiveKind classifies what a plan objective is trying to achieve.
type ObjectiveKind string

const (
	ObjectiveEliminateRival ObjectiveKind = "eliminate_rival"
	ObjectiveDestroyAsset   ObjectiveKind = "destroy_asset"
	ObjectiveSeizeSystem    ObjectiveKind = "seize_system"
	ObjectiveRaiseFunds     ObjectiveKind = "raise_funds"
	ObjectiveProtectAsset   ObjectiveKind = "protect_asset"
	ObjectivePlantBase      ObjectiveKind = "plant_base"
)

// Objective is a concrete target derived from the active goal or from an
// opportunity on the board.
type Objective struct {
	Kind          ObjectiveKind
	Description   string
	TargetFaction string
	TargetAsset   string
	TargetSystem  string
	Priority      int
}

// PlannedAction is one step in the multi-turn queue. DependsOn indexes an
// earlier action in the same plan, -1 when independent.
type PlannedAction struct {
	Turn          int
	Kind          ActionKind
	AssetID       string
	DefID         string // purchases only
	From          string
	To            string
	TargetFaction string
	TargetAsset   string
	Cost          int
	Description   string
	DependsOn     int
}

// ContingencyTrigger names the condition a contingency watches for.
type ContingencyTrigger string

const (
	TriggerAttackFails ContingencyTrigger = "attack_fails"
	TriggerMoveBlocked ContingencyTrigger = "move_blocked"
	TriggerAssetLost   ContingencyTrigger = "asset_lost"
)

// Contingency is a pre-planned fallback keyed by its trigger.
type Contingency struct {
	Trigger     ContingencyTrigger
	WatchAsset  string
	Description string
	Fallback    string
}

// TurnBudget is one row of the projected-funds ledger.
type TurnBudget struct {
	Turn           int
	ProjectedFunds int
	Committed      int
}

// StrategicPlan is a bounded-horizon, budget-aware projection of future
// actions with contingencies. Invariant: no action's cost exceeds the
// funds projected to be available at its turn.
type StrategicPlan struct {
	ID            string
	FactionID     string
	CreatedTurn   int
	Horizon       int
	Primary       Objective
	Secondary     []Objective
	Actions       []PlannedAction
	Contingencies []Contingency
	Budget        []TurnBudget
	Confidence    float64
}

// PlanAssessment is the result of re-checking a plan against the current
// world. Replan is a recommendation; the caller decides.
type PlanAssessment struct {
	Blockers   []string
	Confidence float64
	Replan     bool
}

// defaultHorizon maps difficulty to planning depth.
func defaultHorizon(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyExpert:
		return 4
	default:
		return 3
	}
}

// PlanStrategy backward-chains from the faction's strategic objective to
// a turn-by-turn action queue with a funds ledger and contingencies.
func (e *Engine) PlanStrategy(w *model.WorldSnapshot, f *model.Faction, horizon int, d Difficulty) *StrategicPlan {
	if horizon <= 0 {
		horizon = defaultHorizon(d)
	}
	horizon = clampInt(horizon, 2, 4)

	goal := f.Goal
	if goal == nil {
		goal = e.SelectBestGoal(w, f)
	}

	plan := &StrategicPlan{
		ID:          uuid.NewString(),
		FactionID:   f.ID,
		CreatedTurn: w.Turn,
		Horizon:     horizon,
		Primary:     e.primaryObjective(w, f, goal),
		Secondary:   e.secondaryObjectives(w, f),
		Confidence:  1.0,
	}

	ledger := newFundsLedger(f.Credits, e.tuning.PlanIncomePerTurn, horizon, e.tuning.PlanActionsPerTurn)
	objectives := append([]Objective{plan.Primary}, plan.Secondary...)
	for _, obj := range objectives {
		seq := e.chainObjective(w, f, obj)
		placed := ledger.place(seq)
		// place() indexes dependencies within its own sub-sequence; shift
		// them to positions in the combined action list.
		offset := len(plan.Actions)
		for i := range placed {
			if placed[i].DependsOn >= 0 {
				placed[i].DependsOn += offset
			}
		}
		plan.Actions = append(plan.Actions, placed...)
		for _, a := range placed {
			switch {
			case a.Kind == ActionPurchase:
				plan.Confidence -= 0.1 // enabling purchases may not land
			case a.DependsOn >= 0:
				plan.Confidence -= 0.05
			}
		}
	}
	plan.Confidence = clamp(plan.Confidence, 0.2, 1.0)
	plan.Budget = ledger.rows()
	plan.Contingencies = e.buildContingencies(w, f, plan.Actions)
	return plan
}

// primaryObjective translates the active goal into a concrete target.
func (e *Engine) primaryObjective(w *model.WorldSnapshot, f *model.Faction, goal *model.Goal) Objective {
	rivals := w.Rivals(f.ID)
	gt := model.GoalExpandInfluence
	if goal != nil {
		gt = goal.Type
	}
	switch gt {
	case model.GoalDestroyTheFoe:
		if weakest := weakestRival(rivals); weakest != nil {
			return Objective{
				Kind:          ObjectiveEliminateRival,
				TargetFaction: weakest.ID,
				Description:   fmt.Sprintf("Eliminate %s", weakest.Name),
				Priority:      100,
			}
		}
	case model.GoalMilitaryConquest, model.GoalBloodTheEnemy, model.GoalInvincibleValor:
		var target *model.Faction
		if gt == model.GoalInvincibleValor {
			target = strongestRival(rivals)
		} else {
			target = weakestRival(rivals)
		}
		if target != nil {
			if asset, ok := e.mostValuableAsset(target, model.CategoryForce); ok {
				return Objective{
					Kind:          ObjectiveDestroyAsset,
					TargetFaction: target.ID,
					TargetAsset:   asset.ID,
					TargetSystem:  asset.System,
					Description:   fmt.Sprintf("Destroy a force asset of %s", target.Name),
					Priority:      100,
				}
			}
		}
	case model.GoalIntelligenceCoup, model.GoalCommercialExpansion:
		want := model.CategoryCunning
		if gt == model.GoalCommercialExpansion {
			want = model.CategoryWealth
		}
		if target := strongestRival(rivals); target != nil {
			if asset, ok := e.mostValuableAsset(target, want); ok {
				return Objective{
					Kind:          ObjectiveDestroyAsset,
					TargetFaction: target.ID,
					TargetAsset:   asset.ID,
					TargetSystem:  asset.System,
					Description:   fmt.Sprintf("Destroy a %s asset of %s", want, target.Name),
					Priority:      100,
				}
			}
		}
	case model.GoalPlanetarySeizure:
		if sys, ok := e.bestSeizureTarget(w, f); ok {
			return Objective{
				Kind:         ObjectiveSeizeSystem,
				TargetSystem: sys,
				Description:  fmt.Sprintf("Seize control of %s", e.systemName(w, sys)),
				Priority:     100,
			}
		}
	case model.GoalWealthOfWorlds:
		return Objective{Kind: ObjectiveRaiseFunds, Description: "Grow income to fund expansion", Priority: 100}
	}

	// Fallback, also the ExpandInfluence path: plant a base somewhere new.
	sys := f.HomeSystem
	for _, s := range f.Systems() {
		if !e.hasInfluenceBase(f, s) {
			sys = s
			break
		}
	}
	return Objective{
		Kind:         ObjectivePlantBase,
		TargetSystem: sys,
		Description:  fmt.Sprintf("Expand influence at %s", e.systemName(w, sys)),
		Priority:     100,
	}
}

// secondaryObjectives finds up to three opportunistic targets: vulnerable
// enemy assets, undefended enemy bases, low funds, and threatened own
// assets.
func (e *Engine) secondaryObjectives(w *model.WorldSnapshot, f *model.Faction) []Objective {
	var out []Objective
	add := func(o Objective) {
		if len(out) < 3 {
			out = append(out, o)
		}
	}

	for _, r := range w.Rivals(f.ID) {
		for _, a := range r.Assets {
			if a.Stealthed {
				continue
			}
			def, ok := e.catalog.Definition(a.DefID)
			if !ok {
				continue
			}
			if a.HP <= 3 && !def.Base {
				add(Objective{
					Kind:          ObjectiveDestroyAsset,
					TargetFaction: r.ID,
					TargetAsset:   a.ID,
					TargetSystem:  a.System,
					Description:   fmt.Sprintf("Finish off the weakened %s of %s", def.Name, r.Name),
					Priority:      60,
				})
			}
			if def.Base && !e.systemDefended(r, a.System) {
				add(Objective{
					Kind:          ObjectiveDestroyAsset,
					TargetFaction: r.ID,
					TargetAsset:   a.ID,
					TargetSystem:  a.System,
					Description:   fmt.Sprintf("Raze the undefended base of %s at %s", r.Name, e.systemName(w, a.System)),
					Priority:      50,
				})
			}
		}
	}

	if f.Credits < 5 {
		add(Objective{Kind: ObjectiveRaiseFunds, Description: "Rebuild depleted treasury", Priority: 40})
	}

	threat := e.BuildThreatMap(w, f)
	for _, a := range f.Assets {
		if threat.Threat(a.System) > 60 && a.DamageRatio() > 0 {
			add(Objective{
				Kind:         ObjectiveProtectAsset,
				TargetAsset:  a.ID,
				TargetSystem: a.System,
				Description:  fmt.Sprintf("Pull threatened asset out of %s", e.systemName(w, a.System)),
				Priority:     30,
			})
			break
		}
	}
	return out
}

// chainObjective backward-chains the prerequisite sequence for one
// objective: direct action if an asset is positioned, move-then-act with
// the nearest mobile qualifying asset, or an enabling purchase when no
// qualifying asset exists.
func (e *Engine) chainObjective(w *model.WorldSnapshot, f *model.Faction, obj Objective) []PlannedAction {
	switch obj.Kind {
	case ObjectiveEliminateRival:
		rival, ok := w.Faction(obj.TargetFaction)
		if !ok || len(rival.Assets) == 0 {
			return nil
		}
		// Chip at the rival's most exposed asset first.
		target := rival.Assets[0]
		for _, a := range rival.Assets {
			if a.HP < target.HP {
				target = a
			}
		}
		return e.chainAttack(w, f, obj.TargetFaction, target)

	case ObjectiveDestroyAsset:
		rival, ok := w.Faction(obj.TargetFaction)
		if !ok {
			return nil
		}
		target, ok := rival.Asset(obj.TargetAsset)
		if !ok {
			return nil
		}
		return e.chainAttack(w, f, obj.TargetFaction, *target)

	case ObjectiveSeizeSystem:
		var seq []PlannedAction
		for _, oa := range w.RivalAssetsAt(obj.TargetSystem, f.ID, false) {
			seq = e.chainAttack(w, f, oa.Owner.ID, oa.Asset)
			if len(seq) > 0 {
				break
			}
		}
		if len(seq) == 0 {
			return e.chainExpand(w, f, obj.TargetSystem)
		}
		return seq

	case ObjectiveRaiseFunds:
		return e.chainIncomePurchase(w, f)

	case ObjectiveProtectAsset:
		asset, ok := f.Asset(obj.TargetAsset)
		if !ok {
			return nil
		}
		def, ok := e.definition(*asset)
		if !ok {
			return nil
		}
		hops := e.moveRange(f, def)
		if hops == 0 {
			return nil
		}
		dest, ok := e.nearestSafeSystem(w, f, asset.System, hops)
		if !ok {
			return nil
		}
		return []PlannedAction{{
			Kind:        ActionMove,
			AssetID:     asset.ID,
			From:        asset.System,
			To:          dest,
			Description: fmt.Sprintf("Withdraw %s to %s", def.Name, e.systemName(w, dest)),
			DependsOn:   -1,
		}}

	case ObjectivePlantBase:
		return e.chainExpand(w, f, obj.TargetSystem)
	}
	return nil
}

// chainAttack emits the shortest sequence ending in an attack on the
// target: attack now, move then attack, or buy an attacker that enables
// the sequence next turn.
func (e *Engine) chainAttack(w *model.WorldSnapshot, f *model.Faction, targetFaction string, target model.Asset) []PlannedAction {
	// Positioned attacker?
	for _, a := range f.Assets {
		def, ok := e.definition(a)
		if !ok || !def.CanAttack() {
			continue
		}
		if a.System == target.System {
			return []PlannedAction{{
				Kind:          ActionAttack,
				AssetID:       a.ID,
				From:          a.System,
				To:            target.System,
				TargetFaction: targetFaction,
				TargetAsset:   target.ID,
				Description:   fmt.Sprintf("Strike with %s", def.Name),
				DependsOn:     -1,
			}}
		}
	}

	// Nearest mobile attacker: move, then strike.
	type reachable struct {
		asset model.Asset
		def   model.AssetDefinition
	}
	var pick *reachable
	for _, a := range f.Assets {
		def, ok := e.definition(a)
		if !ok || !def.CanAttack() {
			continue
		}
		hops := e.moveRange(f, def)
		if hops == 0 {
			continue
		}
		for _, dest := range e.movement.Reachable(w, a.System, hops) {
			if dest == target.System {
				pick = &reachable{asset: a, def: def}
				break
			}
		}
		if pick != nil {
			break
		}
	}
	if pick != nil {
		return []PlannedAction{
			{
				Kind:        ActionMove,
				AssetID:     pick.asset.ID,
				From:        pick.asset.System,
				To:          target.System,
				Description: fmt.Sprintf("Advance %s toward %s", pick.def.Name, e.systemName(w, target.System)),
				DependsOn:   -1,
			},
			{
				Kind:          ActionAttack,
				AssetID:       pick.asset.ID,
				From:          target.System,
				To:            target.System,
				TargetFaction: targetFaction,
				TargetAsset:   target.ID,
				Description:   fmt.Sprintf("Strike with %s", pick.def.Name),
				DependsOn:     0,
			},
		}
	}

	// No qualifying asset: buy one that enables the sequence next turn.
	for _, def := range e.catalog.All() {
		if !def.CanAttack() || def.Cost > f.Credits {
			continue
		}
		if f.Attributes.Rating(def.Category) < def.RequiredRating {
			continue
		}
		loc, ok := e.bestPurchaseLocation(w, f, def)
		if !ok {
			continue
		}
		return []PlannedAction{{
			Kind:        ActionPurchase,
			DefID:       def.ID,
			To:          loc,
			Cost:        def.Cost,
			Description: fmt.Sprintf("Commission %s at %s", def.Name, e.systemName(w, loc)),
			DependsOn:   -1,
		}}
	}
	return nil
}

func (e *Engine) chainExpand(w *model.WorldSnapshot, f *model.Faction, systemID string) []PlannedAction {
	cost := 4
	if def, ok := e.baseDefinition(); ok {
		cost = def.Cost
	}
	return []PlannedAction{{
		Kind:        ActionExpand,
		To:          systemID,
		Cost:        cost,
		Description: fmt.Sprintf("Establish influence base at %s", e.systemName(w, systemID)),
		DependsOn:   -1,
	}}
}

func (e *Engine) chainIncomePurchase(w *model.WorldSnapshot, f *model.Faction) []PlannedAction {
	var best *model.AssetDefinition
	for _, def := range e.catalog.All() {
		if def.Income == 0 || def.Cost > f.Credits+e.tuning.PlanIncomePerTurn {
			continue
		}
		if f.Attributes.Rating(def.Category) < def.RequiredRating {
			continue
		}
		if _, ok := e.bestPurchaseLocation(w, f, def); !ok {
			continue
		}
		d := def
		if best == nil || d.Income > best.Income {
			best = &d
		}
	}
	if best == nil {
		return nil
	}
	loc, _ := e.bestPurchaseLocation(w, f, *best)
	return []PlannedAction{{
		Kind:        ActionPurchase,
		DefID:       best.ID,
		To:          loc,
		Cost:        best.Cost,
		Description: fmt.Sprintf("Commission %s at %s", best.Name, e.systemName(w, loc)),
		DependsOn:   -1,
	}}
}

// systemDefended reports whether the faction keeps any attack-capable
// asset in the system.
func (e *Engine) systemDefended(f *model.Faction, systemID string) bool {
	for _, a := range f.AssetsIn(systemID) {
		if def, ok := e.catalog.Definition(a.DefID); ok && (def.CanAttack() || def.Counter != "") {
			return true
		}
	}
	return false
}

// mostValuableAsset returns the faction's costliest asset of the given
// category.
func (e *Engine) mostValuableAsset(f *model.Faction, c model.Category) (model.Asset, bool) {
	var best model.Asset
	bestCost := -1
	for _, a := range f.Assets {
		def, ok := e.catalog.Definition(a.DefID)
		if !ok || def.Category != c {
			continue
		}
		if def.Cost > bestCost {
			bestCost = def.Cost
			best = a
		}
	}
	return best, bestCost >= 0
}

// bestSeizureTarget picks the highest-value system where a rival operates
// and the faction already has a presence or can reach.
func (e *Engine) bestSeizureTarget(w *model.WorldSnapshot, f *model.Faction) (string, bool) {
	bestID := ""
	bestValue := -1
	for _, r := range w.Rivals(f.ID) {
		for _, sys := range r.Systems() {
			s, ok := w.System(sys)
			if !ok {
				continue
			}
			if s.Value > bestValue {
				bestValue = s.Value
				bestID = sys
			}
		}
	}
	return bestID, bestID != ""
}

// buildContingencies generates fallbacks: per planned attack a
// retreat/repair rule, per move with dependents an alternate-target rule,
// plus replacement rules for the faction's most valuable assets.
func (e *Engine) buildContingencies(w *model.WorldSnapshot, f *model.Faction, actions []PlannedAction) []Contingency {
	var out []Contingency
	dependents := map[int]bool{}
	for _, a := range actions {
		if a.DependsOn >= 0 {
			dependents[a.DependsOn] = true
		}
	}
	for i, a := range actions {
		switch a.Kind {
		case ActionAttack:
			out = append(out, Contingency{
				Trigger:     TriggerAttackFails,
				WatchAsset:  a.AssetID,
				Description: fmt.Sprintf("If the strike on %s fails", a.TargetAsset),
				Fallback:    "Withdraw the attacker and divert the repair reserve to it",
			})
		case ActionMove:
			if dependents[i] {
				out = append(out, Contingency{
					Trigger:     TriggerMoveBlocked,
					WatchAsset:  a.AssetID,
					Description: fmt.Sprintf("If %s cannot reach %s", a.AssetID, a.To),
					Fallback:    "Retarget the dependent strike at the nearest reachable rival asset",
				})
			}
		}
	}

	// Replacement contingencies for the two costliest assets.
	type valued struct {
		id   string
		cost int
	}
	var vals []valued
	for _, a := range f.Assets {
		if def, ok := e.catalog.Definition(a.DefID); ok {
			vals = append(vals, valued{id: a.ID, cost: def.Cost})
		}
	}
	for range 2 {
		bestIdx := -1
		for i, v := range vals {
			if bestIdx == -1 || v.cost > vals[bestIdx].cost {
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}
		out = append(out, Contingency{
			Trigger:     TriggerAssetLost,
			WatchAsset:  vals[bestIdx].id,
			Description: "If this asset is destroyed",
			Fallback:    "Commission a replacement before pursuing further objectives",
		})
		vals = append(vals[:bestIdx], vals[bestIdx+1:]...)
	}
	return out
}

// EvaluatePlan re-checks a plan against the current world and recommends
// replanning when it has gone stale. Blockers are surfaced as values, not
// errors; the caller decides whether to regenerate.
func (e *Engine) EvaluatePlan(w *model.WorldSnapshot, plan *StrategicPlan, currentTurn int) PlanAssessment {
	var a PlanAssessment
	f, ok := w.Faction(plan.FactionID)
	if !ok {
		return PlanAssessment{Blockers: []string{"planning faction no longer exists"}, Replan: true}
	}

	requiredFunds := 0
	pending := 0
	for _, act := range plan.Actions {
		if act.Turn < currentTurn-plan.CreatedTurn {
			continue // already behind us
		}
		pending++
		requiredFunds += act.Cost
		if act.AssetID != "" {
			if _, ok := f.Asset(act.AssetID); !ok {
				a.Blockers = append(a.Blockers, fmt.Sprintf("asset %s no longer exists", act.AssetID))
			}
		}
		if act.TargetFaction != "" {
			rival, ok := w.Faction(act.TargetFaction)
			if !ok {
				a.Blockers = append(a.Blockers, fmt.Sprintf("target faction %s no longer exists", act.TargetFaction))
				continue
			}
			if act.TargetAsset != "" {
				if _, ok := rival.Asset(act.TargetAsset); !ok {
					a.Blockers = append(a.Blockers, fmt.Sprintf("target asset %s no longer exists", act.TargetAsset))
				}
			}
		}
	}
	if requiredFunds > f.Credits+e.tuning.PlanFundsBuffer {
		a.Blockers = append(a.Blockers, fmt.Sprintf("plan needs %d credits, only %d on hand", requiredFunds, f.Credits))
	}

	a.Confidence = clamp(plan.Confidence-0.2*float64(len(a.Blockers)), 0, 1)
	age := currentTurn - plan.CreatedTurn
	a.Replan = len(a.Blockers) >= 2 ||
		age > e.tuning.PlanMaxAge ||
		a.Confidence < e.tuning.PlanConfidenceFloor ||
		pending == 0
	return a
}

// newFundsLedger tracks projected funds and action capacity per turn.
type fundsLedger struct {
	funds    []int // projected available at each turn, 0-indexed
	count    []int
	cap      int
	income   int
	baseline int
}

func newFundsLedger(credits, income, horizon, perTurnCap int) *fundsLedger {
	l := &fundsLedger{
		funds:    make([]int, horizon),
		count:    make([]int, horizon),
		cap:      perTurnCap,
		income:   income,
		baseline: credits,
	}
	for i := range l.funds {
		l.funds[i] = credits + income*i
	}
	return l
}

// place assigns a dependent sequence to turns, honoring capacity and the
// projected funds at each turn. Returns the placed actions with Turn set
// and DependsOn re-indexed; an unplaceable tail is dropped.
func (l *fundsLedger) place(seq []PlannedAction) []PlannedAction {
	var out []PlannedAction
	minTurn := 0
	for i, act := range seq {
		turn := -1
		for t := minTurn; t < len(l.funds); t++ {
			if l.count[t] >= l.cap {
				continue
			}
			if act.Cost > l.funds[t] {
				continue
			}
			turn = t
			break
		}
		if turn == -1 {
			break // rest of the sequence cannot be funded in horizon
		}
		act.Turn = turn
		if act.DependsOn >= 0 {
			// DependsOn indexes within seq; remap to position in out.
			act.DependsOn = len(out) - (i - act.DependsOn)
		}
		l.count[turn]++
		if act.Cost > 0 {
			for t := turn; t < len(l.funds); t++ {
				l.funds[t] -= act.Cost
			}
		}
		out = append(out, act)
		minTurn = turn + 1
	}
	return out
}

func (l *fundsLedger) rows() []TurnBudget {
	out := make([]TurnBudget, len(l.funds))
	for i := range l.funds {
		committed := l.baseline + l.income*i - l.funds[i]
		out[i] = TurnBudget{Turn: i, ProjectedFunds: l.funds[i], Committed: committed}
	}
	return out
}
