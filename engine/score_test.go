package engine

import (
	"testing"

	"github.com/tseward/overmind/model"
	"github.com/tseward/overmind/oracle"
)

func TestScoreCandidatesNonNegative(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")

	intent := e.DeriveIntent(w, f, e.SelectBestGoal(w, f))
	threat := e.BuildThreatMap(w, f)
	scored := e.ScoreCandidates(w, f, intent, threat, e.GenerateCandidates(w, f))

	if len(scored) == 0 {
		t.Fatal("no scored actions")
	}
	for _, sa := range scored {
		if sa.Score < 0 {
			t.Errorf("%s %q scored %f, want >= 0", sa.Kind, sa.Description, sa.Score)
		}
	}
}

func TestWarlikeFactionPrefersAttack(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")

	// Military conquest focus, a weak rival asset in reach: the attack
	// must outrank every move and defend option.
	intent := e.DeriveIntent(w, f, e.SelectBestGoal(w, f))
	if intent.Focus != FocusMilitary {
		t.Fatalf("intent focus = %s, want %s", intent.Focus, FocusMilitary)
	}
	threat := e.BuildThreatMap(w, f)
	scored := e.ScoreCandidates(w, f, intent, threat, e.GenerateCandidates(w, f))

	best, ok := pickBest(scored)
	if !ok {
		t.Fatal("no pickable action")
	}
	if best.Kind != ActionAttack {
		t.Errorf("best action is %s (%q), want attack", best.Kind, best.Description)
	}
	if best.TagModifier != 15 {
		t.Errorf("warlike attack bias = %f, want 15", best.TagModifier)
	}
}

func TestScoreWeightsScale(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Weights.Tag = 0
	e := New(testEngine().movement, testEngine().combat, testEngine().catalog, tuning, SeededNoise(1))

	w := testWorld()
	f, _ := w.Faction("crimson")
	intent := e.DeriveIntent(w, f, nil)
	threat := e.BuildThreatMap(w, f)
	scored := e.ScoreCandidates(w, f, intent, threat, e.GenerateCandidates(w, f))

	// With the tag weight zeroed the bias is still reported but must not
	// contribute to the combined score.
	for _, sa := range scored {
		want := clamp(sa.BaseUtility+sa.GoalSynergy, 0, 1e9)
		if sa.Score != want {
			t.Errorf("%s score = %f, want %f with tag weight 0", sa.Kind, sa.Score, want)
		}
	}
}

func TestPickBestSkipsAvoided(t *testing.T) {
	scored := []ScoredAction{
		{Candidate: Candidate{Kind: ActionAttack}, Score: 100, Avoid: true},
		{Candidate: Candidate{Kind: ActionDefend}, Score: 40},
		{Candidate: Candidate{Kind: ActionMove}, Score: 40},
	}
	best, ok := pickBest(scored)
	if !ok {
		t.Fatal("no pickable action")
	}
	if best.Kind != ActionDefend {
		t.Errorf("best = %s, want defend (first of the tied scores)", best.Kind)
	}

	if _, ok := pickBest([]ScoredAction{{Score: 99, Avoid: true}}); ok {
		t.Error("all-avoided slice should report no pick")
	}
}

func TestNonCombatantAvoidsEnemySystems(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")
	// A freighter at vega has no attack pattern. Closing with the rival at
	// sol must score worse than the empty system at deneb.
	f.Assets = append(f.Assets, model.Asset{ID: "c3", DefID: "freighter_contract", System: "vega", HP: 4, MaxHP: 4})

	toward := e.moveUtility(w, f, Candidate{Kind: ActionMove, AssetID: "c3", From: "vega", To: "sol"})
	away := e.moveUtility(w, f, Candidate{Kind: ActionMove, AssetID: "c3", From: "vega", To: "deneb"})
	if toward >= away {
		t.Errorf("non-combatant move toward enemies scored %f, away %f; want toward < away", toward, away)
	}
}

func TestInfluenceBaseCostFromCatalog(t *testing.T) {
	// A catalog may name and price its influence base however it likes; the
	// engine must pick up the Base-flagged definition, not a fixed id.
	defs := []model.AssetDefinition{
		{ID: "foothold", Name: "Foothold", Category: model.CategoryCunning, Cost: 6, MaxHP: 4, Base: true},
	}
	e := New(oracle.NewMovement(), oracle.NewCombat(), oracle.NewCatalog(defs), DefaultTuning(), SeededNoise(1))
	w := testWorld()
	f, _ := w.Faction("crimson")

	seq := e.chainExpand(w, f, "vega")
	if len(seq) != 1 {
		t.Fatalf("chainExpand planned %d actions, want 1", len(seq))
	}
	if seq[0].Cost != 6 {
		t.Errorf("expand cost = %d, want the catalog's 6", seq[0].Cost)
	}

	f.Credits = 20
	flush := e.expandUtility(w, f, Candidate{Kind: ActionExpand, To: "rigel"})
	// Nine credits cover one 6-credit base but not two; the tight-funds
	// discount must key off the catalog's price.
	f.Credits = 9
	tight := e.expandUtility(w, f, Candidate{Kind: ActionExpand, To: "rigel"})
	if flush != 28 {
		t.Errorf("flush-funds utility = %f, want 28", flush)
	}
	if tight != flush*0.6 {
		t.Errorf("tight-funds utility = %f, want %f", tight, flush*0.6)
	}
}

func TestGoalSynergyTargetsDesignatedRival(t *testing.T) {
	e := testEngine()
	intent := StrategicIntent{Focus: FocusMilitary, Aggression: 50, TargetRival: "azure"}

	onTarget := e.goalSynergy(intent, Candidate{Kind: ActionAttack, TargetFaction: "azure"})
	offTarget := e.goalSynergy(intent, Candidate{Kind: ActionAttack, TargetFaction: "other"})
	if onTarget-offTarget != 15 {
		t.Errorf("designated-rival bonus = %f, want 15", onTarget-offTarget)
	}
}
