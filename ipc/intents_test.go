package ipc

import (
	"testing"

	"github.com/tseward/overmind/engine"
	"github.com/tseward/overmind/model"
)

func TestFromQueue(t *testing.T) {
	queue := engine.ActionQueue{
		FactionID: "crimson",
		Turn:      7,
		Goal:      &model.Goal{ID: "g1", Type: model.GoalMilitaryConquest},
		Status:    engine.PhaseComplete,
		Actions: []engine.QueuedAction{
			{
				Kind:          engine.ActionAttack,
				AssetID:       "c1",
				From:          "sol",
				To:            "sol",
				TargetFaction: "azure",
				TargetAsset:   "a1",
				Description:   "strike",
				Confidence:    0.85,
			},
			{Kind: engine.ActionPurchase, DefID: "bank", To: "sol", Description: "commission", Confidence: 1},
		},
	}

	msg := FromQueue(queue)
	if msg.FactionID != "crimson" || msg.Turn != 7 {
		t.Errorf("header = %s/%d, want crimson/7", msg.FactionID, msg.Turn)
	}
	if msg.Status != string(engine.PhaseComplete) {
		t.Errorf("status = %q, want %q", msg.Status, engine.PhaseComplete)
	}
	if msg.Goal == nil || msg.Goal.ID != "g1" {
		t.Error("goal not carried onto the wire")
	}
	if len(msg.Actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(msg.Actions))
	}
	if msg.Actions[0].Intent != IntentAttack {
		t.Errorf("intent = %q, want %q", msg.Actions[0].Intent, IntentAttack)
	}
	if msg.Actions[0].TargetAsset != "a1" || msg.Actions[0].Confidence != 0.85 {
		t.Errorf("attack fields lost: %+v", msg.Actions[0])
	}
	if msg.Actions[1].Intent != IntentPurchase || msg.Actions[1].DefID != "bank" {
		t.Errorf("purchase fields lost: %+v", msg.Actions[1])
	}
}

func TestFromPlan(t *testing.T) {
	plan := &engine.StrategicPlan{
		ID:          "p1",
		FactionID:   "crimson",
		CreatedTurn: 5,
		Horizon:     3,
		Primary:     engine.Objective{Description: "Eliminate Azure Combine"},
		Secondary:   []engine.Objective{{Description: "Rebuild depleted treasury"}},
		Actions: []engine.PlannedAction{
			{Turn: 0, Kind: engine.ActionMove, AssetID: "c1", From: "sol", To: "rigel", DependsOn: -1},
			{Turn: 1, Kind: engine.ActionAttack, AssetID: "c1", TargetFaction: "azure", TargetAsset: "a2", DependsOn: 0},
		},
		Contingencies: []engine.Contingency{
			{Trigger: engine.TriggerAttackFails, WatchAsset: "c1", Description: "if it fails", Fallback: "withdraw"},
		},
		Confidence: 0.95,
	}

	msg := FromPlan(plan)
	if msg.ID != "p1" || msg.Horizon != 3 || msg.Confidence != 0.95 {
		t.Errorf("header lost: %+v", msg)
	}
	if msg.Primary != "Eliminate Azure Combine" {
		t.Errorf("primary = %q", msg.Primary)
	}
	if len(msg.Secondary) != 1 || msg.Secondary[0] != "Rebuild depleted treasury" {
		t.Errorf("secondary = %v", msg.Secondary)
	}
	if len(msg.Actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(msg.Actions))
	}
	if msg.Actions[0].Intent != IntentMove || msg.Actions[1].Intent != IntentAttack {
		t.Errorf("intents = %q, %q", msg.Actions[0].Intent, msg.Actions[1].Intent)
	}
	if msg.Actions[1].DependsOn != 0 {
		t.Errorf("dependency = %d, want 0", msg.Actions[1].DependsOn)
	}
	if len(msg.Contingencies) != 1 || msg.Contingencies[0].Trigger != string(engine.TriggerAttackFails) {
		t.Errorf("contingencies = %+v", msg.Contingencies)
	}
}
