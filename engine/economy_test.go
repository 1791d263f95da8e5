package engine

import (
	"testing"

	"github.com/tseward/overmind/model"
)

func TestRepairCost(t *testing.T) {
	e := testEngine()
	strong := &model.Faction{Attributes: model.Attributes{Force: 6, Cunning: 2, Wealth: 3}}
	feeble := &model.Faction{}

	tests := []struct {
		name    string
		faction *model.Faction
		damage  int
		want    int
	}{
		{"no damage", strong, 0, 0},
		{"one batch", strong, 1, 1},
		{"exactly one batch", strong, 6, 1},
		{"two batches", strong, 7, 3},
		{"three batches", strong, 13, 6},
		{"zero attributes heal one per batch", feeble, 3, 6},
	}
	for _, tc := range tests {
		if got := e.RepairCost(tc.faction, tc.damage); got != tc.want {
			t.Errorf("%s: RepairCost(%d) = %d, want %d", tc.name, tc.damage, got, tc.want)
		}
	}
}

func TestPlanEconomyInvariants(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")
	// Damage the fleet so the repair reserve has something to hold.
	f.Assets[0].HP = 4

	intent := e.DeriveIntent(w, f, nil)
	threat := e.BuildThreatMap(w, f)
	plan := e.PlanEconomy(w, f, intent, threat)

	if plan.AvailableFunds != f.Credits {
		t.Errorf("AvailableFunds = %d, want %d", plan.AvailableFunds, f.Credits)
	}
	if plan.RepairReserve+plan.SpendingBudget > plan.AvailableFunds {
		t.Errorf("reserve %d + budget %d exceeds funds %d",
			plan.RepairReserve, plan.SpendingBudget, plan.AvailableFunds)
	}
	if plan.RepairReserve < 0 || plan.SpendingBudget < 0 {
		t.Errorf("negative allocation: reserve %d, budget %d", plan.RepairReserve, plan.SpendingBudget)
	}
	if plan.Purchase != nil && plan.Purchase.Cost > plan.SpendingBudget {
		t.Errorf("purchase costs %d, budget only %d", plan.Purchase.Cost, plan.SpendingBudget)
	}
	if len(plan.Repairs) != 1 {
		t.Fatalf("got %d repair decisions, want 1", len(plan.Repairs))
	}
	if plan.Repairs[0].AssetID != "c1" {
		t.Errorf("repair targets %s, want c1", plan.Repairs[0].AssetID)
	}
}

func TestRepairDecisionsRankedByUrgency(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")
	// The fleet is near death; the franchise is scratched.
	f.Assets[0].HP = 1
	f.Assets[1].HP = 2

	threat := e.BuildThreatMap(w, f)
	decisions := e.GenerateRepairDecisions(w, f, threat)
	if len(decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(decisions))
	}
	if decisions[0].AssetID != "c1" {
		t.Errorf("highest priority repair is %s, want the near-dead fleet c1", decisions[0].AssetID)
	}
	if decisions[0].Priority <= decisions[1].Priority {
		t.Errorf("priorities not descending: %f then %f", decisions[0].Priority, decisions[1].Priority)
	}
}

func TestSelectRepairsWithinBudget(t *testing.T) {
	decisions := []RepairDecision{
		{AssetID: "a", Cost: 3, Priority: 90},
		{AssetID: "b", Cost: 4, Priority: 60},
		{AssetID: "c", Cost: 2, Priority: 30},
	}
	got := SelectRepairsWithinBudget(decisions, 5)
	if len(got) != 2 {
		t.Fatalf("got %d repairs, want 2", len(got))
	}
	// b does not fit after a; c still does.
	if got[0].AssetID != "a" || got[1].AssetID != "c" {
		t.Errorf("selected %s, %s; want a, c", got[0].AssetID, got[1].AssetID)
	}

	if got := SelectRepairsWithinBudget(decisions, 0); len(got) != 0 {
		t.Errorf("zero budget selected %d repairs", len(got))
	}
}

func TestRecommendPurchase(t *testing.T) {
	e := testEngine()
	w := testWorld()
	f, _ := w.Faction("crimson")
	intent := StrategicIntent{Focus: FocusMilitary, Aggression: 70}

	rec := e.recommendPurchase(w, f, intent, 12)
	if rec == nil {
		t.Fatal("no recommendation with 12 credits of budget")
	}
	if rec.Cost > 12 {
		t.Errorf("recommended %s costs %d, budget 12", rec.DefID, rec.Cost)
	}
	// Sol is crimson's only foothold.
	if rec.System != "sol" {
		t.Errorf("recommended location %s, want sol", rec.System)
	}
	def, ok := e.catalog.Definition(rec.DefID)
	if !ok {
		t.Fatalf("recommendation references unknown definition %s", rec.DefID)
	}
	if f.Attributes.Rating(def.Category) < def.RequiredRating {
		t.Errorf("%s requires rating %d in %s, faction has %d",
			rec.DefID, def.RequiredRating, def.Category, f.Attributes.Rating(def.Category))
	}
	if def.Base {
		t.Errorf("recommended the influence base %s; bases are planted, not bought", rec.DefID)
	}

	if rec := e.recommendPurchase(w, f, intent, 0); rec != nil {
		t.Errorf("zero budget recommended %s", rec.DefID)
	}
}

func TestPurchaseDiversificationPenalizesDuplicates(t *testing.T) {
	e := testEngine()
	f, _ := testWorld().Faction("crimson")
	fleet, _ := e.catalog.Definition("strike_fleet")
	bank, _ := e.catalog.Definition("bank")

	// Crimson already owns a strike fleet but no bank.
	dup := e.purchaseDiversification(f, fleet)
	fresh := e.purchaseDiversification(f, bank)
	if dup >= fresh {
		t.Errorf("duplicate scored %f, novel %f; want duplicate lower", dup, fresh)
	}
}
