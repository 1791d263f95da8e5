package engine

import (
	"testing"

	"github.com/tseward/overmind/model"
	"github.com/tseward/overmind/oracle"
)

// testEngine wires the stock oracles with default tuning and a fixed seed.
func testEngine() *Engine {
	return New(oracle.NewMovement(), oracle.NewCombat(), oracle.NewCatalog(nil), DefaultTuning(), SeededNoise(1))
}

// testWorld is a four-system chain (sol-vega-rigel-deneb) with two rival
// factions. Crimson is the decision subject: a warlike force-heavy faction
// with a strike fleet and a franchise at its sol homeworld, sharing sol
// with a damaged azure security detail.
func testWorld() *model.WorldSnapshot {
	return &model.WorldSnapshot{
		Turn: 5,
		Systems: []model.System{
			{ID: "sol", Name: "Sol", TechLevel: 4, Value: 5},
			{ID: "vega", Name: "Vega", TechLevel: 3, Value: 3},
			{ID: "rigel", Name: "Rigel", TechLevel: 2, Value: 7},
			{ID: "deneb", Name: "Deneb", TechLevel: 1, Value: 2},
		},
		Routes: []model.Route{
			{A: "sol", B: "vega"},
			{A: "vega", B: "rigel"},
			{A: "rigel", B: "deneb"},
		},
		Factions: []model.Faction{
			{
				ID:         "crimson",
				Name:       "Crimson Pact",
				Tags:       []model.Tag{model.TagWarlike},
				Attributes: model.Attributes{Force: 6, Cunning: 2, Wealth: 3},
				HP:         20, MaxHP: 20,
				Credits:    12,
				HomeSystem: "sol",
				Assets: []model.Asset{
					{ID: "c1", DefID: "strike_fleet", System: "sol", HP: 8, MaxHP: 8},
					{ID: "c2", DefID: "franchise", System: "sol", HP: 3, MaxHP: 3},
				},
			},
			{
				ID:         "azure",
				Name:       "Azure Combine",
				Tags:       []model.Tag{model.TagPlutocratic},
				Attributes: model.Attributes{Force: 2, Cunning: 3, Wealth: 6},
				HP:         18, MaxHP: 18,
				Credits:    10,
				HomeSystem: "rigel",
				Assets: []model.Asset{
					{ID: "a1", DefID: "security_detail", System: "sol", HP: 2, MaxHP: 3},
					{ID: "a2", DefID: "bank", System: "rigel", HP: 6, MaxHP: 6},
				},
			},
		},
	}
}

func TestSeededNoiseReproducible(t *testing.T) {
	a := SeededNoise(42)
	b := SeededNoise(42)
	for i := 0; i < 5; i++ {
		if av, bv := a.Float64(), b.Float64(); av != bv {
			t.Fatalf("draw %d: same seed produced %f and %f", i, av, bv)
		}
	}
}

func TestNewValidatesTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Weights.Base = 99 // out of range
	e := New(oracle.NewMovement(), oracle.NewCombat(), oracle.NewCatalog(nil), tuning, SeededNoise(1))
	if got := e.Tuning().Weights.Base; got != 10 {
		t.Errorf("Weights.Base = %f, want clamped to 10", got)
	}
}
