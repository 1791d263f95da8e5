// Package engine is the faction decision core: goal selection, candidate
// generation, utility scoring, economic planning, difficulty scaling and
// multi-turn strategic planning. It reads an immutable world snapshot and
// emits intended actions; it never mutates world state itself.
package engine

import (
	"math/rand/v2"

	"github.com/tseward/overmind/model"
)

// MovementOracle answers movement-legality queries.
type MovementOracle interface {
	Reachable(w *model.WorldSnapshot, from string, hops int) []string
}

// CombatOracle answers combat-odds and damage-expectation queries.
type CombatOracle interface {
	ExpectedDamage(damage string, attacker, defender int) (float64, error)
	WinProbability(attackerRating, defenderRating int) float64
}

// AssetCatalog resolves definition references.
type AssetCatalog interface {
	Definition(id string) (model.AssetDefinition, bool)
	All() []model.AssetDefinition
}

// Noise is the injected randomness source. Only easy-tier score jitter
// draws from it; everything else in the engine is deterministic.
type Noise interface {
	Float64() float64
}

// SeededNoise returns a reproducible noise source.
func SeededNoise(seed uint64) Noise {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Difficulty selects how scored actions are post-processed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Engine bundles the capability queries and tuning the decision pipeline
// needs. All methods are safe for sequential per-faction use; the engine
// holds no per-turn state.
type Engine struct {
	movement MovementOracle
	combat   CombatOracle
	catalog  AssetCatalog
	tuning   Tuning
	noise    Noise
}

func New(movement MovementOracle, combat CombatOracle, catalog AssetCatalog, tuning Tuning, noise Noise) *Engine {
	tuning.Validate()
	return &Engine{
		movement: movement,
		combat:   combat,
		catalog:  catalog,
		tuning:   tuning,
		noise:    noise,
	}
}

// Tuning returns the validated tuning in effect.
func (e *Engine) Tuning() Tuning { return e.tuning }

// definition resolves an asset's definition, or reports false when the
// reference is unknown. Callers drop the affected candidate rather than
// failing the turn.
func (e *Engine) definition(a model.Asset) (model.AssetDefinition, bool) {
	return e.catalog.Definition(a.DefID)
}

// baseDefinition returns the catalog's influence-base definition, whatever
// id the catalog gives it.
func (e *Engine) baseDefinition() (model.AssetDefinition, bool) {
	for _, def := range e.catalog.All() {
		if def.Base {
			return def, true
		}
	}
	return model.AssetDefinition{}, false
}
