package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoreWeights is the configurable weight triple combining the three
// scoring components.
type ScoreWeights struct {
	Base float64 `yaml:"base"`
	Tag  float64 `yaml:"tag"`
	Goal float64 `yaml:"goal"`
}

// Tuning holds every hand-tuned constant in the engine. The defaults
// preserve the original balance; a YAML file can override individual
// values. Validate clamps everything into sane ranges.
type Tuning struct {
	Weights ScoreWeights `yaml:"weights"`

	// Goal selection.
	GoalHysteresis float64 `yaml:"goalHysteresis"` // change-goal threshold
	TagGoalPrefer  float64 `yaml:"tagGoalPrefer"`  // per preferring tag
	TagGoalAvoid   float64 `yaml:"tagGoalAvoid"`   // per avoiding tag

	// Difficulty scaling.
	EasyNoiseRange          float64 `yaml:"easyNoiseRange"` // symmetric, ± this
	HardMinWinProbability   float64 `yaml:"hardMinWinProbability"`
	ExpertMinWinProbability float64 `yaml:"expertMinWinProbability"`
	LowOddsPenalty          float64 `yaml:"lowOddsPenalty"`

	// Economy.
	RepairReserveFactor      float64 `yaml:"repairReserveFactor"`
	DuplicatePenalty         float64 `yaml:"duplicatePenalty"`
	CriticalAttackerGapBonus float64 `yaml:"criticalAttackerGapBonus"`
	CategoryAssetCap         int     `yaml:"categoryAssetCap"`

	// Strategic planning.
	PlanConfidenceFloor float64 `yaml:"planConfidenceFloor"`
	PlanMaxAge          int     `yaml:"planMaxAge"`
	PlanActionsPerTurn  int     `yaml:"planActionsPerTurn"`
	PlanFundsBuffer     int     `yaml:"planFundsBuffer"`
	PlanIncomePerTurn   int     `yaml:"planIncomePerTurn"` // flat projection

	// Presentation pacing, milliseconds between executed actions.
	ActionDelayMillis int `yaml:"actionDelayMillis"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		Weights:                  ScoreWeights{Base: 1.0, Tag: 1.0, Goal: 1.0},
		GoalHysteresis:           30,
		TagGoalPrefer:            20,
		TagGoalAvoid:             25,
		EasyNoiseRange:           15,
		HardMinWinProbability:    0.35,
		ExpertMinWinProbability:  0.5,
		LowOddsPenalty:           40,
		RepairReserveFactor:      0.8,
		DuplicatePenalty:         25,
		CriticalAttackerGapBonus: 60,
		CategoryAssetCap:         6,
		PlanConfidenceFloor:      0.4,
		PlanMaxAge:               3,
		PlanActionsPerTurn:       2,
		PlanFundsBuffer:          3,
		PlanIncomePerTurn:        2,
		ActionDelayMillis:        250,
	}
}

// LoadTuning reads a YAML override file on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning: %w", err)
	}
	t.Validate()
	return t, nil
}

// Validate clamps all values to their valid ranges.
func (t *Tuning) Validate() {
	t.Weights.Base = clamp(t.Weights.Base, 0, 10)
	t.Weights.Tag = clamp(t.Weights.Tag, 0, 10)
	t.Weights.Goal = clamp(t.Weights.Goal, 0, 10)
	t.GoalHysteresis = clamp(t.GoalHysteresis, 0, 100)
	t.TagGoalPrefer = clamp(t.TagGoalPrefer, 0, 100)
	t.TagGoalAvoid = clamp(t.TagGoalAvoid, 0, 100)
	t.EasyNoiseRange = clamp(t.EasyNoiseRange, 0, 100)
	t.HardMinWinProbability = clamp(t.HardMinWinProbability, 0, 1)
	t.ExpertMinWinProbability = clamp(t.ExpertMinWinProbability, 0, 1)
	t.LowOddsPenalty = clamp(t.LowOddsPenalty, 0, 200)
	t.RepairReserveFactor = clamp(t.RepairReserveFactor, 0, 1)
	t.DuplicatePenalty = clamp(t.DuplicatePenalty, 0, 200)
	t.CriticalAttackerGapBonus = clamp(t.CriticalAttackerGapBonus, 0, 200)
	t.CategoryAssetCap = clampInt(t.CategoryAssetCap, 1, 50)
	t.PlanConfidenceFloor = clamp(t.PlanConfidenceFloor, 0, 1)
	t.PlanMaxAge = clampInt(t.PlanMaxAge, 1, 20)
	t.PlanActionsPerTurn = clampInt(t.PlanActionsPerTurn, 1, 10)
	t.PlanFundsBuffer = clampInt(t.PlanFundsBuffer, 0, 100)
	t.PlanIncomePerTurn = clampInt(t.PlanIncomePerTurn, 0, 100)
	t.ActionDelayMillis = clampInt(t.ActionDelayMillis, 0, 10000)
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
