package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tseward/overmind/model"
)

// Phase names the stage of a faction's decision pipeline, for the
// external progress stream.
type Phase string

const (
	PhaseAnalysis  Phase = "analysis"
	PhaseGoal      Phase = "goal"
	PhaseEconomy   Phase = "economy"
	PhaseScoring   Phase = "scoring"
	PhasePlanning  Phase = "planning"
	PhaseExecuting Phase = "executing"
	PhaseComplete  Phase = "complete"
)

// Progress is one tick of the decision progress stream. Err is terminal
// when set. Consumed by external presentation, never persisted.
type Progress struct {
	Phase   Phase
	Percent int
	Err     error
}

// ProgressFunc receives progress ticks. May be nil.
type ProgressFunc func(Progress)

// QueuedAction is one intended action in decision order. The engine emits
// these as intents; the external mutation sink applies them.
type QueuedAction struct {
	Kind          ActionKind
	AssetID       string
	DefID         string // purchases and repairs reference definitions/assets
	From          string
	To            string
	TargetFaction string
	TargetAsset   string
	Description   string
	Score         float64
	Confidence    float64
}

// ActionQueue is the ordered outcome of one faction's turn. Idle is a
// normal, successful outcome meaning no viable candidate existed.
type ActionQueue struct {
	FactionID string
	Turn      int
	Goal      *model.Goal // set when the faction should adopt a new goal
	Actions   []QueuedAction
	Economy   EconomicPlan
	Idle      bool
	Status    Phase // always PhaseComplete on return
}

// DecideTurn runs the full decision pipeline for one faction: intent,
// candidates, scoring, difficulty scaling and the economic plan, and
// returns the ordered action queue. The world snapshot is read-only
// throughout.
func (e *Engine) DecideTurn(w *model.WorldSnapshot, factionID string, d Difficulty, progress ProgressFunc) (ActionQueue, error) {
	report := func(p Phase, pct int) {
		if progress != nil {
			progress(Progress{Phase: p, Percent: pct})
		}
	}

	f, ok := w.Faction(factionID)
	if !ok {
		err := fmt.Errorf("unknown faction %q", factionID)
		if progress != nil {
			progress(Progress{Phase: PhaseComplete, Percent: 100, Err: err})
		}
		return ActionQueue{}, err
	}

	queue := ActionQueue{FactionID: factionID, Turn: w.Turn}

	report(PhaseAnalysis, 10)
	threat := e.BuildThreatMap(w, f)

	report(PhaseGoal, 25)
	goal := f.Goal
	if e.ShouldChangeGoal(w, f) {
		if selected := e.SelectBestGoal(w, f); selected != nil {
			goal = selected
			queue.Goal = selected
			slog.Debug("goal selected", "faction", f.ID, "goal", selected.Type)
		}
	}
	intent := e.DeriveIntent(w, f, goal)

	report(PhaseEconomy, 45)
	queue.Economy = e.PlanEconomy(w, f, intent, threat)

	report(PhaseScoring, 65)
	candidates := e.GenerateCandidates(w, f)
	scored := e.ScoreCandidates(w, f, intent, threat, candidates)
	scored = e.ApplyDifficulty(w, f, threat, scored, d)

	report(PhasePlanning, 85)
	if best, ok := pickBest(scored); ok {
		queue.Actions = append(queue.Actions, QueuedAction{
			Kind:          best.Kind,
			AssetID:       best.AssetID,
			From:          best.From,
			To:            best.To,
			TargetFaction: best.TargetFaction,
			TargetAsset:   best.TargetAsset,
			Description:   best.Description,
			Score:         best.Score,
			Confidence:    actionConfidence(best),
		})
	} else {
		queue.Idle = true
		slog.Info("no viable candidates, idling", "faction", f.ID, "turn", w.Turn)
	}

	// Spending intents follow the chosen action.
	for _, r := range SelectRepairsWithinBudget(queue.Economy.Repairs, queue.Economy.RepairReserve) {
		queue.Actions = append(queue.Actions, QueuedAction{
			Kind:        ActionRepair,
			AssetID:     r.AssetID,
			To:          r.System,
			Description: fmt.Sprintf("Repair %d damage for %d credits", r.Damage, r.Cost),
			Confidence:  1,
		})
	}
	if p := queue.Economy.Purchase; p != nil {
		queue.Actions = append(queue.Actions, QueuedAction{
			Kind:        ActionPurchase,
			DefID:       p.DefID,
			To:          p.System,
			Description: fmt.Sprintf("Commission %s for %d credits", p.Name, p.Cost),
			Confidence:  1,
		})
	}

	queue.Status = PhaseComplete
	report(PhaseComplete, 100)
	return queue, nil
}

// pickBest scans in order and keeps the first maximum, so equal scores
// break ties by generation order. Avoided actions are never picked.
func pickBest(scored []ScoredAction) (ScoredAction, bool) {
	var best ScoredAction
	found := false
	for _, sa := range scored {
		if sa.Avoid {
			continue
		}
		if !found || sa.Score > best.Score {
			best = sa
			found = true
		}
	}
	return best, found
}

// actionConfidence maps a scored action to 0–1. Attacks carry the
// predictor's win probability when it ran; everything else saturates with
// score.
func actionConfidence(sa ScoredAction) float64 {
	if sa.Kind == ActionAttack && sa.WinProbability > 0 {
		return sa.WinProbability
	}
	return clamp(sa.Score/(sa.Score+50), 0, 1)
}

// IntentSink receives the chosen actions for application to world state.
// The engine never mutates the world itself.
type IntentSink interface {
	Apply(ctx context.Context, factionID string, action QueuedAction) error
}

// ExecuteQueue streams the queue to the sink with a cosmetic per-action
// delay for external presentation. Cancelling the context aborts cleanly;
// no decision logic depends on the pacing.
func (e *Engine) ExecuteQueue(ctx context.Context, q ActionQueue, sink IntentSink, progress ProgressFunc) error {
	delay := time.Duration(e.tuning.ActionDelayMillis) * time.Millisecond
	for i, action := range q.Actions {
		if err := sink.Apply(ctx, q.FactionID, action); err != nil {
			return fmt.Errorf("apply %s: %w", action.Kind, err)
		}
		if progress != nil {
			progress(Progress{Phase: PhaseExecuting, Percent: (i + 1) * 100 / len(q.Actions)})
		}
		if delay > 0 && i < len(q.Actions)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	if progress != nil {
		progress(Progress{Phase: PhaseComplete, Percent: 100})
	}
	return nil
}
