package engine

import (
	"context"
	"testing"

	"github.com/tseward/overmind/model"
)

func TestDecideTurnProducesAttack(t *testing.T) {
	e := testEngine()
	w := testWorld()

	var ticks []Progress
	queue, err := e.DecideTurn(w, "crimson", DifficultyNormal, func(p Progress) {
		ticks = append(ticks, p)
	})
	if err != nil {
		t.Fatalf("DecideTurn failed: %v", err)
	}

	if queue.FactionID != "crimson" || queue.Turn != w.Turn {
		t.Errorf("queue header = %s/%d, want crimson/%d", queue.FactionID, queue.Turn, w.Turn)
	}
	if queue.Status != PhaseComplete {
		t.Errorf("status = %s, want %s", queue.Status, PhaseComplete)
	}
	if queue.Idle {
		t.Error("queue idle despite viable candidates")
	}
	if queue.Goal == nil {
		t.Error("no goal proposed for a goalless faction")
	}
	if len(queue.Actions) == 0 {
		t.Fatal("no actions queued")
	}
	if queue.Actions[0].Kind != ActionAttack {
		t.Errorf("lead action = %s, want attack", queue.Actions[0].Kind)
	}
	if c := queue.Actions[0].Confidence; c <= 0 || c > 1 {
		t.Errorf("lead confidence = %f, want (0, 1]", c)
	}

	// Progress runs the phases in order and finishes at 100.
	if len(ticks) == 0 {
		t.Fatal("no progress ticks")
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Percent < ticks[i-1].Percent {
			t.Errorf("progress went backwards: %d%% after %d%%", ticks[i].Percent, ticks[i-1].Percent)
		}
	}
	last := ticks[len(ticks)-1]
	if last.Phase != PhaseComplete || last.Percent != 100 || last.Err != nil {
		t.Errorf("final tick = %+v, want complete/100/no error", last)
	}
}

func TestDecideTurnIdleWithoutCandidates(t *testing.T) {
	e := testEngine()
	// A destitute hermit: no assets, no credits, nothing to do.
	w := &model.WorldSnapshot{
		Turn:    3,
		Systems: []model.System{{ID: "sol", Name: "Sol", TechLevel: 4, Value: 5}},
		Factions: []model.Faction{{
			ID: "hermit", Name: "Hermits", HomeSystem: "sol", HP: 4, MaxHP: 4,
		}},
	}

	queue, err := e.DecideTurn(w, "hermit", DifficultyNormal, nil)
	if err != nil {
		t.Fatalf("DecideTurn failed: %v", err)
	}
	if !queue.Idle {
		t.Error("expected an idle turn")
	}
	if len(queue.Actions) != 0 {
		t.Errorf("idle turn queued %d actions", len(queue.Actions))
	}
	if queue.Status != PhaseComplete {
		t.Errorf("status = %s, want %s", queue.Status, PhaseComplete)
	}
	// Idling is not goalless: the fallback goal is still proposed.
	if queue.Goal == nil {
		t.Error("idle turn proposed no goal")
	}
}

func TestDecideTurnUnknownFaction(t *testing.T) {
	e := testEngine()
	w := testWorld()

	var last Progress
	_, err := e.DecideTurn(w, "nobody", DifficultyNormal, func(p Progress) { last = p })
	if err == nil {
		t.Fatal("expected an error for an unknown faction")
	}
	if last.Err == nil || last.Phase != PhaseComplete {
		t.Errorf("terminal tick = %+v, want complete with error", last)
	}
}

func TestActionConfidence(t *testing.T) {
	attack := ScoredAction{Candidate: Candidate{Kind: ActionAttack}, Score: 80, WinProbability: 0.85}
	if got := actionConfidence(attack); got != 0.85 {
		t.Errorf("attack confidence = %f, want the predictor's 0.85", got)
	}

	move := ScoredAction{Candidate: Candidate{Kind: ActionMove}, Score: 50}
	if got := actionConfidence(move); got != 0.5 {
		t.Errorf("move confidence = %f, want 0.5", got)
	}

	idle := ScoredAction{Candidate: Candidate{Kind: ActionDefend}, Score: 0}
	if got := actionConfidence(idle); got != 0 {
		t.Errorf("zero-score confidence = %f, want 0", got)
	}
}

type recordingSink struct {
	applied []QueuedAction
	fail    bool
}

func (s *recordingSink) Apply(ctx context.Context, factionID string, action QueuedAction) error {
	if s.fail {
		return context.Canceled
	}
	s.applied = append(s.applied, action)
	return nil
}

func TestExecuteQueue(t *testing.T) {
	tuning := DefaultTuning()
	tuning.ActionDelayMillis = 0 // no pacing in tests
	e := New(testEngine().movement, testEngine().combat, testEngine().catalog, tuning, SeededNoise(1))

	queue := ActionQueue{
		FactionID: "crimson",
		Actions: []QueuedAction{
			{Kind: ActionAttack, Description: "strike"},
			{Kind: ActionRepair, Description: "patch up"},
		},
	}

	sink := &recordingSink{}
	var last Progress
	if err := e.ExecuteQueue(context.Background(), queue, sink, func(p Progress) { last = p }); err != nil {
		t.Fatalf("ExecuteQueue failed: %v", err)
	}
	if len(sink.applied) != 2 {
		t.Errorf("applied %d actions, want 2", len(sink.applied))
	}
	if last.Phase != PhaseComplete || last.Percent != 100 {
		t.Errorf("final tick = %+v, want complete/100", last)
	}

	if err := e.ExecuteQueue(context.Background(), queue, &recordingSink{fail: true}, nil); err == nil {
		t.Error("sink failure not propagated")
	}
}
