// Package agent owns one frontend session: it decodes requests off the
// IPC connection, drives the decision engine, and streams progress back.
package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/tseward/overmind/engine"
	"github.com/tseward/overmind/ipc"
	"github.com/tseward/overmind/oracle"
)

// Agent handles decision requests for a single connected frontend.
type Agent struct {
	Conn   *ipc.Connection
	Tuning engine.Tuning

	// Shared across requests so compiled damage expressions stay cached.
	combat *oracle.Combat
}

func New(conn *ipc.Connection, tuning engine.Tuning) *Agent {
	return &Agent{Conn: conn, Tuning: tuning, combat: oracle.NewCombat()}
}

// HandleHello completes the handshake so the frontend knows the engine is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Conn.Client = hello.Client
	slog.Info("client identified", "client", hello.Client, "version", hello.Version)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleDecideTurn runs the full pipeline for one faction and replies
// with the action queue. Progress ticks stream on the same connection.
func (a *Agent) HandleDecideTurn(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.DecideTurnMessage
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal decide_turn: %w", err)
	}

	slog.Info("decide turn requested",
		"faction", req.FactionID,
		"turn", req.World.Turn,
		"difficulty", req.Difficulty,
		"factions", len(req.World.Factions),
		"systems", len(req.World.Systems),
	)

	eng := a.newEngine(req.Seed)
	progress := func(p engine.Progress) {
		msg := ipc.ProgressMessage{
			FactionID: req.FactionID,
			Phase:     string(p.Phase),
			Percent:   p.Percent,
		}
		if p.Err != nil {
			msg.Error = p.Err.Error()
		}
		if err := a.Conn.Send(ipc.TypeProgress, msg); err != nil {
			slog.Warn("progress send failed", "error", err)
		}
	}

	queue, err := eng.DecideTurn(&req.World, req.FactionID, engine.Difficulty(req.Difficulty), progress)
	if err != nil {
		return nil, fmt.Errorf("decide turn: %w", err)
	}

	resp, err := ipc.NewEnvelope(ipc.TypeActionQueue, ipc.FromQueue(queue))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// HandlePlanStrategy produces the deeper multi-turn planning artifact.
func (a *Agent) HandlePlanStrategy(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.PlanStrategyMessage
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal plan_strategy: %w", err)
	}

	f, ok := req.World.Faction(req.FactionID)
	if !ok {
		return nil, fmt.Errorf("unknown faction %q", req.FactionID)
	}

	eng := a.newEngine(0)
	plan := eng.PlanStrategy(&req.World, f, req.Horizon, engine.Difficulty(req.Difficulty))
	slog.Info("strategy planned",
		"faction", req.FactionID,
		"horizon", plan.Horizon,
		"actions", len(plan.Actions),
		"confidence", plan.Confidence,
	)

	resp, err := ipc.NewEnvelope(ipc.TypeStrategicPlan, ipc.FromPlan(plan))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// HandleResolveAttack rolls a committed attack's damage expression with
// live dice. Scoring and prediction stay on expected values; only attacks
// the frontend has resolved to apply come through here.
func (a *Agent) HandleResolveAttack(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.ResolveAttackMessage
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal resolve_attack: %w", err)
	}

	rng := rand.New(rand.NewPCG(req.Seed, req.Seed^0x9e3779b97f4a7c15))
	total, err := a.combat.RollDamage(req.Damage, req.Attacker, req.Defender, rng)
	if err != nil {
		return nil, fmt.Errorf("resolve attack: %w", err)
	}
	slog.Debug("attack resolved", "damage", req.Damage, "total", total)

	resp, err := ipc.NewEnvelope(ipc.TypeAttackResult, ipc.AttackResultMessage{Total: total})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// newEngine wires the default oracles. The seed only feeds easy-tier
// noise; all other behavior is deterministic.
func (a *Agent) newEngine(seed uint64) *engine.Engine {
	return engine.New(
		oracle.NewMovement(),
		a.combat,
		oracle.NewCatalog(nil),
		a.Tuning,
		engine.SeededNoise(seed),
	)
}
