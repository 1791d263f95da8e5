package ipc

import "github.com/tseward/overmind/model"

// Message type constants — must stay in sync with the frontend's
// MessageType enum.
const (
	TypeHello         = "hello"
	TypeAck           = "ack"
	TypeDecideTurn    = "decide_turn"
	TypeActionQueue   = "action_queue"
	TypePlanStrategy  = "plan_strategy"
	TypeStrategicPlan = "strategic_plan"
	TypeProgress      = "progress"
	TypeResolveAttack = "resolve_attack"
	TypeAttackResult  = "attack_result"
)

type HelloMessage struct {
	Client  string `json:"client"`
	Version string `json:"version,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// DecideTurnMessage asks the engine to decide one faction's turn against
// the enclosed snapshot. Seed feeds the easy-tier noise source so replays
// are reproducible.
type DecideTurnMessage struct {
	World      model.WorldSnapshot `json:"world"`
	FactionID  string              `json:"factionId"`
	Difficulty string              `json:"difficulty"`
	Seed       uint64              `json:"seed,omitempty"`
}

// PlanStrategyMessage asks for the deeper multi-turn planning artifact,
// player-visible for transparency.
type PlanStrategyMessage struct {
	World      model.WorldSnapshot `json:"world"`
	FactionID  string              `json:"factionId"`
	Horizon    int                 `json:"horizon,omitempty"`
	Difficulty string              `json:"difficulty"`
}

// ResolveAttackMessage asks for a live dice roll of one committed attack's
// damage expression. The frontend applies the result itself; the engine
// only evaluates the roll. Seed makes replays reproducible.
type ResolveAttackMessage struct {
	Damage   string `json:"damage"`
	Attacker int    `json:"attacker"`
	Defender int    `json:"defender"`
	Seed     uint64 `json:"seed,omitempty"`
}

// AttackResultMessage is the rolled outcome of a resolve_attack request.
type AttackResultMessage struct {
	Total int `json:"total"`
}

// ProgressMessage is one tick of the decision progress stream.
type ProgressMessage struct {
	FactionID string `json:"factionId"`
	Phase     string `json:"phase"`
	Percent   int    `json:"percent"`
	Error     string `json:"error,omitempty"`
}
