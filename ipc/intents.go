package ipc

import (
	"github.com/tseward/overmind/engine"
	"github.com/tseward/overmind/model"
)

// Intent kind constants — the mutation counterparts the frontend applies.
// The engine only ever emits these; it never mutates world state.
const (
	IntentMove     = "apply_move"
	IntentAttack   = "apply_attack"
	IntentExpand   = "apply_expand"
	IntentDefend   = "apply_defend"
	IntentPurchase = "apply_purchase"
	IntentRepair   = "apply_repair"
)

// ActionIntent is one intended action on the wire.
type ActionIntent struct {
	Intent        string  `json:"intent"`
	AssetID       string  `json:"assetId,omitempty"`
	DefID         string  `json:"defId,omitempty"`
	From          string  `json:"from,omitempty"`
	To            string  `json:"to,omitempty"`
	TargetFaction string  `json:"targetFaction,omitempty"`
	TargetAsset   string  `json:"targetAsset,omitempty"`
	Description   string  `json:"description"`
	Confidence    float64 `json:"confidence"`
}

// ActionQueueMessage is the reply to a decide_turn request.
type ActionQueueMessage struct {
	FactionID string         `json:"factionId"`
	Turn      int            `json:"turn"`
	Goal      *model.Goal    `json:"goal,omitempty"`
	Actions   []ActionIntent `json:"actions"`
	Idle      bool           `json:"idle"`
	Status    string         `json:"status"`
}

// intentKinds maps engine action kinds onto wire intent names.
var intentKinds = map[engine.ActionKind]string{
	engine.ActionMove:     IntentMove,
	engine.ActionAttack:   IntentAttack,
	engine.ActionExpand:   IntentExpand,
	engine.ActionDefend:   IntentDefend,
	engine.ActionPurchase: IntentPurchase,
	engine.ActionRepair:   IntentRepair,
}

// FromQueue converts an engine action queue to its wire form.
func FromQueue(q engine.ActionQueue) ActionQueueMessage {
	msg := ActionQueueMessage{
		FactionID: q.FactionID,
		Turn:      q.Turn,
		Goal:      q.Goal,
		Idle:      q.Idle,
		Status:    string(q.Status),
	}
	for _, a := range q.Actions {
		msg.Actions = append(msg.Actions, ActionIntent{
			Intent:        intentKinds[a.Kind],
			AssetID:       a.AssetID,
			DefID:         a.DefID,
			From:          a.From,
			To:            a.To,
			TargetFaction: a.TargetFaction,
			TargetAsset:   a.TargetAsset,
			Description:   a.Description,
			Confidence:    a.Confidence,
		})
	}
	return msg
}

// PlannedActionMessage is one strategic-plan step on the wire.
type PlannedActionMessage struct {
	Turn          int    `json:"turn"`
	Intent        string `json:"intent"`
	AssetID       string `json:"assetId,omitempty"`
	DefID         string `json:"defId,omitempty"`
	From          string `json:"from,omitempty"`
	To            string `json:"to,omitempty"`
	TargetFaction string `json:"targetFaction,omitempty"`
	TargetAsset   string `json:"targetAsset,omitempty"`
	Cost          int    `json:"cost,omitempty"`
	Description   string `json:"description"`
	DependsOn     int    `json:"dependsOn"`
}

// ContingencyMessage is one plan fallback on the wire.
type ContingencyMessage struct {
	Trigger     string `json:"trigger"`
	WatchAsset  string `json:"watchAsset,omitempty"`
	Description string `json:"description"`
	Fallback    string `json:"fallback"`
}

// StrategicPlanMessage is the reply to a plan_strategy request.
type StrategicPlanMessage struct {
	ID            string                 `json:"id"`
	FactionID     string                 `json:"factionId"`
	CreatedTurn   int                    `json:"createdTurn"`
	Horizon       int                    `json:"horizon"`
	Primary       string                 `json:"primary"`
	Secondary     []string               `json:"secondary,omitempty"`
	Actions       []PlannedActionMessage `json:"actions"`
	Contingencies []ContingencyMessage   `json:"contingencies,omitempty"`
	Confidence    float64                `json:"confidence"`
}

// FromPlan converts an engine strategic plan to its wire form.
func FromPlan(p *engine.StrategicPlan) StrategicPlanMessage {
	msg := StrategicPlanMessage{
		ID:          p.ID,
		FactionID:   p.FactionID,
		CreatedTurn: p.CreatedTurn,
		Horizon:     p.Horizon,
		Primary:     p.Primary.Description,
		Confidence:  p.Confidence,
	}
	for _, s := range p.Secondary {
		msg.Secondary = append(msg.Secondary, s.Description)
	}
	for _, a := range p.Actions {
		msg.Actions = append(msg.Actions, PlannedActionMessage{
			Turn:          a.Turn,
			Intent:        intentKinds[a.Kind],
			AssetID:       a.AssetID,
			DefID:         a.DefID,
			From:          a.From,
			To:            a.To,
			TargetFaction: a.TargetFaction,
			TargetAsset:   a.TargetAsset,
			Cost:          a.Cost,
			Description:   a.Description,
			DependsOn:     a.DependsOn,
		})
	}
	for _, c := range p.Contingencies {
		msg.Contingencies = append(msg.Contingencies, ContingencyMessage{
			Trigger:     string(c.Trigger),
			WatchAsset:  c.WatchAsset,
			Description: c.Description,
			Fallback:    c.Fallback,
		})
	}
	return msg
}
