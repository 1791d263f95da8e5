package agent

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/tseward/overmind/engine"
	"github.com/tseward/overmind/ipc"
	"github.com/tseward/overmind/model"
)

// pipeAgent returns an agent whose connection writes into a drained pipe,
// so progress streaming during a handler call cannot block the test.
func pipeAgent(t *testing.T) *Agent {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	go func() {
		for {
			if _, err := ipc.ReadEnvelope(client); err != nil {
				return
			}
		}
	}()
	return New(ipc.NewConnection(server, nil), engine.DefaultTuning())
}

func sampleWorld() model.WorldSnapshot {
	return model.WorldSnapshot{
		Turn: 2,
		Systems: []model.System{
			{ID: "sol", Name: "Sol", TechLevel: 4, Value: 5},
			{ID: "vega", Name: "Vega", TechLevel: 2, Value: 3},
		},
		Routes: []model.Route{{A: "sol", B: "vega"}},
		Factions: []model.Faction{
			{
				ID: "crimson", Name: "Crimson Pact", Tags: []model.Tag{model.TagWarlike},
				Attributes: model.Attributes{Force: 5, Cunning: 2, Wealth: 2},
				HP:         16, MaxHP: 16, Credits: 8, HomeSystem: "sol",
				Assets: []model.Asset{{ID: "c1", DefID: "elite_guard", System: "sol", HP: 6, MaxHP: 6}},
			},
			{
				ID: "azure", Name: "Azure Combine",
				Attributes: model.Attributes{Force: 2, Cunning: 2, Wealth: 5},
				HP:         14, MaxHP: 14, Credits: 8, HomeSystem: "vega",
				Assets: []model.Asset{{ID: "a1", DefID: "franchise", System: "vega", HP: 3, MaxHP: 3}},
			},
		},
	}
}

func TestHandleHello(t *testing.T) {
	a := pipeAgent(t)
	env, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Client: "frontend", Version: "0.3"})

	resp, err := a.HandleHello(env)
	if err != nil {
		t.Fatalf("HandleHello failed: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeAck {
		t.Fatalf("response = %+v, want an ack", resp)
	}
	if a.Conn.Client != "frontend" {
		t.Errorf("connection client = %q, want frontend", a.Conn.Client)
	}
}

func TestHandleDecideTurn(t *testing.T) {
	a := pipeAgent(t)
	env, err := ipc.NewEnvelope(ipc.TypeDecideTurn, ipc.DecideTurnMessage{
		World:      sampleWorld(),
		FactionID:  "crimson",
		Difficulty: "normal",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := a.HandleDecideTurn(env)
	if err != nil {
		t.Fatalf("HandleDecideTurn failed: %v", err)
	}
	if resp.Type != ipc.TypeActionQueue {
		t.Fatalf("response type = %q, want %q", resp.Type, ipc.TypeActionQueue)
	}

	var queue ipc.ActionQueueMessage
	if err := json.Unmarshal(resp.Data, &queue); err != nil {
		t.Fatalf("unmarshal queue: %v", err)
	}
	if queue.FactionID != "crimson" || queue.Turn != 2 {
		t.Errorf("queue header = %s/%d, want crimson/2", queue.FactionID, queue.Turn)
	}
	if queue.Status != "complete" {
		t.Errorf("status = %q, want complete", queue.Status)
	}
	if queue.Idle && len(queue.Actions) > 0 {
		t.Error("idle queue carries actions")
	}
}

func TestHandleDecideTurnUnknownFaction(t *testing.T) {
	a := pipeAgent(t)
	env, _ := ipc.NewEnvelope(ipc.TypeDecideTurn, ipc.DecideTurnMessage{
		World:     sampleWorld(),
		FactionID: "nobody",
	})
	if _, err := a.HandleDecideTurn(env); err == nil {
		t.Error("expected an error for an unknown faction")
	}
}

func TestHandlePlanStrategy(t *testing.T) {
	a := pipeAgent(t)
	env, err := ipc.NewEnvelope(ipc.TypePlanStrategy, ipc.PlanStrategyMessage{
		World:      sampleWorld(),
		FactionID:  "crimson",
		Horizon:    3,
		Difficulty: "normal",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := a.HandlePlanStrategy(env)
	if err != nil {
		t.Fatalf("HandlePlanStrategy failed: %v", err)
	}
	if resp.Type != ipc.TypeStrategicPlan {
		t.Fatalf("response type = %q, want %q", resp.Type, ipc.TypeStrategicPlan)
	}

	var plan ipc.StrategicPlanMessage
	if err := json.Unmarshal(resp.Data, &plan); err != nil {
		t.Fatalf("unmarshal plan: %v", err)
	}
	if plan.FactionID != "crimson" || plan.Horizon != 3 {
		t.Errorf("plan header = %s/%d, want crimson/3", plan.FactionID, plan.Horizon)
	}
	if plan.Primary == "" {
		t.Error("plan has no primary objective")
	}
	if plan.Confidence < 0.2 || plan.Confidence > 1 {
		t.Errorf("confidence %f outside [0.2, 1]", plan.Confidence)
	}
}

func TestHandleResolveAttack(t *testing.T) {
	a := pipeAgent(t)
	env, err := ipc.NewEnvelope(ipc.TypeResolveAttack, ipc.ResolveAttackMessage{
		Damage:   "1d8+2",
		Attacker: 5,
		Defender: 2,
		Seed:     9,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := a.HandleResolveAttack(env)
	if err != nil {
		t.Fatalf("HandleResolveAttack failed: %v", err)
	}
	if resp.Type != ipc.TypeAttackResult {
		t.Fatalf("response type = %q, want %q", resp.Type, ipc.TypeAttackResult)
	}

	var res ipc.AttackResultMessage
	if err := json.Unmarshal(resp.Data, &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if res.Total < 3 || res.Total > 10 {
		t.Errorf("1d8+2 rolled %d, want within [3, 10]", res.Total)
	}

	// Same seed, same roll: replays must reproduce.
	again, err := a.HandleResolveAttack(env)
	if err != nil {
		t.Fatal(err)
	}
	var res2 ipc.AttackResultMessage
	if err := json.Unmarshal(again.Data, &res2); err != nil {
		t.Fatal(err)
	}
	if res2.Total != res.Total {
		t.Errorf("seeded re-roll = %d, want %d", res2.Total, res.Total)
	}
}

func TestHandleResolveAttackBadExpression(t *testing.T) {
	a := pipeAgent(t)
	env, _ := ipc.NewEnvelope(ipc.TypeResolveAttack, ipc.ResolveAttackMessage{Damage: "1d8 +"})
	if _, err := a.HandleResolveAttack(env); err == nil {
		t.Error("expected an error for a malformed damage expression")
	}
}

func TestHandleDecideTurnMalformedPayload(t *testing.T) {
	a := pipeAgent(t)
	env := ipc.Envelope{Type: ipc.TypeDecideTurn, Data: []byte(`{"world": 12}`)}
	if _, err := a.HandleDecideTurn(env); err == nil {
		t.Error("expected an unmarshal error")
	}
}
