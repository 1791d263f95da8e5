package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tseward/overmind/model"
)

// ActionKind is the closed set of things a faction can do with its turn.
// ActionPurchase and ActionRepair only appear in action queues and
// strategic plans; the per-turn candidate generator never emits them.
type ActionKind string

const (
	ActionMove     ActionKind = "move"
	ActionAttack   ActionKind = "attack"
	ActionExpand   ActionKind = "expand"
	ActionDefend   ActionKind = "defend"
	ActionPurchase ActionKind = "purchase"
	ActionRepair   ActionKind = "repair"
)

// Candidate is one legal action a faction could take this turn. Ephemeral:
// generated, scored and discarded within a single decision.
type Candidate struct {
	Kind          ActionKind
	AssetID       string // acting asset; empty for expand and defend
	From          string
	To            string
	TargetFaction string
	TargetAsset   string
	Description   string
}

// GenerateCandidates enumerates every currently legal move, attack,
// expand-influence and defend action for the faction. Assets whose
// definition reference is unknown are dropped silently; the engine
// degrades to fewer candidates rather than failing the turn.
func (e *Engine) GenerateCandidates(w *model.WorldSnapshot, f *model.Faction) []Candidate {
	var out []Candidate
	out = append(out, e.moveCandidates(w, f)...)
	out = append(out, e.attackCandidates(w, f)...)
	out = append(out, e.expandCandidates(w, f)...)
	out = append(out, e.defendCandidates(w, f)...)
	return out
}

// moveRange returns how far the asset may move, or 0 when it may not.
// An asset moves when its definition says so, when it belongs to a
// mobility-bearing category (force assets can always redeploy one hop),
// or when the faction carries a blanket-mobility trait.
func (e *Engine) moveRange(f *model.Faction, def model.AssetDefinition) int {
	if def.Mobile && def.MoveRange > 0 {
		return def.MoveRange
	}
	if def.Category == model.CategoryForce || hasBlanketMobility(f) {
		return 1
	}
	return 0
}

func (e *Engine) moveCandidates(w *model.WorldSnapshot, f *model.Faction) []Candidate {
	var out []Candidate
	for _, a := range f.Assets {
		def, ok := e.definition(a)
		if !ok {
			slog.Debug("dropping asset with unknown definition", "asset", a.ID, "def", a.DefID)
			continue
		}
		hops := e.moveRange(f, def)
		if hops == 0 {
			continue
		}
		for _, dest := range e.movement.Reachable(w, a.System, hops) {
			out = append(out, Candidate{
				Kind:        ActionMove,
				AssetID:     a.ID,
				From:        a.System,
				To:          dest,
				Description: fmt.Sprintf("Move %s from %s to %s", def.Name, e.systemName(w, a.System), e.systemName(w, dest)),
			})
		}
	}
	return out
}

func (e *Engine) attackCandidates(w *model.WorldSnapshot, f *model.Faction) []Candidate {
	var out []Candidate
	for _, a := range f.Assets {
		def, ok := e.definition(a)
		if !ok || !def.CanAttack() {
			continue
		}
		for _, target := range w.RivalAssetsAt(a.System, f.ID, false) {
			tdef, ok := e.catalog.Definition(target.Asset.DefID)
			targetName := target.Asset.DefID
			if ok {
				targetName = tdef.Name
			}
			out = append(out, Candidate{
				Kind:          ActionAttack,
				AssetID:       a.ID,
				From:          a.System,
				To:            a.System,
				TargetFaction: target.Owner.ID,
				TargetAsset:   target.Asset.ID,
				Description:   fmt.Sprintf("Attack %s (%s) at %s with %s", targetName, target.Owner.Name, e.systemName(w, a.System), def.Name),
			})
		}
	}
	return out
}

func (e *Engine) expandCandidates(w *model.WorldSnapshot, f *model.Faction) []Candidate {
	var out []Candidate
	for _, sys := range f.Systems() {
		if e.hasInfluenceBase(f, sys) {
			continue
		}
		out = append(out, Candidate{
			Kind:        ActionExpand,
			To:          sys,
			Description: fmt.Sprintf("Establish influence base at %s", e.systemName(w, sys)),
		})
	}
	return out
}

func (e *Engine) defendCandidates(w *model.WorldSnapshot, f *model.Faction) []Candidate {
	var out []Candidate
	for _, sys := range f.Systems() {
		assets := f.AssetsIn(sys)
		if len(assets) == 0 {
			continue
		}
		names := make([]string, 0, len(assets))
		for _, a := range assets {
			if def, ok := e.definition(a); ok {
				names = append(names, def.Name)
			}
		}
		out = append(out, Candidate{
			Kind:        ActionDefend,
			From:        sys,
			To:          sys,
			Description: fmt.Sprintf("Hold position at %s with %s", e.systemName(w, sys), strings.Join(names, ", ")),
		})
	}
	return out
}

// hasInfluenceBase reports whether the faction has a foothold in the
// system. The homeworld counts implicitly.
func (e *Engine) hasInfluenceBase(f *model.Faction, systemID string) bool {
	if f.HomeSystem == systemID {
		return true
	}
	for _, a := range f.AssetsIn(systemID) {
		if def, ok := e.definition(a); ok && def.Base {
			return true
		}
	}
	return false
}

func (e *Engine) systemName(w *model.WorldSnapshot, id string) string {
	if s, ok := w.System(id); ok && s.Name != "" {
		return s.Name
	}
	return id
}
