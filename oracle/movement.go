package oracle

import (
	"sort"

	"github.com/tseward/overmind/model"
)

// Movement answers reachability queries over the world's route graph.
type Movement struct{}

func NewMovement() *Movement { return &Movement{} }

// Reachable returns every system id reachable from the origin within the
// given number of hops, excluding the origin itself. Result is sorted for
// deterministic candidate generation.
func (m *Movement) Reachable(w *model.WorldSnapshot, from string, hops int) []string {
	if hops <= 0 {
		return nil
	}
	if _, ok := w.System(from); !ok {
		return nil
	}

	visited := map[string]bool{from: true}
	frontier := []string{from}
	var out []string

	for range hops {
		var next []string
		for _, id := range frontier {
			for _, n := range w.Neighbors(id) {
				if visited[n] {
					continue
				}
				visited[n] = true
				next = append(next, n)
				out = append(out, n)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	sort.Strings(out)
	return out
}
