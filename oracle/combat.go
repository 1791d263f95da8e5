// Package oracle provides the default capability-query implementations the
// decision engine consumes: combat odds, movement legality, and the asset
// definition catalog. The external game may substitute its own.
package oracle

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// diceRe matches dice terms like "1d8" or "2d6" inside a damage expression.
var diceRe = regexp.MustCompile(`(\d+)d(\d+)`)

// Combat evaluates damage expressions and opposed-roll win odds.
// Damage expressions are arithmetic over dice terms ("1d8+2", "2d6") and
// may reference the contest ratings as "attacker" and "defender".
// Expressions compile to expr bytecode once and are cached.
type Combat struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
}

func NewCombat() *Combat {
	return &Combat{cache: make(map[string]*vm.Program)}
}

// compile normalizes dice notation to roll(n, s) calls and compiles the
// result. Compiled programs are cached by original source.
func (c *Combat) compile(src string) (*vm.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prog, ok := c.cache[src]; ok {
		return prog, nil
	}

	normalized := diceRe.ReplaceAllString(src, "roll($1, $2)")
	prog, err := expr.Compile(normalized)
	if err != nil {
		return nil, fmt.Errorf("compile damage expression %q: %w", src, err)
	}
	c.cache[src] = prog
	return prog, nil
}

// ExpectedDamage evaluates a damage expression with every dice term at its
// statistical mean. Deterministic; used by scoring and prediction.
func (c *Combat) ExpectedDamage(damage string, attacker, defender int) (float64, error) {
	prog, err := c.compile(damage)
	if err != nil {
		return 0, err
	}
	env := map[string]any{
		"attacker": attacker,
		"defender": defender,
		"roll": func(n, sides int) float64 {
			return float64(n) * float64(sides+1) / 2
		},
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate damage expression %q: %w", damage, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("damage expression %q: %w", damage, err)
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

// RollDamage evaluates a damage expression rolling real dice from rng.
// Only ability resolution uses this; scoring never does.
func (c *Combat) RollDamage(damage string, attacker, defender int, rng *rand.Rand) (int, error) {
	prog, err := c.compile(damage)
	if err != nil {
		return 0, err
	}
	env := map[string]any{
		"attacker": attacker,
		"defender": defender,
		"roll": func(n, sides int) float64 {
			total := 0
			for range n {
				total += rng.IntN(sides) + 1
			}
			return float64(total)
		},
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("evaluate damage expression %q: %w", damage, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("damage expression %q: %w", damage, err)
	}
	if v < 0 {
		v = 0
	}
	return int(v), nil
}

// WinProbability implements the engine's combat oracle interface.
func (c *Combat) WinProbability(attackerRating, defenderRating int) float64 {
	return WinProbability(attackerRating, defenderRating)
}

// WinProbability returns the chance that attacker d10+rating meets or
// beats defender d10+rating. Attacker wins ties, so equal ratings favor
// the attacker at 0.55. Clamped to [0.05, 0.95]: there is always a chance
// either way. Analytic, not sampled, so prediction stays deterministic.
func WinProbability(attackerRating, defenderRating int) float64 {
	diff := defenderRating - attackerRating
	wins := 0
	for a := 1; a <= 10; a++ {
		for d := 1; d <= 10; d++ {
			if a-d >= diff {
				wins++
			}
		}
	}
	p := float64(wins) / 100
	if p < 0.05 {
		p = 0.05
	}
	if p > 0.95 {
		p = 0.95
	}
	return p
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric result %q", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("non-numeric result of type %T", v)
	}
}
