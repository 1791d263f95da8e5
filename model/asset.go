package model

// Category classifies assets and attributes into the three spheres a
// faction operates in. Attack patterns pit one category's rating against
// another's.
type Category string

const (
	CategoryForce   Category = "force"
	CategoryCunning Category = "cunning"
	CategoryWealth  Category = "wealth"
)

// Categories lists all spheres in canonical order.
var Categories = []Category{CategoryForce, CategoryCunning, CategoryWealth}

// AttackPattern describes how an asset attacks: which attribute it rolls,
// which the defender rolls, and the damage expression applied on a win.
type AttackPattern struct {
	Attacker Category `json:"attacker"`
	Defender Category `json:"defender"`
	Damage   string   `json:"damage"`
}

// AssetDefinition is a shared immutable catalog entry. Instances reference
// definitions by id; the catalog is initialized once at startup and never
// mutated.
type AssetDefinition struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       Category       `json:"category"`
	Cost           int            `json:"cost"`
	TechLevel      int            `json:"techLevel"`
	RequiredRating int            `json:"requiredRating"`
	Maintenance    int            `json:"maintenance"`
	MaxHP          int            `json:"maxHp"`
	Attack         *AttackPattern `json:"attack,omitempty"`
	Counter        string         `json:"counter,omitempty"` // counterattack damage expression
	Mobile         bool           `json:"mobile,omitempty"`
	MoveRange      int            `json:"moveRange,omitempty"`
	Income         int            `json:"income,omitempty"` // credits per turn
	Stealthed      bool           `json:"stealthed,omitempty"`
	Base           bool           `json:"base,omitempty"` // influence base marker
}

// CanAttack reports whether the definition carries an attack pattern.
func (d AssetDefinition) CanAttack() bool { return d.Attack != nil }

// Asset is a faction-owned instance of a catalog definition.
type Asset struct {
	ID        string `json:"id"`
	DefID     string `json:"defId"`
	System    string `json:"system"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	Stealthed bool   `json:"stealthed,omitempty"`
}

// Damage returns how many hit points the asset has lost.
func (a Asset) Damage() int {
	d := a.MaxHP - a.HP
	if d < 0 {
		return 0
	}
	return d
}

// DamageRatio returns lost hp as a fraction of max, or 0 when max is unset.
func (a Asset) DamageRatio() float64 {
	if a.MaxHP <= 0 {
		return 0
	}
	return float64(a.Damage()) / float64(a.MaxHP)
}
