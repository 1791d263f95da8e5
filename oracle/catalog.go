package oracle

import "github.com/tseward/overmind/model"

// Catalog is the immutable asset-definition registry, initialized once at
// startup and only ever read afterward.
type Catalog struct {
	defs  map[string]model.AssetDefinition
	order []string
}

// NewCatalog builds a catalog from the given definitions. Pass nil to use
// the built-in set.
func NewCatalog(defs []model.AssetDefinition) *Catalog {
	if defs == nil {
		defs = builtinDefinitions
	}
	c := &Catalog{defs: make(map[string]model.AssetDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; dup {
			continue
		}
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c
}

// Definition returns the catalog entry for the given id.
func (c *Catalog) Definition(id string) (model.AssetDefinition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// All returns every definition in registration order.
func (c *Catalog) All() []model.AssetDefinition {
	out := make([]model.AssetDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// BaseOfInfluenceID is the definition planted by expand-influence actions.
const BaseOfInfluenceID = "base_of_influence"

func atk(a, d model.Category, dmg string) *model.AttackPattern {
	return &model.AttackPattern{Attacker: a, Defender: d, Damage: dmg}
}

// builtinDefinitions is the stock catalog. Costs, tech levels and damage
// expressions are game data, not engine logic.
var builtinDefinitions = []model.AssetDefinition{
	// Force
	{ID: "security_detail", Name: "Security Detail", Category: model.CategoryForce,
		Cost: 3, TechLevel: 0, RequiredRating: 1, MaxHP: 3,
		Attack: atk(model.CategoryForce, model.CategoryForce, "1d4+1"), Counter: "1d4"},
	{ID: "postech_infantry", Name: "Postech Infantry", Category: model.CategoryForce,
		Cost: 5, TechLevel: 3, RequiredRating: 2, MaxHP: 6,
		Attack: atk(model.CategoryForce, model.CategoryForce, "1d8"), Counter: "1d6"},
	{ID: "elite_guard", Name: "Elite Guard", Category: model.CategoryForce,
		Cost: 6, TechLevel: 2, RequiredRating: 2, MaxHP: 6,
		Attack: atk(model.CategoryForce, model.CategoryForce, "1d6+2"), Counter: "1d6+1"},
	{ID: "strike_fleet", Name: "Strike Fleet", Category: model.CategoryForce,
		Cost: 8, TechLevel: 4, RequiredRating: 3, Maintenance: 1, MaxHP: 8,
		Attack: atk(model.CategoryForce, model.CategoryForce, "1d8+2"), Counter: "1d6",
		Mobile: true, MoveRange: 2},
	{ID: "gunship_wing", Name: "Gunship Wing", Category: model.CategoryForce,
		Cost: 10, TechLevel: 4, RequiredRating: 4, Maintenance: 1, MaxHP: 6,
		Attack: atk(model.CategoryForce, model.CategoryForce, "2d6"), Counter: "1d4",
		Mobile: true, MoveRange: 1},
	{ID: "planetary_defenses", Name: "Planetary Defenses", Category: model.CategoryForce,
		Cost: 12, TechLevel: 4, RequiredRating: 4, MaxHP: 10,
		Counter: "2d8"},

	// Cunning
	{ID: "informers", Name: "Informers", Category: model.CategoryCunning,
		Cost: 2, TechLevel: 0, RequiredRating: 1, MaxHP: 3,
		Attack: atk(model.CategoryCunning, model.CategoryCunning, "1d4")},
	{ID: "smugglers", Name: "Smugglers", Category: model.CategoryCunning,
		Cost: 4, TechLevel: 2, RequiredRating: 1, MaxHP: 4,
		Attack: atk(model.CategoryCunning, model.CategoryWealth, "1d4"),
		Mobile: true, MoveRange: 2, Income: 1},
	{ID: "saboteurs", Name: "Saboteurs", Category: model.CategoryCunning,
		Cost: 5, TechLevel: 2, RequiredRating: 2, MaxHP: 6,
		Attack: atk(model.CategoryCunning, model.CategoryCunning, "2d4"), Counter: "1d4",
		Stealthed: true},
	{ID: "seditionists", Name: "Seditionists", Category: model.CategoryCunning,
		Cost: 6, TechLevel: 1, RequiredRating: 2, MaxHP: 8,
		Attack: atk(model.CategoryCunning, model.CategoryCunning, "2d6"),
		Stealthed: true},
	{ID: "covert_shipping", Name: "Covert Shipping", Category: model.CategoryCunning,
		Cost: 6, TechLevel: 3, RequiredRating: 3, Maintenance: 1, MaxHP: 4,
		Mobile: true, MoveRange: 3, Income: 1, Stealthed: true},

	// Wealth
	{ID: "franchise", Name: "Franchise", Category: model.CategoryWealth,
		Cost: 3, TechLevel: 1, RequiredRating: 1, MaxHP: 3,
		Attack: atk(model.CategoryWealth, model.CategoryWealth, "1d4"), Income: 1},
	{ID: "marketers", Name: "Marketers", Category: model.CategoryWealth,
		Cost: 4, TechLevel: 1, RequiredRating: 2, MaxHP: 4,
		Attack: atk(model.CategoryWealth, model.CategoryWealth, "1d4+1")},
	{ID: "freighter_contract", Name: "Freighter Contract", Category: model.CategoryWealth,
		Cost: 5, TechLevel: 2, RequiredRating: 1, MaxHP: 4,
		Mobile: true, MoveRange: 2, Income: 2},
	{ID: "commodities_broker", Name: "Commodities Broker", Category: model.CategoryWealth,
		Cost: 6, TechLevel: 2, RequiredRating: 2, MaxHP: 4, Income: 2},
	{ID: "bank", Name: "Bank", Category: model.CategoryWealth,
		Cost: 8, TechLevel: 2, RequiredRating: 3, MaxHP: 6, Income: 3, Counter: "1d4"},

	// Influence
	{ID: BaseOfInfluenceID, Name: "Base of Influence", Category: model.CategoryCunning,
		Cost: 4, TechLevel: 0, RequiredRating: 0, MaxHP: 4, Base: true},
}
