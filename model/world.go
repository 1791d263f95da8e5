package model

// System is a node in the world graph.
type System struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TechLevel int    `json:"techLevel"`
	Value     int    `json:"value"` // strategic value, 0–10
}

// Route is an undirected edge between two systems.
type Route struct {
	A string `json:"a"`
	B string `json:"b"`
}

// WorldSnapshot is the read-only view of the world a faction decides
// against. It is taken at the start of the faction's decision phase and
// never mutated by scoring or planning.
type WorldSnapshot struct {
	Turn     int       `json:"turn"`
	Systems  []System  `json:"systems"`
	Routes   []Route   `json:"routes"`
	Factions []Faction `json:"factions"`
}

// System returns the system with the given id.
func (w *WorldSnapshot) System(id string) (System, bool) {
	for _, s := range w.Systems {
		if s.ID == id {
			return s, true
		}
	}
	return System{}, false
}

// Faction returns the faction with the given id.
func (w *WorldSnapshot) Faction(id string) (*Faction, bool) {
	for i := range w.Factions {
		if w.Factions[i].ID == id {
			return &w.Factions[i], true
		}
	}
	return nil, false
}

// Rivals returns every faction other than the one named.
func (w *WorldSnapshot) Rivals(factionID string) []*Faction {
	var out []*Faction
	for i := range w.Factions {
		if w.Factions[i].ID != factionID {
			out = append(out, &w.Factions[i])
		}
	}
	return out
}

// Neighbors returns the systems directly connected to the given one.
func (w *WorldSnapshot) Neighbors(systemID string) []string {
	var out []string
	for _, r := range w.Routes {
		switch systemID {
		case r.A:
			out = append(out, r.B)
		case r.B:
			out = append(out, r.A)
		}
	}
	return out
}

// OwnedAsset holds an asset together with its owning faction, for
// occupancy queries that cross faction boundaries.
type OwnedAsset struct {
	Owner *Faction
	Asset Asset
}

// AssetsAt returns every asset in the system, across all factions.
func (w *WorldSnapshot) AssetsAt(systemID string) []OwnedAsset {
	var out []OwnedAsset
	for i := range w.Factions {
		f := &w.Factions[i]
		for _, a := range f.Assets {
			if a.System == systemID {
				out = append(out, OwnedAsset{Owner: f, Asset: a})
			}
		}
	}
	return out
}

// RivalAssetsAt returns assets in the system owned by factions other than
// the named one. Stealthed assets are excluded unless includeStealthed.
func (w *WorldSnapshot) RivalAssetsAt(systemID, factionID string, includeStealthed bool) []OwnedAsset {
	var out []OwnedAsset
	for _, oa := range w.AssetsAt(systemID) {
		if oa.Owner.ID == factionID {
			continue
		}
		if oa.Asset.Stealthed && !includeStealthed {
			continue
		}
		out = append(out, oa)
	}
	return out
}

// FactionStrength sums a faction's attribute ratings plus its asset count.
// Used for strongest/weakest rival comparisons.
func FactionStrength(f *Faction) int {
	return f.Attributes.Force + f.Attributes.Cunning + f.Attributes.Wealth + len(f.Assets)
}
