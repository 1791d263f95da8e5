package model

// Tag is a faction personality trait. The engine resolves tags against a
// static affinity registry; the snapshot only carries the names.
type Tag string

const (
	TagWarlike            Tag = "warlike"
	TagImperialists       Tag = "imperialists"
	TagMachiavellian      Tag = "machiavellian"
	TagPlutocratic        Tag = "plutocratic"
	TagPirates            Tag = "pirates"
	TagScavengers         Tag = "scavengers"
	TagSecretive          Tag = "secretive"
	TagDeepRooted         Tag = "deep_rooted"
	TagTechnicalExpertise Tag = "technical_expertise"
	TagFanatical          Tag = "fanatical"
	TagMercenary          Tag = "mercenary"
	TagExchange           Tag = "exchange"
)

// Attributes is the faction rating triple. Each value is 0–8.
type Attributes struct {
	Force   int `json:"force"`
	Cunning int `json:"cunning"`
	Wealth  int `json:"wealth"`
}

// Max returns the highest of the three ratings.
func (a Attributes) Max() int {
	m := a.Force
	if a.Cunning > m {
		m = a.Cunning
	}
	if a.Wealth > m {
		m = a.Wealth
	}
	return m
}

// Rating returns the value of the named attribute.
func (a Attributes) Rating(c Category) int {
	switch c {
	case CategoryForce:
		return a.Force
	case CategoryCunning:
		return a.Cunning
	case CategoryWealth:
		return a.Wealth
	}
	return 0
}

type Faction struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Tags       []Tag      `json:"tags"`
	Attributes Attributes `json:"attributes"`
	HP         int        `json:"hp"`
	MaxHP      int        `json:"maxHp"`
	Credits    int        `json:"credits"`
	HomeSystem string     `json:"homeSystem"`
	Assets     []Asset    `json:"assets"`
	Goal       *Goal      `json:"goal,omitempty"`
}

// HasTag reports whether the faction owns the given trait.
func (f *Faction) HasTag(t Tag) bool {
	for _, tag := range f.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// HPRatio returns current/max hit points, or 1.0 when max is unset.
func (f *Faction) HPRatio() float64 {
	if f.MaxHP <= 0 {
		return 1.0
	}
	return float64(f.HP) / float64(f.MaxHP)
}

// Asset returns the owned asset with the given id.
func (f *Faction) Asset(id string) (*Asset, bool) {
	for i := range f.Assets {
		if f.Assets[i].ID == id {
			return &f.Assets[i], true
		}
	}
	return nil, false
}

// AssetsIn returns the faction's assets located in the given system.
func (f *Faction) AssetsIn(systemID string) []Asset {
	var out []Asset
	for _, a := range f.Assets {
		if a.System == systemID {
			out = append(out, a)
		}
	}
	return out
}

// Systems returns the distinct system ids where the faction holds assets.
// The homeworld is always included.
func (f *Faction) Systems() []string {
	seen := map[string]bool{}
	var out []string
	if f.HomeSystem != "" {
		seen[f.HomeSystem] = true
		out = append(out, f.HomeSystem)
	}
	for _, a := range f.Assets {
		if a.System != "" && !seen[a.System] {
			seen[a.System] = true
			out = append(out, a.System)
		}
	}
	return out
}
