package model

// GoalType is the closed catalog of strategic goals a faction can pursue.
type GoalType string

const (
	GoalMilitaryConquest     GoalType = "military_conquest"
	GoalCommercialExpansion  GoalType = "commercial_expansion"
	GoalIntelligenceCoup     GoalType = "intelligence_coup"
	GoalPlanetarySeizure     GoalType = "planetary_seizure"
	GoalExpandInfluence      GoalType = "expand_influence"
	GoalBloodTheEnemy        GoalType = "blood_the_enemy"
	GoalPeaceableKingdom     GoalType = "peaceable_kingdom"
	GoalDestroyTheFoe        GoalType = "destroy_the_foe"
	GoalInsideEnemyTerritory GoalType = "inside_enemy_territory"
	GoalInvincibleValor      GoalType = "invincible_valor"
	GoalWealthOfWorlds       GoalType = "wealth_of_worlds"
)

// GoalCatalog lists all goal types in canonical order. Tie-breaking during
// selection keeps the first encountered in this order.
var GoalCatalog = []GoalType{
	GoalMilitaryConquest,
	GoalCommercialExpansion,
	GoalIntelligenceCoup,
	GoalPlanetarySeizure,
	GoalExpandInfluence,
	GoalBloodTheEnemy,
	GoalPeaceableKingdom,
	GoalDestroyTheFoe,
	GoalInsideEnemyTerritory,
	GoalInvincibleValor,
	GoalWealthOfWorlds,
}

// GoalProgress tracks advancement toward a goal's numeric target. Meta is
// opaque to the engine; external evaluators use it to track specifics.
type GoalProgress struct {
	Current int               `json:"current"`
	Target  int               `json:"target"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Goal is a faction's active long-term objective. Created by the goal
// selector, advanced by external evaluators; the engine reads back only
// the type and progress.
type Goal struct {
	ID          string       `json:"id"`
	Type        GoalType     `json:"type"`
	Description string       `json:"description"`
	Progress    GoalProgress `json:"progress"`
	Difficulty  int          `json:"difficulty"`
	Complete    bool         `json:"complete"`
}
