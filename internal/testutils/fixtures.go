package testutils

import (
	"github.com/KirkDiggler/dnd-range-bot/internal/domain/combatant"
)

// CreateTestCombatant creates a combatant owned by ownerID in sceneID
func CreateTestCombatant(id, ownerID, sceneID string) *combatant.Combatant {
	return &combatant.Combatant{
		ID:      id,
		Name:    "Combatant " + id,
		OwnerID: ownerID,
		SceneID: sceneID,
	}
}

// GM returns an actor allowed to update every combatant
func GM() combatant.Actor {
	return combatant.Actor{UserID: "gm", IsGM: true}
}

// Player returns a non-GM actor
func Player(userID string) combatant.Actor {
	return combatant.Actor{UserID: userID}
}
