package equipment

import "github.com/bombbusters/bombbusters-server-go/internal/game/model"

const (
	defaultUnlockCuts      = 2
	doubleNumberUnlockCuts = 4
)

var doubleNumberIDs = map[string]bool{
	"single_wire_label": true,
	"emergency_drop":    true,
	"fast_pass":         true,
	"disintegrator":     true,
	"grappling_hook":    true,
}

// UnlockCutsRequiredByID returns how many wires of the card's value must
// be cut before the equipment can be used.
func UnlockCutsRequiredByID(id string) int {
	if doubleNumberIDs[id] {
		return doubleNumberUnlockCuts
	}
	return defaultUnlockCuts
}

// UnlockCutsRequired is UnlockCutsRequiredByID for a card.
func UnlockCutsRequired(card Card) int {
	return UnlockCutsRequiredByID(card.ID)
}

// CutsTowardUnlock counts cut blue wires of the card's value in every hand.
func CutsTowardUnlock(state *model.GameState, card Card) int {
	if state == nil {
		return 0
	}
	cuts := 0
	for _, p := range state.Players {
		if p == nil {
			continue
		}
		for _, tile := range p.Hand {
			if tile.Cut && tile.Color == model.WireBlue && tile.Value == card.Value {
				cuts++
			}
		}
	}
	return cuts
}

// IsUnlocked reports whether enough wires have been cut to use card.
func IsUnlocked(state *model.GameState, card Card) bool {
	return CutsTowardUnlock(state, card) >= UnlockCutsRequired(card)
}
