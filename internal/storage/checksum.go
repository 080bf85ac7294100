package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

// Checksum computes a deterministic SHA-256 checksum of a game state.
// Timestamps are excluded; players keep seat order and tiles keep hand order.
func Checksum(state *model.GameState) string {
	sum := sha256.Sum256([]byte(deterministicRepresentation(state)))
	return hex.EncodeToString(sum[:])
}

// deterministicRepresentation quotes every free-form field so that no
// value can spill into its neighbours.
func deterministicRepresentation(state *model.GameState) string {
	var buf bytes.Buffer
	if state == nil {
		return ""
	}

	fmt.Fprintf(&buf, "GAME:%q|%d\n", state.ID, state.Mission)
	for seat, p := range state.Players {
		if p == nil {
			fmt.Fprintf(&buf, "SEAT:%d|empty\n", seat)
			continue
		}
		fmt.Fprintf(&buf, "SEAT:%d|%q|%q|%q|%t|%d\n", seat, p.ID, p.Name, p.CharacterID, p.Captain, len(p.Hand))
		for i, tile := range p.Hand {
			fmt.Fprintf(&buf, "  TILE:%d|%q|%d|%q|%t|%q\n", i, tile.ID, tile.Value, tile.Color, tile.Cut, tile.OriginalOwnerID)
		}
	}
	return buf.String()
}
