// Package model holds the shared game data model consumed by the rules,
// equipment and wire packages.
package model

import "time"

// MissionID identifies a numbered mission (rule variant) of a match.
type MissionID int

// PlayerID identifies a player within a game.
type PlayerID string

// CharacterID identifies the character card a player has chosen.
type CharacterID string

// WireColor is the color of a wire tile.
type WireColor string

const (
	// WireBlue is the regular numbered wire.
	WireBlue WireColor = "blue"
	// WireYellow wires must be cut in pairs of matching yellow.
	WireYellow WireColor = "yellow"
	// WireRed wires detonate the bomb when cut.
	WireRed WireColor = "red"
)

// Valid reports whether c is a known wire color.
func (c WireColor) Valid() bool {
	switch c {
	case WireBlue, WireYellow, WireRed:
		return true
	default:
		return false
	}
}

// WireTile is a single tile in a player's hand.
type WireTile struct {
	ID    string    `json:"id"`
	Value int       `json:"value"`
	Color WireColor `json:"color"`
	Cut   bool      `json:"cut"`
	// OriginalOwnerID is set once the tile leaves the hand it was dealt to.
	OriginalOwnerID PlayerID `json:"original_owner_id,omitempty"`
}

// IsYellowOrRed reports whether the tile is a yellow or red wire.
func (t WireTile) IsYellowOrRed() bool {
	return t.Color == WireYellow || t.Color == WireRed
}

// Player is a participant of a game.
type Player struct {
	ID          PlayerID    `json:"id"`
	Name        string      `json:"name"`
	CharacterID CharacterID `json:"character_id,omitempty"`
	Captain     bool        `json:"captain"`
	Hand        []WireTile  `json:"hand"`
}

// Tile returns the tile at index in the player's hand.
func (p *Player) Tile(index int) (WireTile, bool) {
	if p == nil || index < 0 || index >= len(p.Hand) {
		return WireTile{}, false
	}
	return p.Hand[index], true
}

// UncutTiles returns the tiles that have not been cut, in hand order.
func (p *Player) UncutTiles() []WireTile {
	if p == nil {
		return nil
	}
	uncut := make([]WireTile, 0, len(p.Hand))
	for _, tile := range p.Hand {
		if !tile.Cut {
			uncut = append(uncut, tile)
		}
	}
	return uncut
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Hand = append([]WireTile(nil), p.Hand...)
	return &cp
}

// GameState is the per-match state owned by the authoritative session.
type GameState struct {
	ID        string    `json:"id"`
	Mission   MissionID `json:"mission"`
	Players   []*Player `json:"players"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindPlayer returns the player with the given id.
func (s *GameState) FindPlayer(id PlayerID) (*Player, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Players {
		if p != nil && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Captain returns the captain of the game, if one was designated.
func (s *GameState) Captain() (*Player, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Players {
		if p != nil && p.Captain {
			return p, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.Clone()
	}
	return &cp
}
