package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerUncutTiles(t *testing.T) {
	p := &Player{
		ID: "p1",
		Hand: []WireTile{
			{ID: "a", Value: 1, Color: WireBlue, Cut: true},
			{ID: "b", Value: 2, Color: WireYellow},
			{ID: "c", Value: 3, Color: WireRed},
		},
	}

	uncut := p.UncutTiles()
	require.Len(t, uncut, 2)
	assert.Equal(t, "b", uncut[0].ID)
	assert.Equal(t, "c", uncut[1].ID)

	var nilPlayer *Player
	assert.Nil(t, nilPlayer.UncutTiles())
}

func TestPlayerTile(t *testing.T) {
	p := &Player{ID: "p1", Hand: []WireTile{{ID: "a"}}}

	tile, ok := p.Tile(0)
	require.True(t, ok)
	assert.Equal(t, "a", tile.ID)

	_, ok = p.Tile(1)
	assert.False(t, ok)
	_, ok = p.Tile(-1)
	assert.False(t, ok)
}

func TestGameStateFindPlayerAndCaptain(t *testing.T) {
	state := &GameState{
		Mission: 41,
		Players: []*Player{
			{ID: "p1"},
			{ID: "p2", Captain: true},
		},
	}

	p, ok := state.FindPlayer("p1")
	require.True(t, ok)
	assert.Equal(t, PlayerID("p1"), p.ID)

	_, ok = state.FindPlayer("missing")
	assert.False(t, ok)

	captain, ok := state.Captain()
	require.True(t, ok)
	assert.Equal(t, PlayerID("p2"), captain.ID)
}

func TestGameStateCloneIsDeep(t *testing.T) {
	state := &GameState{
		ID:      "g1",
		Players: []*Player{{ID: "p1", Hand: []WireTile{{ID: "a"}}}},
	}

	cp := state.Clone()
	cp.Players[0].Hand[0].Cut = true
	cp.Players[0].Name = "changed"

	assert.False(t, state.Players[0].Hand[0].Cut)
	assert.Empty(t, state.Players[0].Name)
}

func TestWireColorValid(t *testing.T) {
	assert.True(t, WireBlue.Valid())
	assert.True(t, WireYellow.Valid())
	assert.True(t, WireRed.Valid())
	assert.False(t, WireColor("green").Valid())
}
