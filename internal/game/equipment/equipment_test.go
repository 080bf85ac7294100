package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

func TestUnlockCutsRequiredByID(t *testing.T) {
	assert.Equal(t, 4, UnlockCutsRequiredByID("single_wire_label"))
	assert.Equal(t, 4, UnlockCutsRequiredByID("grappling_hook"))
	assert.Equal(t, 2, UnlockCutsRequiredByID("anything_else"))
	assert.Equal(t, 2, UnlockCutsRequiredByID("rewinder"))
}

func TestUnlockCutsRequiredMatchesCatalog(t *testing.T) {
	for _, card := range DefaultCatalog().All() {
		want := 2
		if card.Campaign {
			want = 4
		}
		assert.Equal(t, want, UnlockCutsRequired(card), card.ID)
	}
}

func TestCatalogAllIsSorted(t *testing.T) {
	cards := DefaultCatalog().All()
	require.NotEmpty(t, cards)
	for i := 1; i < len(cards); i++ {
		prev, cur := cards[i-1], cards[i]
		assert.True(t, prev.Value < cur.Value || (prev.Value == cur.Value && prev.ID < cur.ID),
			"%s before %s", prev.ID, cur.ID)
	}
}

func TestCatalogLookupAndSuggest(t *testing.T) {
	catalog := DefaultCatalog()

	card, ok := catalog.Lookup("rewinder")
	require.True(t, ok)
	assert.Equal(t, 6, card.Value)

	_, ok = catalog.Lookup("rewind")
	assert.False(t, ok)

	assert.Equal(t, "rewinder", catalog.Suggest("rewindr"))
	assert.Equal(t, "post_it", catalog.Suggest("postit"))
	assert.Equal(t, "", catalog.Suggest("completely unrelated"))
}

func TestIsUnlocked(t *testing.T) {
	card := Card{ID: "rewinder", Value: 6}
	state := &model.GameState{
		Players: []*model.Player{
			{ID: "p1", Hand: []model.WireTile{
				{Value: 6, Color: model.WireBlue, Cut: true},
				{Value: 6, Color: model.WireBlue},
			}},
			{ID: "p2", Hand: []model.WireTile{
				{Value: 6, Color: model.WireYellow, Cut: true},
			}},
		},
	}

	assert.Equal(t, 1, CutsTowardUnlock(state, card))
	assert.False(t, IsUnlocked(state, card))

	state.Players[0].Hand[1].Cut = true
	assert.Equal(t, 2, CutsTowardUnlock(state, card))
	assert.True(t, IsUnlocked(state, card))

	campaign := Card{ID: "fast_pass", Value: 6, Campaign: true}
	assert.False(t, IsUnlocked(state, campaign))
	assert.Equal(t, 0, CutsTowardUnlock(nil, card))
}
