// Package equipment holds the equipment card catalog and unlock rules.
package equipment

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// Card is an equipment card. Value is the wire value whose cuts unlock it.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Campaign bool   `json:"campaign"`
}

// Catalog indexes equipment cards by id.
type Catalog struct {
	cards map[string]Card
}

var baseCards = []Card{
	{ID: "label_not_equal", Name: "Label ≠", Value: 1},
	{ID: "walkie_talkies", Name: "Walkie-Talkies", Value: 2},
	{ID: "triple_detector", Name: "Triple Detector", Value: 3},
	{ID: "post_it", Name: "Post-it", Value: 4},
	{ID: "super_detector", Name: "Super Detector", Value: 5},
	{ID: "rewinder", Name: "Rewinder", Value: 6},
	{ID: "emergency_batteries", Name: "Emergency Batteries", Value: 7},
	{ID: "general_radar", Name: "General Radar", Value: 8},
	{ID: "stabilizer", Name: "Stabilizer", Value: 9},
	{ID: "x_or_y_ray", Name: "X or Y Ray", Value: 10},
	{ID: "coffee_mug", Name: "Coffee Mug", Value: 11},
	{ID: "label_equal", Name: "Label =", Value: 12},
}

// Campaign cards carry a double number (e.g. 2.2) and need twice the cuts.
var campaignCards = []Card{
	{ID: "single_wire_label", Name: "Single Wire Label", Value: 2, Campaign: true},
	{ID: "emergency_drop", Name: "Emergency Drop", Value: 3, Campaign: true},
	{ID: "fast_pass", Name: "Fast Pass", Value: 9, Campaign: true},
	{ID: "disintegrator", Name: "Disintegrator", Value: 10, Campaign: true},
	{ID: "grappling_hook", Name: "Grappling Hook", Value: 11, Campaign: true},
}

// NewCatalog builds a catalog from cards. Later cards replace earlier ones
// with the same id.
func NewCatalog(cards ...Card) *Catalog {
	c := &Catalog{cards: make(map[string]Card, len(cards))}
	for _, card := range cards {
		c.cards[card.ID] = card
	}
	return c
}

// DefaultCatalog returns the base and campaign equipment.
func DefaultCatalog() *Catalog {
	cards := make([]Card, 0, len(baseCards)+len(campaignCards))
	cards = append(cards, baseCards...)
	cards = append(cards, campaignCards...)
	return NewCatalog(cards...)
}

// Lookup finds a card by id.
func (c *Catalog) Lookup(id string) (Card, bool) {
	if c == nil {
		return Card{}, false
	}
	card, ok := c.cards[id]
	return card, ok
}

// All returns every card ordered by value, then id.
func (c *Catalog) All() []Card {
	if c == nil {
		return nil
	}
	cards := make([]Card, 0, len(c.cards))
	for _, card := range c.cards {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Value != cards[j].Value {
			return cards[i].Value < cards[j].Value
		}
		return cards[i].ID < cards[j].ID
	})
	return cards
}

// maxSuggestDistance bounds how far a typo may be from a known id.
const maxSuggestDistance = 3

// Suggest returns the known id closest to id, or "" when none is close.
func (c *Catalog) Suggest(id string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, card := range c.All() {
		d := levenshtein.ComputeDistance(id, card.ID)
		if d < bestDist {
			best, bestDist = card.ID, d
		}
	}
	return best
}
