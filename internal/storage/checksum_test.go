package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

func TestChecksumIgnoresTimestamps(t *testing.T) {
	a := sampleState("g1")
	b := a.Clone()
	b.CreatedAt = b.CreatedAt.Add(-time.Hour)
	b.UpdatedAt = b.UpdatedAt.Add(time.Hour)

	assert.Equal(t, Checksum(a), Checksum(b))
	assert.Len(t, Checksum(a), 64)
}

func TestChecksumFollowsSeatOrder(t *testing.T) {
	a := sampleState("g1")
	b := a.Clone()
	b.Players[0], b.Players[1] = b.Players[1], b.Players[0]

	assert.NotEqual(t, Checksum(a), Checksum(b))
}

func TestChecksumSeparatesFields(t *testing.T) {
	a := sampleState("g1")
	a.Players[0].Name = "Ana|x"
	a.Players[0].CharacterID = ""

	b := sampleState("g1")
	b.Players[0].Name = "Ana"
	b.Players[0].CharacterID = "x"

	assert.NotEqual(t, Checksum(a), Checksum(b))
}

func TestChecksumChangesWithState(t *testing.T) {
	a := sampleState("g1")
	b := a.Clone()
	b.Players[0].Hand[0].Cut = true

	assert.NotEqual(t, Checksum(a), Checksum(b))

	c := a.Clone()
	c.Players[1].Hand[0].OriginalOwnerID = ""
	assert.NotEqual(t, Checksum(a), Checksum(c))
}

func TestChecksumNil(t *testing.T) {
	assert.NotEqual(t, Checksum(&model.GameState{}), Checksum(nil))
}
