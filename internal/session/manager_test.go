package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bombbusters/bombbusters-server-go/internal/config"
	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/events"
	"github.com/bombbusters/bombbusters-server-go/internal/game/missions"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/rules"
	"github.com/bombbusters/bombbusters-server-go/internal/game/wires"
	"github.com/bombbusters/bombbusters-server-go/internal/storage"
)

func newTestManager(t *testing.T, logger *zap.Logger) *Manager {
	t.Helper()
	equip := equipment.DefaultCatalog()
	catalog, err := missions.Load(equip)
	require.NoError(t, err)

	store, err := storage.Open(context.Background(), config.StorageConfig{Driver: "sqlite", DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	checker := rules.NewChecker(rules.DefaultRegistry(), equip, logger)
	return NewManager(checker, catalog, equip, store, logger)
}

func blue(value int) model.WireTile {
	return model.WireTile{Value: value, Color: model.WireBlue}
}

func standardSeats() []PlayerSetup {
	return []PlayerSetup{
		{ID: "p1", Name: "Ana", Captain: true, CharacterID: "double_detector", Hand: []model.WireTile{blue(2), blue(9), blue(2)}},
		{ID: "p2", Name: "Bo", Hand: []model.WireTile{blue(2), {Value: 5, Color: model.WireYellow}, blue(2)}},
	}
}

func TestCreateGame(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))

	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, model.MissionID(2), state.Mission)
	require.Len(t, state.Players, 2)
	for _, p := range state.Players {
		for _, tile := range p.Hand {
			assert.NotEmpty(t, tile.ID, "tile ids are assigned")
		}
	}

	got, ok := m.Get(state.ID)
	require.True(t, ok)
	assert.Equal(t, state.ID, got.ID)
	assert.Equal(t, []string{state.ID}, m.List())
}

func TestCreateGameValidation(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))

	_, err := m.Create(2, nil)
	assert.Error(t, err)

	_, err = m.Create(999, standardSeats())
	assert.ErrorContains(t, err, "unknown mission")

	seats := standardSeats()
	seats[1].ID = "p1"
	_, err = m.Create(2, seats)
	assert.ErrorContains(t, err, "seated twice")

	seats = standardSeats()
	seats[1].Captain = true
	_, err = m.Create(2, seats)
	assert.ErrorContains(t, err, "one captain")

	seats = standardSeats()
	seats[1].Hand = []model.WireTile{{Value: 1, Color: "green"}}
	_, err = m.Create(2, seats)
	assert.ErrorContains(t, err, "unknown color")
}

func TestCreateGameRejectsForbiddenCharacter(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))

	seats := standardSeats()
	seats[1].CharacterID = "double_detector"

	_, err := m.Create(27, seats)
	var lerr *rules.LegalityError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodeCharacterForbidden, lerr.Code)

	// The captain holds the same character without complaint.
	_, err = m.Create(27, standardSeats())
	assert.NoError(t, err)
}

func TestCutWire(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))
	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)

	require.NoError(t, m.CutWire(state.ID, "p1", 0))

	got, _ := m.Get(state.ID)
	assert.True(t, got.Players[0].Hand[0].Cut)

	var lerr *rules.LegalityError
	err = m.CutWire(state.ID, "p1", 0)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodeWireAlreadyCut, lerr.Code)

	err = m.CutWire(state.ID, "p1", 10)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodeWireNotFound, lerr.Code)

	err = m.CutWire(state.ID, "ghost", 0)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodePlayerNotFound, lerr.Code)

	assert.ErrorIs(t, m.CutWire("missing", "p1", 0), ErrGameNotFound)
}

func TestCutWireUnlocksEquipment(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := newTestManager(t, zap.New(core))

	// Mission 2 brings walkie_talkies (value 2).
	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)

	cuts, required, err := m.UnlockProgress(state.ID, "walkie_talkies")
	require.NoError(t, err)
	assert.Equal(t, 0, cuts)
	assert.Equal(t, 2, required)

	require.NoError(t, m.CutWire(state.ID, "p1", 0))
	assert.Zero(t, logs.FilterMessage("equipment unlocked").Len())

	require.NoError(t, m.CutWire(state.ID, "p2", 0))
	unlocked := logs.FilterMessage("equipment unlocked").All()
	require.Len(t, unlocked, 1)
	assert.Equal(t, "walkie_talkies", unlocked[0].ContextMap()["equipment_id"])

	cuts, _, err = m.UnlockProgress(state.ID, "walkie_talkies")
	require.NoError(t, err)
	assert.Equal(t, 2, cuts)

	got, _ := m.Get(state.ID)
	assert.Nil(t, m.Checker().CheckEquipmentUse(got, "walkie_talkies"))

	_, _, err = m.UnlockProgress(state.ID, "laser")
	assert.Error(t, err)
	_, _, err = m.UnlockProgress("missing", "walkie_talkies")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestConcurrentCutsUnlockOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := newTestManager(t, zap.New(core))

	seats := []PlayerSetup{
		{ID: "p1", Captain: true, Hand: []model.WireTile{blue(2), blue(2)}},
		{ID: "p2", Hand: []model.WireTile{blue(2), blue(2)}},
	}
	state, err := m.Create(2, seats)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []model.PlayerID{"p1", "p2"} {
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(id model.PlayerID, index int) {
				defer wg.Done()
				assert.NoError(t, m.CutWire(state.ID, id, index))
			}(id, i)
		}
	}
	wg.Wait()

	unlocked := logs.FilterMessage("equipment unlocked").All()
	require.Len(t, unlocked, 1)
	assert.Equal(t, "walkie_talkies", unlocked[0].ContextMap()["equipment_id"])

	cuts, _, err := m.UnlockProgress(state.ID, "walkie_talkies")
	require.NoError(t, err)
	assert.Equal(t, 4, cuts)
}

func TestMoveWireMarksOrigin(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))
	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)

	var moved []events.Event
	m.Bus().SubscribeTyped(events.EventWireMoved, func(e events.Event) { moved = append(moved, e) })

	require.NoError(t, m.MoveWire(state.ID, "p1", "p2", 1))

	got, _ := m.Get(state.ID)
	p1, _ := got.FindPlayer("p1")
	p2, _ := got.FindPlayer("p2")
	assert.Len(t, p1.Hand, 2)
	require.Len(t, p2.Hand, 4)
	assert.Equal(t, model.PlayerID("p1"), p2.Hand[3].OriginalOwnerID)
	assert.Equal(t, "D*", wires.LabelOf(p2, 3))
	assert.Equal(t, "A", wires.LabelOf(p2, 0))
	require.Len(t, moved, 1)
	assert.Equal(t, "p2", moved[0].TargetID)

	// Moving it back keeps the original owner, so the star goes away.
	require.NoError(t, m.MoveWire(state.ID, "p2", "p1", 3))
	got, _ = m.Get(state.ID)
	p1, _ = got.FindPlayer("p1")
	assert.Equal(t, "C", wires.LabelOf(p1, 2))

	var lerr *rules.LegalityError
	err = m.MoveWire(state.ID, "p1", "p1", 0)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodeMissionRuleViolation, lerr.Code)
	assert.ErrorIs(t, m.MoveWire("missing", "p1", "p1", 0), ErrGameNotFound)

	err = m.MoveWire(state.ID, "p1", "ghost", 0)
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, rules.CodePlayerNotFound, lerr.Code)
}

func TestGetReturnsCopy(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))
	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)

	got, _ := m.Get(state.ID)
	got.Players[0].Hand[0].Cut = true

	again, _ := m.Get(state.ID)
	assert.False(t, again.Players[0].Hand[0].Cut)
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, zaptest.NewLogger(t))

	state, err := m.Create(2, standardSeats())
	require.NoError(t, err)
	require.NoError(t, m.CutWire(state.ID, "p1", 0))
	require.NoError(t, m.Save(ctx, state.ID))

	m.Remove(state.ID)
	_, ok := m.Get(state.ID)
	require.False(t, ok)

	restored, err := m.Restore(ctx, state.ID)
	require.NoError(t, err)
	assert.True(t, restored.Players[0].Hand[0].Cut)

	cuts, _, err := m.UnlockProgress(state.ID, "walkie_talkies")
	require.NoError(t, err)
	assert.Equal(t, 1, cuts, "restored cuts are replayed into the watcher")

	assert.ErrorIs(t, m.Save(ctx, "missing"), ErrGameNotFound)
	_, err = m.Restore(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestManagerWithoutStore(t *testing.T) {
	m := NewManager(nil, nil, nil, nil, zaptest.NewLogger(t))

	state, err := m.Create(999, standardSeats())
	require.NoError(t, err, "without a catalog any mission is accepted")

	assert.ErrorIs(t, m.Save(context.Background(), state.ID), ErrNoStore)
	_, err = m.Restore(context.Background(), state.ID)
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestSkipTurnThroughManager(t *testing.T) {
	m := newTestManager(t, zaptest.NewLogger(t))
	seats := []PlayerSetup{
		{ID: "p1", Captain: true, Hand: []model.WireTile{blue(3)}},
		{ID: "p2", Hand: []model.WireTile{blue(4), {Value: 5, Color: model.WireYellow}, {Value: 7, Color: model.WireRed}}},
	}
	state, err := m.Create(41, seats)
	require.NoError(t, err)

	got, _ := m.Get(state.ID)
	skip, lerr := m.Checker().ShouldSkipTurn(got, "p2")
	require.Nil(t, lerr)
	assert.False(t, skip)

	require.NoError(t, m.CutWire(state.ID, "p2", 0))
	got, _ = m.Get(state.ID)
	skip, lerr = m.Checker().ShouldSkipTurn(got, "p2")
	require.Nil(t, lerr)
	assert.True(t, skip)
}
