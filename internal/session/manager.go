// Package session owns the authoritative game states of running matches.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/events"
	"github.com/bombbusters/bombbusters-server-go/internal/game/missions"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/rules"
	"github.com/bombbusters/bombbusters-server-go/internal/storage"
)

var (
	// ErrGameNotFound is returned for unknown game ids.
	ErrGameNotFound = errors.New("game not found")
	// ErrNoStore is returned by Save and Restore when no store is configured.
	ErrNoStore = errors.New("no storage configured")
)

// PlayerSetup describes a seat when creating a game.
type PlayerSetup struct {
	ID          model.PlayerID
	Name        string
	CharacterID model.CharacterID
	Captain     bool
	Hand        []model.WireTile
}

// Manager manages live games.
type Manager struct {
	games     map[string]*model.GameState
	mu        sync.RWMutex
	checker   *rules.Checker
	missions  *missions.Catalog
	equipment *equipment.Catalog
	store     storage.Store
	bus       *events.Bus
	watchers  *events.Registry
	logger    *zap.Logger
}

// NewManager creates a game manager. missionCatalog and store may be nil:
// without a catalog any mission id is accepted, without a store Save and
// Restore fail with ErrNoStore.
func NewManager(checker *rules.Checker, missionCatalog *missions.Catalog, equip *equipment.Catalog, store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if equip == nil {
		equip = equipment.DefaultCatalog()
	}
	if checker == nil {
		checker = rules.NewChecker(nil, equip, logger)
	}
	m := &Manager{
		games:     make(map[string]*model.GameState),
		checker:   checker,
		missions:  missionCatalog,
		equipment: equip,
		store:     store,
		bus:       events.NewBus(),
		watchers:  events.NewRegistry(),
		logger:    logger,
	}
	m.bus.Subscribe(m.watchers.Notify)
	return m
}

// Checker returns the rules checker used by the manager.
func (m *Manager) Checker() *rules.Checker {
	return m.checker
}

// Bus returns the event bus games publish to.
func (m *Manager) Bus() *events.Bus {
	return m.bus
}

// Create starts a new game of mission with players.
func (m *Manager) Create(mission model.MissionID, players []PlayerSetup) (*model.GameState, error) {
	if len(players) == 0 {
		return nil, errors.New("a game needs at least one player")
	}
	if m.missions != nil {
		if _, ok := m.missions.Get(mission); !ok {
			return nil, fmt.Errorf("unknown mission %d", mission)
		}
	}

	now := time.Now()
	state := &model.GameState{
		ID:        uuid.NewString(),
		Mission:   mission,
		Players:   make([]*model.Player, 0, len(players)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	seen := make(map[model.PlayerID]bool, len(players))
	captains := 0
	for _, setup := range players {
		if setup.ID == "" {
			return nil, errors.New("player id is required")
		}
		if seen[setup.ID] {
			return nil, fmt.Errorf("player %s is seated twice", setup.ID)
		}
		seen[setup.ID] = true
		if setup.Captain {
			captains++
		}

		hand := make([]model.WireTile, len(setup.Hand))
		for i, tile := range setup.Hand {
			if tile.Color == "" {
				tile.Color = model.WireBlue
			}
			if !tile.Color.Valid() {
				return nil, fmt.Errorf("player %s tile %d has unknown color %q", setup.ID, i, tile.Color)
			}
			if tile.ID == "" {
				tile.ID = uuid.NewString()
			}
			hand[i] = tile
		}

		state.Players = append(state.Players, &model.Player{
			ID:          setup.ID,
			Name:        setup.Name,
			CharacterID: setup.CharacterID,
			Captain:     setup.Captain,
			Hand:        hand,
		})
	}
	if captains > 1 {
		return nil, fmt.Errorf("a game has one captain, got %d", captains)
	}

	for _, p := range state.Players {
		if lerr := m.checker.CheckCharacterSelection(state, p.ID, p.CharacterID); lerr != nil {
			return nil, lerr
		}
	}

	m.mu.Lock()
	m.games[state.ID] = state
	m.mu.Unlock()

	m.track(state)
	m.bus.Publish(events.NewEvent(events.EventGameCreated, state.ID, ""))

	m.logger.Info("game created",
		zap.String("game_id", state.ID),
		zap.Int("mission", int(mission)),
		zap.Int("players", len(state.Players)),
	)
	return state.Clone(), nil
}

// track registers a cuts watcher for state and replays its cut wires.
func (m *Manager) track(state *model.GameState) {
	m.watchers.Add(events.NewCutsWatcher(state.ID))
	for _, p := range state.Players {
		for _, tile := range p.Hand {
			if tile.Cut {
				m.bus.Publish(cutEvent(state.ID, p.ID, tile))
			}
		}
	}
}

func cutEvent(gameID string, playerID model.PlayerID, tile model.WireTile) events.Event {
	evt := events.NewEvent(events.EventWireCut, gameID, string(playerID))
	evt.TileID = tile.ID
	evt.Value = tile.Value
	evt.Color = string(tile.Color)
	return evt
}

// Get returns a copy of the game with id.
func (m *Manager) Get(id string) (*model.GameState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.games[id]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// List returns the ids of live games, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]*model.GameState, 0, len(m.games))
	for _, s := range m.games {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		if !states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].CreatedAt.Before(states[j].CreatedAt)
		}
		return states[i].ID < states[j].ID
	})
	ids := make([]string, len(states))
	for i, s := range states {
		ids[i] = s.ID
	}
	return ids
}

// Remove drops a live game.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()

	m.watchers.Remove(events.NewCutsWatcher(id).Key())
	m.logger.Info("game removed", zap.String("game_id", id))
}

// CutWire cuts the tile at index in playerID's hand. Rule rejections are
// returned as *rules.LegalityError.
func (m *Manager) CutWire(gameID string, playerID model.PlayerID, index int) error {
	m.mu.Lock()
	state, ok := m.games[gameID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	player, lerr := m.playerTile(state, playerID, index)
	if lerr != nil {
		m.mu.Unlock()
		return lerr
	}
	player.Hand[index].Cut = true
	tile := player.Hand[index]
	state.UpdatedAt = time.Now()
	unlocked := m.unlockedBy(state, tile)
	m.mu.Unlock()

	m.bus.Publish(cutEvent(gameID, playerID, tile))
	m.logger.Info("wire cut",
		zap.String("game_id", gameID),
		zap.String("player_id", string(playerID)),
		zap.Int("value", tile.Value),
		zap.String("color", string(tile.Color)),
	)
	for _, card := range unlocked {
		m.logger.Info("equipment unlocked",
			zap.String("game_id", gameID),
			zap.String("equipment_id", card.ID),
		)
	}
	return nil
}

// MoveWire hands the uncut tile at index from one player to another. The
// tile keeps a reference to the hand it was dealt to.
func (m *Manager) MoveWire(gameID string, from, to model.PlayerID, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if from == to {
		return rules.NewLegalityError(rules.CodeMissionRuleViolation, "player %s cannot hand a wire to themselves", from)
	}
	giver, lerr := m.playerTile(state, from, index)
	if lerr != nil {
		return lerr
	}
	receiver, ok := state.FindPlayer(to)
	if !ok {
		return rules.NewLegalityError(rules.CodePlayerNotFound, "player %s is not in this game", to)
	}

	tile := giver.Hand[index]
	if tile.OriginalOwnerID == "" {
		tile.OriginalOwnerID = from
	}
	giver.Hand = append(giver.Hand[:index], giver.Hand[index+1:]...)
	receiver.Hand = append(receiver.Hand, tile)
	state.UpdatedAt = time.Now()

	evt := events.NewEvent(events.EventWireMoved, gameID, string(from))
	evt.TargetID = string(to)
	evt.TileID = tile.ID
	m.bus.Publish(evt)

	m.logger.Info("wire moved",
		zap.String("game_id", gameID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("tile_id", tile.ID),
	)
	return nil
}

// playerTile finds an uncut tile; the caller holds m.mu.
func (m *Manager) playerTile(state *model.GameState, playerID model.PlayerID, index int) (*model.Player, *rules.LegalityError) {
	player, ok := state.FindPlayer(playerID)
	if !ok {
		return nil, rules.NewLegalityError(rules.CodePlayerNotFound, "player %s is not in this game", playerID)
	}
	tile, ok := player.Tile(index)
	if !ok {
		return nil, rules.NewLegalityError(rules.CodeWireNotFound, "player %s has no wire at position %d", playerID, index)
	}
	if tile.Cut {
		return nil, rules.NewLegalityError(rules.CodeWireAlreadyCut, "wire %d of player %s is already cut", index, playerID)
	}
	return player, nil
}

// UnlockProgress reports cuts made toward equipmentID and the cuts it needs.
func (m *Manager) UnlockProgress(gameID, equipmentID string) (cuts, required int, err error) {
	card, ok := m.equipment.Lookup(equipmentID)
	if !ok {
		return 0, 0, rules.NewLegalityError(rules.CodeEquipmentUnknown, "unknown equipment %q", equipmentID)
	}
	watcher, ok := m.cutsWatcher(gameID)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return watcher.Cuts(card.Value), equipment.UnlockCutsRequired(card), nil
}

func (m *Manager) cutsWatcher(gameID string) (*events.CutsWatcher, bool) {
	w, ok := m.watchers.Get(events.NewCutsWatcher(gameID).Key()).(*events.CutsWatcher)
	return w, ok
}

// unlockedBy returns the mission equipment whose unlock threshold the cut
// of tile has just reached. The caller holds m.mu and has marked tile cut.
func (m *Manager) unlockedBy(state *model.GameState, tile model.WireTile) []equipment.Card {
	if m.missions == nil || tile.Color != model.WireBlue {
		return nil
	}
	setup, ok := m.missions.Get(state.Mission)
	if !ok {
		return nil
	}
	var out []equipment.Card
	for _, id := range setup.Equipment {
		card, ok := m.equipment.Lookup(id)
		if !ok || card.Value != tile.Value {
			continue
		}
		if equipment.CutsTowardUnlock(state, card) == equipment.UnlockCutsRequired(card) {
			out = append(out, card)
		}
	}
	return out
}

// Save persists the game with id.
func (m *Manager) Save(ctx context.Context, id string) error {
	if m.store == nil {
		return ErrNoStore
	}
	state, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return m.store.Save(ctx, state)
}

// Restore loads a stored game and makes it live again.
func (m *Manager) Restore(ctx context.Context, id string) (*model.GameState, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[state.ID] = state
	m.mu.Unlock()

	m.track(state)
	m.logger.Info("game restored",
		zap.String("game_id", state.ID),
		zap.Int("mission", int(state.Mission)),
	)
	return state.Clone(), nil
}
