package rules

import (
	"go.uber.org/zap"

	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

// Checker validates player actions against the mission rules of a game.
type Checker struct {
	registry  *Registry
	equipment *equipment.Catalog
	logger    *zap.Logger
}

// NewChecker creates a checker. Nil arguments fall back to the built-in
// registry, the default equipment catalog and a no-op logger.
func NewChecker(registry *Registry, catalog *equipment.Catalog, logger *zap.Logger) *Checker {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if catalog == nil {
		catalog = equipment.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		registry:  registry,
		equipment: catalog,
		logger:    logger,
	}
}

// Registry returns the mission rules the checker consults.
func (c *Checker) Registry() *Registry {
	return c.registry
}

// CheckCharacterSelection validates that playerID may play characterID.
// The captain may always pick any character.
func (c *Checker) CheckCharacterSelection(state *model.GameState, playerID model.PlayerID, characterID model.CharacterID) *LegalityError {
	player, ok := state.FindPlayer(playerID)
	if !ok {
		return c.reject(state, NewLegalityError(CodePlayerNotFound, "player %s is not in this game", playerID))
	}
	if player.Captain || characterID == "" {
		return nil
	}
	if c.registry.IsCharacterForbidden(state.Mission, characterID) {
		return c.reject(state, NewLegalityError(CodeCharacterForbidden,
			"Mission %d: only the captain may play %s", state.Mission, characterID))
	}
	return nil
}

// CheckDesignatedCutterTarget validates the captain's choice of cutter.
func (c *Checker) CheckDesignatedCutterTarget(state *model.GameState, requiredValue int, targetPlayerID model.PlayerID, radarResults map[model.PlayerID]bool) *LegalityError {
	if _, ok := state.FindPlayer(targetPlayerID); !ok {
		return c.reject(state, NewLegalityError(CodePlayerNotFound, "player %s is not in this game", targetPlayerID))
	}
	return c.reject(state, c.registry.ValidateDesignatedCutterTarget(state.Mission, requiredValue, targetPlayerID, radarResults))
}

// ShouldSkipTurn reports whether playerID passes this turn.
func (c *Checker) ShouldSkipTurn(state *model.GameState, playerID model.PlayerID) (bool, *LegalityError) {
	player, ok := state.FindPlayer(playerID)
	if !ok {
		return false, c.reject(state, NewLegalityError(CodePlayerNotFound, "player %s is not in this game", playerID))
	}
	return c.registry.SkipsTurn(state, player), nil
}

// CheckEquipmentUse validates that equipmentID is known and unlocked.
func (c *Checker) CheckEquipmentUse(state *model.GameState, equipmentID string) *LegalityError {
	card, ok := c.equipment.Lookup(equipmentID)
	if !ok {
		if suggestion := c.equipment.Suggest(equipmentID); suggestion != "" {
			return c.reject(state, NewLegalityError(CodeEquipmentUnknown,
				"unknown equipment %q (did you mean %q?)", equipmentID, suggestion))
		}
		return c.reject(state, NewLegalityError(CodeEquipmentUnknown, "unknown equipment %q", equipmentID))
	}
	cuts, required := equipment.CutsTowardUnlock(state, card), equipment.UnlockCutsRequired(card)
	if cuts < required {
		return c.reject(state, NewLegalityError(CodeEquipmentLocked,
			"%s unlocks after %d cuts of value %d, %d so far", card.Name, required, card.Value, cuts))
	}
	return nil
}

func (c *Checker) reject(state *model.GameState, lerr *LegalityError) *LegalityError {
	if lerr == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("code", string(lerr.Code)),
		zap.String("reason", lerr.Message),
	}
	if state != nil {
		fields = append(fields,
			zap.String("game_id", state.ID),
			zap.Int("mission", int(state.Mission)),
		)
	}
	c.logger.Debug("action rejected", fields...)
	return lerr
}
