package rules

import (
	"sort"
	"sync"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

// SkipTurnFunc decides whether player passes their turn.
type SkipTurnFunc func(state *model.GameState, player *model.Player) bool

// CutterTargetFunc validates the player designated to cut.
type CutterTargetFunc func(requiredValue int, targetPlayerID model.PlayerID, radarResults map[model.PlayerID]bool) *LegalityError

// MissionRules holds the special rules of one mission. Nil hooks mean the
// mission has no such rule.
type MissionRules struct {
	ForbiddenCharacters            []model.CharacterID
	SkipsTurn                      SkipTurnFunc
	ValidateDesignatedCutterTarget CutterTargetFunc
}

// Registry maps missions to their special rules.
type Registry struct {
	mu       sync.RWMutex
	missions map[model.MissionID]MissionRules
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{missions: make(map[model.MissionID]MissionRules)}
}

// DefaultRegistry returns a registry with every built-in mission rule.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for mission, characters := range forbiddenCharacters {
		r.Register(mission, MissionRules{
			ForbiddenCharacters: append([]model.CharacterID(nil), characters...),
		})
	}
	r.Register(MissionDesignatedCutter, MissionRules{
		ValidateDesignatedCutterTarget: ValidateMission18DesignatedCutterTarget,
	})
	r.Register(MissionYellowSkip, MissionRules{
		SkipsTurn: IsMission41PlayerSkippingTurn,
	})
	return r
}

// Register merges rules into the mission's entry. Non-empty fields of
// rules replace the existing ones.
func (r *Registry) Register(mission model.MissionID, rules MissionRules) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.missions[mission]
	if len(rules.ForbiddenCharacters) > 0 {
		current.ForbiddenCharacters = rules.ForbiddenCharacters
	}
	if rules.SkipsTurn != nil {
		current.SkipsTurn = rules.SkipsTurn
	}
	if rules.ValidateDesignatedCutterTarget != nil {
		current.ValidateDesignatedCutterTarget = rules.ValidateDesignatedCutterTarget
	}
	r.missions[mission] = current
}

// Rules returns the special rules of mission.
func (r *Registry) Rules(mission model.MissionID) (MissionRules, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.missions[mission]
	return rules, ok
}

// Missions lists the missions with special rules, ascending.
func (r *Registry) Missions() []model.MissionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]model.MissionID, 0, len(r.missions))
	for id := range r.missions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsCharacterForbidden reports whether a non-captain may not play characterID.
func (r *Registry) IsCharacterForbidden(mission model.MissionID, characterID model.CharacterID) bool {
	rules, _ := r.Rules(mission)
	for _, id := range rules.ForbiddenCharacters {
		if id == characterID {
			return true
		}
	}
	return false
}

// SkipsTurn reports whether player passes in state's mission.
func (r *Registry) SkipsTurn(state *model.GameState, player *model.Player) bool {
	if state == nil {
		return false
	}
	rules, _ := r.Rules(state.Mission)
	if rules.SkipsTurn == nil {
		return false
	}
	return rules.SkipsTurn(state, player)
}

// ValidateDesignatedCutterTarget runs the mission's designated cutter rule,
// if it has one.
func (r *Registry) ValidateDesignatedCutterTarget(mission model.MissionID, requiredValue int, targetPlayerID model.PlayerID, radarResults map[model.PlayerID]bool) *LegalityError {
	rules, _ := r.Rules(mission)
	if rules.ValidateDesignatedCutterTarget == nil {
		return nil
	}
	return rules.ValidateDesignatedCutterTarget(requiredValue, targetPlayerID, radarResults)
}
