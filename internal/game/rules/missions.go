package rules

import "github.com/bombbusters/bombbusters-server-go/internal/game/model"

const (
	// MissionDesignatedCutter is the mission where the captain designates
	// who cuts, limited to players the General Radar answered yes for.
	MissionDesignatedCutter model.MissionID = 18
	// MissionYellowSkip is the mission where a player left with only
	// yellow and red wires, one of them yellow, passes their turn.
	MissionYellowSkip model.MissionID = 41
)

// forbiddenCharacters lists, per mission, characters only the captain may play.
var forbiddenCharacters = map[model.MissionID][]model.CharacterID{
	27: {"double_detector"},
	29: {"double_detector"},
	35: {"x_or_y_ray"},
	46: {"double_detector", "x_or_y_ray"},
}

// ValidateMission18DesignatedCutterTarget checks that the designated
// player answered yes on the General Radar for requiredValue.
func ValidateMission18DesignatedCutterTarget(requiredValue int, targetPlayerID model.PlayerID, radarResults map[model.PlayerID]bool) *LegalityError {
	if radarResults[targetPlayerID] {
		return nil
	}
	return NewLegalityError(CodeMissionRuleViolation,
		"Mission 18: the designated cutter must have a wire of value %d (General Radar answered yes)", requiredValue)
}

// IsMission41PlayerSkippingTurn reports whether player must skip their turn
// in mission 41: they still hold wires, exactly one of them yellow, and
// every uncut wire is yellow or red.
func IsMission41PlayerSkippingTurn(state *model.GameState, player *model.Player) bool {
	if state == nil || state.Mission != MissionYellowSkip {
		return false
	}
	uncut := player.UncutTiles()
	if len(uncut) == 0 {
		return false
	}
	yellow := 0
	for _, tile := range uncut {
		if !tile.IsYellowOrRed() {
			return false
		}
		if tile.Color == model.WireYellow {
			yellow++
		}
	}
	return yellow == 1
}

// IsNonCaptainCharacterForbidden reports whether characterID is reserved
// to the captain in mission.
func IsNonCaptainCharacterForbidden(mission model.MissionID, characterID model.CharacterID) bool {
	for _, id := range forbiddenCharacters[mission] {
		if id == characterID {
			return true
		}
	}
	return false
}
