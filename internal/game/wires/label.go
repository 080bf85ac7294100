package wires

import "github.com/bombbusters/bombbusters-server-go/internal/game/model"

// Label returns the letter label of a hand position: 0 is A, 25 is Z,
// 26 is AA and so on, like spreadsheet columns counted from zero.
func Label(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index; n >= 0; n = n/26 - 1 {
		buf = append(buf, byte('A'+n%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// LabelOf labels the tile at index in the player's hand. Tiles that came
// from another player's hand are marked with a trailing "*".
func LabelOf(player *model.Player, index int) string {
	label := Label(index)
	tile, ok := player.Tile(index)
	if !ok {
		return label
	}
	if tile.OriginalOwnerID != "" && tile.OriginalOwnerID != player.ID {
		return label + "*"
	}
	return label
}
