package terminal

import (
	"rogee/internal/engine"

	"github.com/gdamore/tcell/v2"
)

var keyDirections = map[tcell.Key][2]int{
	tcell.KeyUp:        {0, -1},
	tcell.KeyDown:      {0, 1},
	tcell.KeyLeft:      {-1, 0},
	tcell.KeyRight:     {1, 0},
	tcell.KeyUpLeft:    {-1, -1},
	tcell.KeyUpRight:   {1, -1},
	tcell.KeyDownLeft:  {-1, 1},
	tcell.KeyDownRight: {1, 1},
	// Numpad без NumLock
	tcell.KeyHome: {-1, -1},
	tcell.KeyPgUp: {1, -1},
	tcell.KeyEnd:  {-1, 1},
	tcell.KeyPgDn: {1, 1},
}

// vi-клавиши и цифры numpad с NumLock
var runeDirections = map[rune][2]int{
	'k': {0, -1}, '8': {0, -1},
	'j': {0, 1}, '2': {0, 1},
	'h': {-1, 0}, '4': {-1, 0},
	'l': {1, 0}, '6': {1, 0},
	'y': {-1, -1}, '7': {-1, -1},
	'u': {1, -1}, '9': {1, -1},
	'b': {-1, 1}, '1': {-1, 1},
	'n': {1, 1}, '3': {1, 1},
}

// KeyToIntent maps a key press to a player intent. Unbound keys give
// engine.NoIntent.
func KeyToIntent(ev *tcell.EventKey) engine.Intent {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return engine.QuitIntent()
	case tcell.KeyCenter:
		return engine.WaitIntent()
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'q', 'Q':
			return engine.QuitIntent()
		case '.', ' ', '5':
			return engine.WaitIntent()
		}
		if d, ok := runeDirections[r]; ok {
			return engine.MoveIntent(d[0], d[1])
		}
		return engine.NoIntent
	}
	if d, ok := keyDirections[ev.Key()]; ok {
		return engine.MoveIntent(d[0], d[1])
	}
	return engine.NoIntent
}
