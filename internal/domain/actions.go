package domain

// ActionType - what the player asked for this tick.
type ActionType uint8

const (
	ActionNone ActionType = iota
	ActionMove
	ActionWait
	ActionQuit
)

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionNone: "NONE",
	ActionMove: "MOVE",
	ActionWait: "WAIT",
	ActionQuit: "QUIT",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
