package domain

// Параметры восприятия
const (
	VisionRange = 8
)

// Player defaults
const (
	PlayerHP      = 30
	PlayerDefense = 2
	PlayerPower   = 5
	PlayerGlyph   = '@'
	PlayerColor   = "yellow"
)

// Monster defaults
const (
	MonsterHP      = 16
	MonsterDefense = 1
	MonsterPower   = 4
	MonsterColor   = "red"
)

// Colors
const (
	ColorBlack = "black"
)

// Game log types
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogDeath  = "DEATH"
	LogAI     = "AI"
)

// MaxLogEntries caps the in-memory game log.
const MaxLogEntries = 100
