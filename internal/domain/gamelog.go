package domain

import (
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LogEntry is one player-facing game message.
type LogEntry struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// GameLog keeps the most recent player-facing messages.
type GameLog struct {
	Entries []LogEntry
	tick    int
	limit   int
}

func NewGameLog() *GameLog {
	return &GameLog{
		Entries: make([]LogEntry, 0, MaxLogEntries),
		limit:   MaxLogEntries,
	}
}

// SetTick stamps subsequent entries.
func (l *GameLog) SetTick(tick int) {
	l.tick = tick
}

// Add appends a message and mirrors it to the structured log.
func (l *GameLog) Add(text, logType string) {
	if len(l.Entries) >= l.limit {
		copy(l.Entries, l.Entries[1:])
		l.Entries = l.Entries[:len(l.Entries)-1]
	}
	l.Entries = append(l.Entries, LogEntry{Tick: l.tick, Text: text, Type: logType})

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"tick":      l.tick,
	}).Info(text)
}

// Last returns up to n most recent entries, oldest first.
func (l *GameLog) Last(n int) []LogEntry {
	if n >= len(l.Entries) {
		return l.Entries
	}
	return l.Entries[len(l.Entries)-n:]
}
