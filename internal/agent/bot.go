package agent

import (
	"math/rand"

	"rogee/internal/domain"
	"rogee/internal/engine"
	"rogee/internal/systems"
	"rogee/pkg/api"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он видит мир только через api.Snapshot, как зритель, и на его основе
// выбирает Intent для следующего хода.
//
//  1. Строит локальную карту из снимка: всё неизвестное считается стеной.
//  2. Если видна живая цель: рядом - бьет, иначе подходит (SmartStep).
//  3. Иначе бродит по известному полу.
type Bot struct {
	rng *rand.Rand
	log *logrus.Entry
}

func NewBot(seed int64) *Bot {
	return &Bot{
		rng: rand.New(rand.NewSource(seed)),
		log: logger.Log.WithField("component", "bot"),
	}
}

var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Decide picks the next intent. It never returns Quit.
func (b *Bot) Decide(s api.Snapshot) engine.Intent {
	if s.State != domain.StateWaiting.String() {
		return engine.NoIntent
	}

	local := buildLocalMap(s)
	me, target, ok := findActors(s, local)
	if !ok {
		return engine.WaitIntent()
	}

	if target != nil {
		if me.IsAdjacent(*target) {
			dx, dy := me.StepTowards(*target)
			return engine.MoveIntent(dx, dy)
		}
		if dx, dy := systems.SmartStep(local, me, *target); dx != 0 || dy != 0 {
			return engine.MoveIntent(dx, dy)
		}
		b.log.WithField("target", *target).Debug("No step towards target. Action: WAIT")
		return engine.WaitIntent()
	}

	return b.wander(local, me)
}

func (b *Bot) wander(local *domain.Map, me domain.Position) engine.Intent {
	order := b.rng.Perm(len(directions))
	for _, i := range order {
		d := directions[i]
		next := me.Shift(d[0], d[1])
		if !local.IsBlocked(next.X, next.Y) {
			return engine.MoveIntent(d[0], d[1])
		}
	}
	return engine.WaitIntent()
}

// buildLocalMap создает локальную копию карты из данных снимка.
func buildLocalMap(s api.Snapshot) *domain.Map {
	m := domain.NewMap(s.Grid.Width, s.Grid.Height)
	for _, tv := range s.Map {
		if !tv.IsWall {
			m.SetFloor(tv.X, tv.Y)
		}
	}
	m.PopulateBlocked()
	return m
}

// findActors returns the bot's own position and the nearest living
// creature. Other creatures block their tiles on the local map.
func findActors(s api.Snapshot, local *domain.Map) (domain.Position, *domain.Position, bool) {
	var me domain.Position
	found := false
	for _, ev := range s.Entities {
		if ev.ID == s.MyEntityID {
			me = domain.Position{X: ev.Pos.X, Y: ev.Pos.Y}
			found = true
		}
	}
	if !found {
		return me, nil, false
	}

	var target *domain.Position
	best := 0
	for _, ev := range s.Entities {
		if ev.ID == s.MyEntityID || ev.Stats == nil || ev.Stats.HP <= 0 {
			continue
		}
		p := domain.Position{X: ev.Pos.X, Y: ev.Pos.Y}
		if local.InBounds(p.X, p.Y) {
			local.Blocked[local.Index(p.X, p.Y)] = true
		}
		if d := me.DistanceSquaredTo(p); target == nil || d < best {
			target, best = &p, d
		}
	}
	return me, target, true
}
