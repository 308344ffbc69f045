package agent

import (
	"context"
	"errors"

	"rogee/internal/domain"
	"rogee/internal/engine"

	"github.com/sirupsen/logrus"
)

// Result summarises a headless run.
type Result struct {
	Ticks    int
	Turns    int
	Final    domain.RunState
	Survived bool
	// Reaped counts entities removed by death-culling, the player included.
	Reaped int
}

// Play drives g with b until the run ends, ctx is cancelled or maxTicks
// scheduler steps have passed.
func Play(ctx context.Context, g *engine.Game, b *Bot, maxTicks int) (Result, error) {
	var res Result
	for res.Ticks < maxTicks {
		in := engine.NoIntent
		if g.State() == domain.StateWaiting {
			in = b.Decide(g.Snapshot())
		}
		err := g.Tick(ctx, in)
		if errors.Is(err, engine.ErrGameOver) {
			break
		}
		if err != nil {
			return res, err
		}
		res.Ticks++
	}

	res.Turns = g.Turn()
	res.Final = g.State()
	res.Survived = !g.Over()
	res.Reaped = g.World.Reaped()
	b.log.WithFields(logrus.Fields{
		"ticks":    res.Ticks,
		"turns":    res.Turns,
		"state":    res.Final,
		"survived": res.Survived,
		"reaped":   res.Reaped,
	}).Info("Autoplay finished")
	return res, nil
}
