package engine

import (
	"rogee/internal/domain"
	"rogee/internal/systems"
	"rogee/pkg/api"
	"rogee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Intent - запрос игрока на этот тик.
type Intent struct {
	Action domain.ActionType
	Dir    api.DirectionPayload
}

// NoIntent means no key was pressed.
var NoIntent = Intent{Action: domain.ActionNone}

func MoveIntent(dx, dy int) Intent {
	return Intent{Action: domain.ActionMove, Dir: api.DirectionPayload{Dx: dx, Dy: dy}}
}

func WaitIntent() Intent {
	return Intent{Action: domain.ActionWait}
}

func QuitIntent() Intent {
	return Intent{Action: domain.ActionQuit}
}

// PlayerInput applies an intent during Waiting and reports whether it was
// consumed. Quit is never consumed here; the frame loop acts on it.
func PlayerInput(ctx *systems.Context, in Intent) bool {
	switch in.Action {
	case domain.ActionMove:
		return handleMove(ctx, in.Dir)
	case domain.ActionWait:
		ctx.Log.Add("You wait.", domain.LogInfo)
		return true
	default:
		return false
	}
}

func handleMove(ctx *systems.Context, dir api.DirectionPayload) bool {
	inputLogger := logger.Log.WithFields(logrus.Fields{
		"component": "player_input",
		"dx":        dir.Dx,
		"dy":        dir.Dy,
	})
	if err := dir.Validate(); err != nil {
		inputLogger.WithError(err).Warn("Rejected move intent")
		return false
	}

	pos, ok := ctx.C.Position.Get(ctx.Player)
	if !ok {
		return false
	}

	res := systems.CalculateMove(ctx, ctx.Player, *pos, dir.Dx, dir.Dy)
	switch {
	case !res.BlockedBy.IsNil():
		ctx.C.WantsToMelee.Insert(ctx.Player, domain.WantsToMelee{Target: res.BlockedBy})
		inputLogger.WithField("target", ctx.C.DisplayName(res.BlockedBy)).Debug("Bump attack")
		return true
	case res.IsWall || res.IsBlocked:
		ctx.Log.Add("Path blocked.", domain.LogInfo)
		return false
	case res.HasMoved:
		systems.ApplyMove(ctx, ctx.Player, pos, res.Target)
		return true
	}
	return false
}
