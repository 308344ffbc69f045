package engine

import (
	"context"
	"fmt"

	"rogee/internal/domain"
	"rogee/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// События машины состояний RunState.
const (
	EventBootstrap  = "bootstrap"
	EventAct        = "act"
	EventAdvance    = "advance"
	EventPlayerDied = "player_died"
)

var (
	statePre      = domain.StatePre.String()
	stateWaiting  = domain.StateWaiting.String()
	statePlayer   = domain.StatePlayer.String()
	stateMonster  = domain.StateMonster.String()
	stateGameOver = domain.StateGameOver.String()
)

// TurnManager owns the RunState transition table. Any transition outside it
// is rejected by the underlying fsm.
type TurnManager struct {
	machine *fsm.FSM
	runID   string
}

func NewTurnManager(initial domain.RunState, runID string) *TurnManager {
	tm := &TurnManager{runID: runID}
	tm.machine = fsm.NewFSM(
		initial.String(),
		fsm.Events{
			{Name: EventBootstrap, Src: []string{statePre}, Dst: stateWaiting},
			{Name: EventAct, Src: []string{stateWaiting}, Dst: statePlayer},
			{Name: EventAdvance, Src: []string{statePlayer}, Dst: stateMonster},
			{Name: EventAdvance, Src: []string{stateMonster}, Dst: stateWaiting},
			{Name: EventPlayerDied, Src: []string{statePre, stateWaiting, statePlayer, stateMonster}, Dst: stateGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "turn_manager",
					"run_id":    tm.runID,
					"event":     e.Event,
					"from":      e.Src,
					"to":        e.Dst,
				}).Debug("RunState transition")
			},
		},
	)
	return tm
}

// State returns the current RunState.
func (tm *TurnManager) State() domain.RunState {
	s, err := domain.ParseRunState(tm.machine.Current())
	if err != nil {
		// Машина знает только наши состояния.
		panic(err)
	}
	return s
}

// Fire applies event. An event that is not allowed from the current state
// returns an error and leaves the state unchanged.
func (tm *TurnManager) Fire(ctx context.Context, event string) error {
	if !tm.Can(event) {
		return fmt.Errorf("run state %s: event %s not allowed, available %v",
			tm.machine.Current(), event, tm.AvailableEvents())
	}
	if err := tm.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("run state %s: %w", tm.machine.Current(), err)
	}
	return nil
}

// Can reports whether event is allowed right now.
func (tm *TurnManager) Can(event string) bool {
	return tm.machine.Can(event)
}

// AvailableEvents lists the events allowed from the current state.
func (tm *TurnManager) AvailableEvents() []string {
	return tm.machine.AvailableTransitions()
}
