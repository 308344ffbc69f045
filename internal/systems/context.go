package systems

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
)

// Context передает системам состояние мира на время одного тика.
// The scheduler owns everything here exclusively while the tick runs.
type Context struct {
	World  *ecs.World
	C      *domain.Components
	Map    *domain.Map
	Player ecs.Entity
	// State is the RunState read at tick start. Systems never write it.
	State  domain.RunState
	Log    *domain.GameLog
	Report *TickReport
}

// Death describes one entity removed by DeleteTheDead.
type Death struct {
	Entity   ecs.Entity
	Name     string
	IsPlayer bool
}

// TickReport collects what happened during a tick, for metrics and tests.
type TickReport struct {
	Aggro         int
	Attacks       int
	DamageApplied int
	Moves         int
	Deaths        []Death
}

// Reset clears the report for reuse on the next tick.
func (r *TickReport) Reset() {
	*r = TickReport{Deaths: r.Deaths[:0]}
}

func (ctx *Context) report() *TickReport {
	if ctx.Report == nil {
		ctx.Report = &TickReport{}
	}
	return ctx.Report
}

func (ctx *Context) log(text, logType string) {
	if ctx.Log != nil {
		ctx.Log.Add(text, logType)
	}
}
