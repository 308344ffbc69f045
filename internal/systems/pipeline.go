package systems

// System is one step of the tick pipeline.
type System interface {
	Name() string
	Run(ctx *Context)
}

// Pipeline is the fixed system order. Later systems consume what earlier
// ones produced in the same tick.
var Pipeline = []System{
	VisibilitySystem{},
	MonsterAISystem{},
	MapIndexingSystem{},
	MeleeCombatSystem{},
	DamageSystem{},
	MaintainSystem{},
}

// RunPipeline executes every system in Pipeline order.
func RunPipeline(ctx *Context) {
	for _, s := range Pipeline {
		s.Run(ctx)
	}
}

// MaintainSystem flushes deferred destruction.
type MaintainSystem struct{}

func (MaintainSystem) Name() string { return "maintain" }

func (MaintainSystem) Run(ctx *Context) {
	ctx.World.Maintain()
}
