package engine

import (
	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/pkg/api"
)

// Snapshot создает "снимок" мира глазами игрока.
// Только исследованные тайлы и сущности на видимых тайлах попадают в снимок.
func (g *Game) Snapshot() api.Snapshot {
	m := g.Map

	// 1. Карта (туман войны)
	mapDTO := make([]api.TileView, 0)
	for idx, revealed := range m.Revealed {
		if !revealed {
			continue
		}
		x, y := m.XY(idx)
		mapDTO = append(mapDTO, api.TileView{
			X:          x,
			Y:          y,
			IsWall:     m.Tiles[idx] == domain.TileWall,
			IsVisible:  m.Visible[idx],
			IsExplored: true,
		})
	}

	// 2. Сущности
	entities := make([]api.EntityView, 0)
	ecs.Join2(g.C.Position, g.C.Renderable, func(e ecs.Entity, pos *domain.Position, r *domain.Renderable) {
		if e != g.Player && !m.Visible[m.Index(pos.X, pos.Y)] {
			return
		}
		entities = append(entities, g.toEntityView(e, pos, r))
	})

	// 3. Логи
	last := g.Log.Last(10)
	logs := make([]api.LogEntry, 0, len(last))
	for _, l := range last {
		logs = append(logs, api.LogEntry{Tick: l.Tick, Text: l.Text, Type: l.Type})
	}

	snap := api.Snapshot{
		Type:       "UPDATE",
		RunID:      g.RunID.String(),
		Tick:       g.turn,
		MyEntityID: g.Player.Key(),
		State:      g.State().String(),
		Grid:       api.GridMeta{Width: m.Width, Height: m.Height},
		Map:        mapDTO,
		Entities:   entities,
		Logs:       logs,
	}
	if stats, ok := g.PlayerStats(); ok {
		snap.Player = toStatsView(&stats)
	}
	return snap
}

// toEntityView конвертирует сущность в DTO.
func (g *Game) toEntityView(e ecs.Entity, pos *domain.Position, r *domain.Renderable) api.EntityView {
	view := api.EntityView{
		ID:   e.Key(),
		Name: g.C.DisplayName(e),
	}
	view.Pos.X = pos.X
	view.Pos.Y = pos.Y
	view.Render.Glyph = string(r.Glyph)
	view.Render.FG = r.FG
	view.Render.BG = r.BG

	if stats, ok := g.C.CombatStats.Get(e); ok {
		view.Stats = toStatsView(stats)
	}
	return view
}

func toStatsView(s *domain.CombatStats) *api.StatsView {
	return &api.StatsView{
		HP:      s.HP,
		MaxHP:   s.MaxHP,
		Defense: s.Defense,
		Power:   s.Power,
	}
}
