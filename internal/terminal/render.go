package terminal

import (
	"fmt"

	"rogee/internal/domain"
	"rogee/internal/ecs"
	"rogee/internal/engine"

	"github.com/gdamore/tcell/v2"
)

const (
	glyphWall  = '#'
	glyphFloor = '.'

	// Строк лога под строкой статуса
	logLines = 5
)

var (
	styleWallVisible  = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleFloorVisible = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleRemembered   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleStatus       = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGameOver     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var logStyles = map[string]tcell.Style{
	domain.LogInfo:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	domain.LogCombat: tcell.StyleDefault.Foreground(tcell.ColorOrange),
	domain.LogDeath:  tcell.StyleDefault.Foreground(tcell.ColorRed),
	domain.LogAI:     tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// Renderer рисует карту, сущности, статус и лог в tcell.Screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw redraws the whole frame. Remembered tiles are dim, visible tiles
// bright, and entities appear only on visible tiles.
func (r *Renderer) Draw(g *engine.Game) {
	r.screen.Clear()
	r.drawMap(g.Map)
	r.drawEntities(g)
	r.drawStatus(g, g.Map.Height)
	r.drawLog(g.Log, g.Map.Height+1)
	r.screen.Show()
}

func (r *Renderer) drawMap(m *domain.Map) {
	for idx, revealed := range m.Revealed {
		if !revealed {
			continue
		}
		x, y := m.XY(idx)
		glyph, style := glyphFloor, styleRemembered
		if m.Tiles[idx] == domain.TileWall {
			glyph = glyphWall
		}
		if m.Visible[idx] {
			style = styleFloorVisible
			if m.Tiles[idx] == domain.TileWall {
				style = styleWallVisible
			}
		}
		r.screen.SetContent(x, y, glyph, nil, style)
	}
}

func (r *Renderer) drawEntities(g *engine.Game) {
	m := g.Map
	var player *domain.Position
	ecs.Join2(g.C.Position, g.C.Renderable, func(e ecs.Entity, pos *domain.Position, rend *domain.Renderable) {
		if !m.Visible[m.Index(pos.X, pos.Y)] {
			return
		}
		if e == g.Player {
			player = pos
			return
		}
		r.screen.SetContent(pos.X, pos.Y, rend.Glyph, nil, entityStyle(rend))
	})
	// Игрок поверх всего на своей клетке
	if player != nil {
		rend, _ := g.C.Renderable.Get(g.Player)
		r.screen.SetContent(player.X, player.Y, rend.Glyph, nil, entityStyle(rend))
	}
}

func (r *Renderer) drawStatus(g *engine.Game, row int) {
	state := g.State()
	if state == domain.StateGameOver {
		r.drawText(0, row, styleGameOver, fmt.Sprintf("You died on turn %d. Press q to quit.", g.Turn()))
		return
	}
	hp := "HP: --"
	if stats, ok := g.PlayerStats(); ok {
		hp = fmt.Sprintf("HP: %d/%d", stats.HP, stats.MaxHP)
	}
	r.drawText(0, row, styleStatus, fmt.Sprintf("%s  Turn: %d  State: %s", hp, g.Turn(), state))
}

func (r *Renderer) drawLog(log *domain.GameLog, row int) {
	_, height := r.screen.Size()
	n := logLines
	if free := height - row; free < n {
		n = free
	}
	if n <= 0 {
		return
	}
	for i, entry := range log.Last(n) {
		style, ok := logStyles[entry.Type]
		if !ok {
			style = tcell.StyleDefault
		}
		r.drawText(0, row+i, style, entry.Text)
	}
}

func (r *Renderer) drawText(x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func entityStyle(rend *domain.Renderable) tcell.Style {
	style := tcell.StyleDefault.Foreground(tcell.GetColor(rend.FG))
	if rend.BG != "" {
		style = style.Background(tcell.GetColor(rend.BG))
	}
	return style
}
