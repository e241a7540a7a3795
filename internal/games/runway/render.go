package runway

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// Visual characters for rendering
const (
	HorizonChar     = '─'
	LeftEdgeChar    = '/'
	RightEdgeChar   = '\\'
	DividerChar     = '┆'
	FarDotChar      = '·'
	ObstacleChar    = '█'
	ObstacleFarChar = '▓'
	CoinChar        = '◆'
	SparkleChar     = '✦'
	PlayerHeadChar  = '●'
	PlayerBodyChar  = '█'
	PlayerArmLChar  = '/'
	PlayerArmRChar  = '\\'
	ShadowChar      = '▁'
)

const (
	dashLength = 60.0 // Depth units per divider dash cycle
	jumpRows   = 3    // Rows the player rises at the top of a jump
)

// Render draws the current frame. Far entities are drawn first so near
// ones overlap them.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	g.drawRunway(dst)

	entities := g.ctrl.Entities()
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Depth > entities[j].Depth
	})
	for _, e := range entities {
		g.drawEntity(dst, e)
	}

	g.drawPlayer(dst)
	g.drawHUD(dst)

	switch {
	case g.ctrl.State() == sim.StateGameOver:
		s := g.ctrl.Session()
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  %s", s.Score, formatElapsed(s.Elapsed)),
			"R restart  |  Esc menu",
			core.ColorBrightRed)
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", "", core.ColorBrightYellow)
	}
}

// cellY converts a virtual Y to a row.
func (g *Game) cellY(y float64) int {
	return int(math.Floor(y / g.cfg.Render.CellHeight))
}

// cellX converts a virtual X to a column.
func (g *Game) cellX(x float64) int {
	return core.ToCell(x / g.cfg.Render.CellWidth)
}

func (g *Game) drawRunway(dst *core.Screen) {
	lanes := g.ctrl.Lanes()
	proj := g.ctrl.Projector()
	ch := g.cfg.Render.CellHeight

	horizonRow := g.cellY(lanes.HorizonY())
	dst.DrawHLine(0, horizonRow, dst.Width(), HorizonChar, core.ColorDarkGray)

	for row := horizonRow + 1; row < dst.Height(); row++ {
		y := math.Min((float64(row)+0.5)*ch, lanes.FloorY())
		road, left := lanes.RoadAtY(y)
		dst.SetColored(g.cellX(left), row, LeftEdgeChar, core.ColorWhite)
		dst.SetColored(g.cellX(left+road)-1, row, RightEdgeChar, core.ColorWhite)

		depth, ok := proj.DepthAtY(y)
		if !ok || math.Mod(depth+g.scroll, dashLength) >= dashLength/2 {
			continue
		}
		p, _ := proj.Project(depth)
		color := core.Fade(core.ColorGray, p.Alpha)
		for i := 0; i+1 < lanes.LaneCount(); i++ {
			a, _ := lanes.Position(i)
			b, _ := lanes.Position(i + 1)
			dst.SetColored(g.cellX(left+road*(a+b)/2), row, DividerChar, color)
		}
	}
}

func (g *Game) drawEntity(dst *core.Screen, e sim.Entity) {
	if !e.Visible || e.Screen.Y > g.ctrl.Lanes().FloorY() {
		return
	}
	x, ok := g.ctrl.Lanes().LaneCenterX(e.Lane, e.Screen.RoadWidth, e.Screen.LaneLeftX)
	if !ok {
		return
	}
	cx := g.cellX(x)
	row := min(g.cellY(e.Screen.Y), dst.Height()-1)
	scale := e.Screen.Scale

	if e.Consumed {
		dst.SetColored(cx, row, SparkleChar, core.ColorBrightYellow)
		return
	}
	if scale < 0.4 {
		color := core.ColorYellow
		if e.Kind == sim.KindObstacle {
			color = core.ColorRed
		}
		dst.SetColored(cx, row, FarDotChar, core.Fade(color, e.Screen.Alpha))
		return
	}

	switch e.Kind {
	case sim.KindObstacle:
		w := core.Clamp(core.ToCell(scale*2), 1, 7)
		h := core.Clamp(core.ToCell(scale*0.8), 1, 3)
		fill := ObstacleChar
		if scale < 1 {
			fill = ObstacleFarChar
		}
		dst.FillRect(core.NewRect(cx-w/2, row-h+1, w, h), fill, core.Fade(core.ColorRed, e.Screen.Alpha))
	case sim.KindCollectible:
		color := core.Fade(core.ColorBrightYellow, e.Screen.Alpha)
		dst.SetColored(cx, row, CoinChar, color)
		if scale >= 1.5 {
			dst.SetColored(cx-1, row, '<', color)
			dst.SetColored(cx+1, row, '>', color)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen) {
	lanes := g.ctrl.Lanes()
	floor := dst.Height() - 1
	x := (lanes.Width()-lanes.FloorWidth())/2 + lanes.FloorWidth()*g.ctrl.PlayerPosition()
	cx := g.cellX(x)

	lift := core.ToCell(g.ctrl.JumpHeight() * jumpRows)
	base := floor - lift

	color := core.ColorCyan
	if lift > 0 {
		color = core.ColorBrightCyan
		dst.DrawHLine(cx-1, floor, 3, ShadowChar, core.ColorDarkGray)
	}
	if g.ctrl.State() == sim.StateGameOver {
		color = core.ColorBrightRed
	}

	dst.SetColored(cx, base-1, PlayerHeadChar, color)
	dst.SetColored(cx-1, base, PlayerArmLChar, color)
	dst.SetColored(cx, base, PlayerBodyChar, color)
	dst.SetColored(cx+1, base, PlayerArmRChar, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", st.Score), core.ColorBrightWhite)

	sound := fmt.Sprintf("♪ %d%%", int(math.Round(st.Volume*100)))
	if st.Muted {
		sound = "♪ muted"
	}
	right := fmt.Sprintf(" %s  Spd %.1f  %s ", st.Difficulty, st.Speed, sound)
	dst.DrawText(dst.Width()-len([]rune(right))-2, 0, right, core.ColorGray)

	if st.Speed > g.extreme && g.ctrl.Session().ElapsedTicks%30 < 20 {
		dst.DrawTextCentered(1, "EXTREME", core.ColorBrightRed)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle, hint string, color core.Color) {
	lines := []string{title, "", subtitle}
	if hint != "" {
		lines = append(lines, hint)
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2

	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, boxH)
	dst.DrawBox(box, color)
	for i, l := range lines {
		n := len([]rune(l))
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		dst.DrawText(box.X+(boxW-n)/2, box.Y+1+i, l, c)
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	return fmt.Sprintf("%.1fs", d.Seconds())
}
