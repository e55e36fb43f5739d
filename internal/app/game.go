package app

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/ui"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/stat"
)

// World dimensions in pixels, shared between window size and flight domain.
const (
	WorldWidth  = 1700
	WorldHeight = 950
)

// Source image for batched triangle drawing; the per-vertex colors tint it.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// forceColors maps each dominant steering force to its display color.
// Untagged boids stay white.
var forceColors = map[flock.Force]color.RGBA{
	flock.ForceNone:       colornames.White,
	flock.ForceSeparation: colornames.Yellow,
	flock.ForceAlignment:  colornames.Green,
	flock.ForceCohesion:   colornames.Blue,
	flock.ForceAvoidance:  colornames.Red,
}

type Game struct {
	flock    *flock.Flock
	params   *flock.SimulationParameters
	predator *geometry.Vector2D

	// UI Controls
	panel *ui.UIPanel

	// Widget references for easy access
	widgetPopulation      *ui.Slider
	widgetMaxSpeed        *ui.Slider
	widgetMaxForce        *ui.Slider
	widgetSeparation      *ui.Slider
	widgetCohesion        *ui.Slider
	widgetAlignment       *ui.Slider
	widgetAvoidance       *ui.Slider
	widgetNeighborRadius  *ui.Slider
	widgetAvoidanceRadius *ui.Slider
	widgetPaused          *ui.Checkbox
	widgetShowRadius      *ui.Checkbox
	widgetColorByForce    *ui.Checkbox

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms

	speeds []float64 // Scratch buffer for the speed statistics overlay
}

func GetNewGame(params *flock.SimulationParameters) *Game {
	// 1. Initialize UI Panel with all configuration widgets
	panel := ui.NewUIPanel(10, 10, 280, WorldHeight-20)

	panel.AddSection("Population")
	widgetPopulation := panel.AddSlider("Boids", 0, 1000, float64(params.TargetPopulation))

	panel.AddSection("Physics")
	widgetMaxSpeed := panel.AddSlider("Max Speed", 0, 20, params.MaxSpeed)
	widgetMaxForce := panel.AddSlider("Max Force", 0, 5, params.MaxForce)

	panel.AddSection("Steering Weights")
	widgetSeparation := panel.AddSlider("Separation", 0, 5, params.SeparationWeight)
	widgetCohesion := panel.AddSlider("Cohesion", 0, 5, params.CohesionWeight)
	widgetAlignment := panel.AddSlider("Alignment", 0, 5, params.AlignmentWeight)
	widgetAvoidance := panel.AddSlider("Avoidance", 0, 5, params.AvoidanceWeight)

	panel.AddSection("Interaction Radii")
	widgetNeighborRadius := panel.AddSlider("Neighbor Radius", 0, 300, params.NeighborRadius)
	widgetAvoidanceRadius := panel.AddSlider("Avoidance Radius", 0, 300, params.AvoidanceRadius)

	panel.AddSection("Display")
	widgetPaused := panel.AddCheckbox("Pause Simulation", false)
	widgetShowRadius := panel.AddCheckbox("Show Neighbor Radius", false)
	widgetColorByForce := panel.AddCheckbox("Color By Dominant Force", true)

	g := &Game{
		flock:                 flock.NewFlock(flock.Bounds{Left: 0, Right: WorldWidth, Top: 0, Bottom: WorldHeight}),
		params:                params,
		panel:                 panel,
		widgetPopulation:      widgetPopulation,
		widgetMaxSpeed:        widgetMaxSpeed,
		widgetMaxForce:        widgetMaxForce,
		widgetSeparation:      widgetSeparation,
		widgetCohesion:        widgetCohesion,
		widgetAlignment:       widgetAlignment,
		widgetAvoidance:       widgetAvoidance,
		widgetNeighborRadius:  widgetNeighborRadius,
		widgetAvoidanceRadius: widgetAvoidanceRadius,
		widgetPaused:          widgetPaused,
		widgetShowRadius:      widgetShowRadius,
		widgetColorByForce:    widgetColorByForce,
	}

	// The reset button needs the game reference to push the restored values
	// back into the widgets, so it is wired after construction.
	panel.AddButton("Reset Defaults", g.resetDefaults)
	panel.EndSection()

	return g
}

// resetDefaults restores the canonical parameter set and mirrors it back into
// the panel widgets so sliders and simulation stay in sync.
func (g *Game) resetDefaults() {
	g.params.Reset()
	g.widgetPopulation.Value = float64(g.params.TargetPopulation)
	g.widgetMaxSpeed.Value = g.params.MaxSpeed
	g.widgetMaxForce.Value = g.params.MaxForce
	g.widgetSeparation.Value = g.params.SeparationWeight
	g.widgetCohesion.Value = g.params.CohesionWeight
	g.widgetAlignment.Value = g.params.AlignmentWeight
	g.widgetAvoidance.Value = g.params.AvoidanceWeight
	g.widgetNeighborRadius.Value = g.params.NeighborRadius
	g.widgetAvoidanceRadius.Value = g.params.AvoidanceRadius
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel and keyboard shortcuts
	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Value = !g.widgetPaused.Value
	}

	// 2. Pull the widget values into the live parameter set
	g.params.TargetPopulation = int(g.widgetPopulation.Value + 0.5)
	g.params.MaxSpeed = g.widgetMaxSpeed.Value
	g.params.MaxForce = g.widgetMaxForce.Value
	g.params.SeparationWeight = g.widgetSeparation.Value
	g.params.CohesionWeight = g.widgetCohesion.Value
	g.params.AlignmentWeight = g.widgetAlignment.Value
	g.params.AvoidanceWeight = g.widgetAvoidance.Value
	g.params.NeighborRadius = g.widgetNeighborRadius.Value
	g.params.AvoidanceRadius = g.widgetAvoidanceRadius.Value

	// 3. The cursor acts as predator while it hovers the world outside the panel
	g.predator = g.cursorPredator()

	// 4. Advance the simulation one fixed step; ebiten paces Update at the TPS
	if !g.widgetPaused.Value {
		g.flock.Update(g.params, g.predator)
	}

	return nil
}

// cursorPredator returns the mouse position while it is inside the world and
// not over the control panel, nil otherwise.
func (g *Game) cursorPredator() *geometry.Vector2D {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		return nil
	}
	if g.panel.Contains(x, y) {
		return nil
	}
	return &geometry.Vector2D{X: x, Y: y}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	// 1. World perimeter
	vector.StrokeRect(screen, 0, 0, WorldWidth, WorldHeight, 2, colornames.Yellow, true)

	// 2. Draw the flock
	for _, b := range g.flock.Boids {
		if g.widgetShowRadius.Value {
			vector.StrokeCircle(
				screen,
				float32(b.Pos.X),
				float32(b.Pos.Y),
				float32(g.params.NeighborRadius),
				1,
				color.RGBA{R: 80, G: 80, B: 140, A: 90},
				true,
			)
		}
		clr := colornames.White
		if g.widgetColorByForce.Value {
			clr = forceColors[b.Dominant]
		}
		drawBoid(screen, b, clr)
	}

	// 3. Predator cursor with its avoidance ring
	if g.predator != nil {
		vector.DrawFilledCircle(screen, float32(g.predator.X), float32(g.predator.Y), 5, colornames.Red, true)
		vector.StrokeCircle(
			screen,
			float32(g.predator.X),
			float32(g.predator.Y),
			float32(g.params.AvoidanceRadius),
			5,
			colornames.Red,
			true,
		)
	}

	// 4. Draw UI Panel
	g.panel.Draw(screen)

	// 5. Draw the force distribution bar
	g.drawStatsBar(screen)

	if g.widgetPaused.Value {
		ebitenutil.DebugPrintAt(screen, "PAUSED (space to resume)", WorldWidth/2-96, 10)
	}

	// Display timing breakdown for performance analysis
	// (right side, below the distribution bar, to avoid overlap with the panel)
	mean, sigma := g.speedStats()
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms\n\nBoids: %d\nSpeed: %.2f +/- %.2f",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg,
		g.updateAvg+g.drawAvg,
		len(g.flock.Boids),
		mean, sigma)
	ebitenutil.DebugPrintAt(screen, msg, WorldWidth-150, 60)
}

// speedStats returns the mean and standard deviation of the boid speeds for
// the overlay, reusing a scratch slice to avoid a per-frame allocation.
func (g *Game) speedStats() (mean, sigma float64) {
	if len(g.flock.Boids) == 0 {
		return 0, 0
	}
	g.speeds = g.speeds[:0]
	for _, b := range g.flock.Boids {
		g.speeds = append(g.speeds, b.Vel.Len())
	}
	mean = stat.Mean(g.speeds, nil)
	// StdDev needs at least two samples
	if len(g.speeds) > 1 {
		sigma = stat.StdDev(g.speeds, nil)
	}
	return mean, sigma
}

// drawStatsBar renders a stacked bar in the top right corner showing how the
// flock splits across dominant forces, using the same colors as the boids.
func (g *Game) drawStatsBar(screen *ebiten.Image) {
	counts := make(map[flock.Force]int, len(forceColors))
	for _, b := range g.flock.Boids {
		counts[b.Dominant]++
	}
	total := float32(len(g.flock.Boids))
	// Avoid divide by zero with an empty flock
	if total == 0 {
		return
	}

	// --- Configuration ---
	barWidth := float32(200.0)
	barHeight := float32(20.0)
	marginTop := float32(10.0)
	marginRight := float32(10.0)

	// Calculate Position (Top Right)
	// screen.Bounds().Dx() gives current window width
	screenW := float32(screen.Bounds().Dx())
	x := screenW - barWidth - marginRight
	y := marginTop

	// --- Draw one segment per force, in a fixed order ---
	order := []flock.Force{
		flock.ForceSeparation,
		flock.ForceAlignment,
		flock.ForceCohesion,
		flock.ForceAvoidance,
		flock.ForceNone,
	}
	segX := x
	for _, f := range order {
		n := counts[f]
		if n == 0 {
			continue
		}
		w := barWidth * float32(n) / total
		vector.DrawFilledRect(screen, segX, y, w, barHeight, forceColors[f], true)
		segX += w
	}

	// --- Draw Text Below ---
	countMsg := fmt.Sprintf("Sep:%d Ali:%d Coh:%d Avo:%d",
		counts[flock.ForceSeparation],
		counts[flock.ForceAlignment],
		counts[flock.ForceCohesion],
		counts[flock.ForceAvoidance])
	// A simple hack to align right: subtract estimated text width (approx 8px per char)
	textOffset := float32(len(countMsg) * 8)
	ebitenutil.DebugPrintAt(screen, countMsg, int(x+barWidth-textOffset), int(y+barHeight+5))
}

func (g *Game) Layout(w, h int) (int, int) { return WorldWidth, WorldHeight }

// drawBoid renders one boid as a small triangle pointing along its velocity.
func drawBoid(screen *ebiten.Image, b *flock.Boid, clr color.RGBA) {
	angle := math.Atan2(b.Vel.Y, b.Vel.X)

	// Visual geometry logic
	tipX := b.Pos.X + math.Cos(angle)*6
	tipY := b.Pos.Y + math.Sin(angle)*6
	rightX := b.Pos.X + math.Cos(angle+2.5)*5
	rightY := b.Pos.Y + math.Sin(angle+2.5)*5
	leftX := b.Pos.X + math.Cos(angle-2.5)*5
	leftY := b.Pos.Y + math.Sin(angle-2.5)*5

	// The source image is plain white, the vertex colors carry the class color
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255

	// Define the 3 vertices of the triangle
	vertices := []ebiten.Vertex{
		{
			DstX: float32(tipX),
			DstY: float32(tipY),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1,
		},
		{
			DstX: float32(rightX),
			DstY: float32(rightY),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1,
		},
		{
			DstX: float32(leftX),
			DstY: float32(leftY),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1,
		},
	}

	indices := []uint16{0, 1, 2}

	op := &ebiten.DrawTrianglesOptions{}

	screen.DrawTriangles(vertices, indices, whiteImage, op)
}
