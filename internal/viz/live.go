package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 240
	maxDiscRadius   = 6
	zoomStep        = 1.25
	maxSpeedRows    = 4
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// frameStart is the state a frame began from and the number of ticks it
// committed.
type frameStart struct {
	snap  sim.Snapshot
	ticks int
}

// Options configure the live view. Zero values pick the defaults.
type Options struct {
	Name          string
	FPS           int
	StepsPerFrame int
	MaxTicks      int
	Theme         string
}

// Model drives a simulation from the bubbletea event loop: every frame
// advances StepsPerFrame ticks and redraws.
type Model struct {
	sim           *sim.Simulation
	initial       sim.Snapshot
	proj          Projection
	initialProj   Projection
	name          string
	fps           int
	stepsPerFrame int
	maxTicks      int
	canvas        *Canvas
	trailCanvas   *Canvas
	trails        [][]r2.Vec
	showTrails    bool
	running       bool
	err           error
	energyHistory []float64
	history       []frameStart
	theme         Theme
	showHelp      bool
}

// NewModel wraps s, whose current state becomes the reset point. proj maps
// world coordinates onto the canvas in braille dots.
func NewModel(s *sim.Simulation, proj Projection, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 1
	}

	m := Model{
		sim:           s,
		initial:       s.Snapshot(),
		proj:          proj,
		initialProj:   proj,
		name:          opts.Name,
		fps:           opts.FPS,
		stepsPerFrame: opts.StepsPerFrame,
		maxTicks:      opts.MaxTicks,
		canvas:        NewCanvas(width, height),
		trailCanvas:   NewCanvas(width, height),
		trails:        make([][]r2.Vec, s.Len()),
		showTrails:    true,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]frameStart, 0, historyCapacity),
		theme:         GetTheme(opts.Theme),
	}
	m.record(s.Bodies())
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Err returns the collision that stopped the simulation, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "[":
			m.rewind()
		case "]":
			if !m.running {
				m.frame()
			}
		case "+", "=":
			m.zoom(zoomStep)
		case "-", "_":
			m.zoom(1 / zoomStep)
		case "0":
			m.proj = m.initialProj
		case "c":
			m.showTrails = !m.showTrails
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.frame()
		}
		return m, m.tick()
	}
	return m, nil
}

// frame advances one frame's worth of ticks. A collision stops the view.
func (m *Model) frame() {
	if m.err != nil || m.done() {
		m.running = false
		return
	}
	m.history = appendCapped(m.history, frameStart{snap: m.sim.Snapshot()}, historyCapacity)
	start := &m.history[len(m.history)-1]

	for i := 0; i < m.stepsPerFrame && !m.done(); i++ {
		bodies, err := m.sim.Step()
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.record(bodies)
		start.ticks++
	}
}

func (m Model) done() bool {
	return m.maxTicks > 0 && m.sim.Tick() >= m.maxTicks
}

func (m *Model) record(bodies []physics.Body) {
	for i, b := range bodies {
		m.trails[i] = appendCapped(m.trails[i], b.Pos, trailCapacity)
	}
	m.energyHistory = appendCapped(m.energyHistory, physics.TotalEnergy(bodies), historyCapacity)
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	s = append(s, v)
	if len(s) > capacity {
		s = s[1:]
	}
	return s
}

// rewind restores the state at the start of the previous frame and pauses.
func (m *Model) rewind() {
	if len(m.history) == 0 {
		return
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.sim.Restore(last.snap)
	m.err = nil
	m.running = false

	for i := range m.trails {
		m.trails[i] = trimTail(m.trails[i], last.ticks)
	}
	m.energyHistory = trimTail(m.energyHistory, last.ticks)
}

// trimTail drops the newest n samples but always keeps the oldest one.
func trimTail[T any](s []T, n int) []T {
	if keep := len(s) - n; keep >= 1 {
		return s[:keep]
	}
	return s[:min(len(s), 1)]
}

func (m *Model) reset() {
	m.sim.Restore(m.initial)
	m.err = nil
	m.running = true
	m.history = m.history[:0]
	m.energyHistory = m.energyHistory[:0]
	for i := range m.trails {
		m.trails[i] = m.trails[i][:0]
	}
	m.record(m.sim.Bodies())
}

func (m *Model) zoom(f float64) {
	m.proj = m.proj.Zoom(f, float64(m.canvas.DotsWide())/2, float64(m.canvas.DotsHigh())/2)
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.trailCanvas.Clear()

	if m.showTrails {
		for _, trail := range m.trails {
			for j := 1; j < len(trail); j++ {
				x0, y0 := m.proj.ToScreen(trail[j-1])
				x1, y1 := m.proj.ToScreen(trail[j])
				if !onScreen(x0, y0) || !onScreen(x1, y1) {
					continue
				}
				m.trailCanvas.DrawLine(int(x0), int(y0), int(x1), int(y1))
			}
		}
	}

	for _, b := range m.sim.Bodies() {
		x, y := m.proj.ToScreen(b.Pos)
		if !onScreen(x, y) {
			continue
		}
		r := int(math.Min(b.Radius*m.proj.Scale, maxDiscRadius))
		m.canvas.DrawDisc(int(math.Round(x)), int(math.Round(y)), r)
	}
}

// onScreen rejects coordinates too far out to convert to int safely.
func onScreen(x, y float64) bool {
	const limit = 1 << 20
	return math.Abs(x) < limit && math.Abs(y) < limit
}

// compose overlays the body canvas on the trail canvas, coloring each cell
// by the layer that owns it.
func (m *Model) compose() string {
	bodyStyle := lipgloss.NewStyle().Foreground(m.theme.Bodies)
	trailStyle := lipgloss.NewStyle().Foreground(m.theme.Trails)

	var b strings.Builder
	for row := range m.canvas.Grid {
		for col, cell := range m.canvas.Grid[row] {
			trail := m.trailCanvas.Grid[row][col]
			switch {
			case cell != brailleBlank:
				b.WriteString(bodyStyle.Render(string(cell | trail)))
			case trail != brailleBlank:
				b.WriteString(trailStyle.Render(string(trail)))
			default:
				b.WriteRune(cell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusCollision.Render("COLLISION")
	case m.done():
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.compose())

	header := HeaderStyle.Foreground(m.theme.Accent)
	name := m.name
	if name == "" {
		name = "orbitsim"
	}

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy (J)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(Row("Tick", fmt.Sprintf("%d", m.sim.Tick())) + "\n")
	s.WriteString(Row("Time", FormatDuration(m.sim.Time())) + "\n")
	s.WriteString(Row("Bodies", fmt.Sprintf("%d", m.sim.Len())) + "\n")
	s.WriteString(Row("Scale", fmt.Sprintf("%.3g dot/m", m.proj.Scale)) + "\n")
	for i, b := range m.sim.Bodies() {
		if i == maxSpeedRows {
			break
		}
		s.WriteString(Row("v "+b.ID, fmt.Sprintf("%.4g m/s", b.Speed())) + "\n")
	}
	if len(m.energyHistory) > 0 {
		s.WriteString(Row("Energy", fmt.Sprintf("%.4g J", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}
	if m.maxTicks > 0 {
		s.WriteString("\n" + ProgressBar(float64(m.sim.Tick())/float64(m.maxTicks), 30) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Warning).Width(40).Render(m.err.Error()) + "\n")
	}

	s.WriteString(KeyHint.MarginTop(2).Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Zoom 0:Fit C:Trails\n[ ]:Step T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial state   ║
║  Q        - Quit                     ║
║  + / -    - Zoom in / out            ║
║  0        - Restore initial zoom     ║
║  [        - Back one frame           ║
║  ]        - Forward one frame        ║
║  C        - Toggle trails            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// CanvasDots returns the live canvas size in braille dots, for building a
// projection before the model exists.
func CanvasDots() (float64, float64) {
	return width * 2, height * 4
}

// FormatDuration prints simulated seconds in the largest fitting unit.
func FormatDuration(seconds float64) string {
	switch {
	case math.Abs(seconds) >= 365.25*86400:
		return fmt.Sprintf("%.2f yr", seconds/(365.25*86400))
	case math.Abs(seconds) >= 86400:
		return fmt.Sprintf("%.2f d", seconds/86400)
	case math.Abs(seconds) >= 3600:
		return fmt.Sprintf("%.2f h", seconds/3600)
	default:
		return fmt.Sprintf("%.0f s", seconds)
	}
}
