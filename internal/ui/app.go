// Package ui renders per-interface throughput charts in the terminal.
package ui

import (
	"fmt"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"netchoo/internal/config"
	"netchoo/internal/monitor"
	"netchoo/internal/netif"
	"netchoo/internal/series"
	"netchoo/internal/stats"
)

// maxNameChars bounds the interface label so chart titles line up.
const maxNameChars = 20

// App owns the termui lifecycle: one chart per tracked interface,
// stacked in a grid under a legend line. A single ticker drives both
// sampling and rendering, so nothing else ever touches the monitor.
type App struct {
	cfg config.Config
	mon *monitor.Monitor

	grid   *ui.Grid
	header *widgets.Paragraph
	empty  *widgets.Paragraph
	plots  map[string]*widgets.Plot
	width  int
	height int
}

// NewApp wires the presentation layer to a monitor.
func NewApp(cfg config.Config, mon *monitor.Monitor) *App {
	return &App{cfg: cfg, mon: mon, plots: make(map[string]*widgets.Plot)}
}

// Run takes over the terminal until q or Ctrl-C.
func (a *App) Run() error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal ui: %w", err)
	}
	defer ui.Close()

	a.width, a.height = ui.TerminalDimensions()

	a.header = widgets.NewParagraph()
	a.header.Border = false
	a.header.Text = a.legend()

	a.empty = widgets.NewParagraph()
	a.empty.Title = " netchoo "
	a.empty.Text = "No active interfaces."

	a.grid = ui.NewGrid()
	a.grid.SetRect(0, 0, a.width, a.height)

	a.tick(time.Now(), true)

	events := ui.PollEvents()
	ticker := time.NewTicker(a.cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case e := <-events:
			switch {
			case e.Type == ui.KeyboardEvent && (e.ID == "q" || e.ID == "<C-c>"):
				return nil
			case e.Type == ui.ResizeEvent:
				payload := e.Payload.(ui.Resize)
				a.width, a.height = payload.Width, payload.Height
				a.grid.SetRect(0, 0, a.width, a.height)
				ui.Clear()
				a.refresh()
				ui.Render(a.grid)
			}
		case now := <-ticker.C:
			a.tick(now, false)
		}
	}
}

// tick runs one sampling round and redraws. The grid is rebuilt only
// when the interface set changed (or on the forced initial tick).
func (a *App) tick(now time.Time, force bool) {
	changed := a.mon.Tick(now)
	if changed || force {
		a.rebuild()
		ui.Clear()
	}
	a.refresh()
	ui.Render(a.grid)
}

// rebuild reconciles the plot widgets against the monitor's registry
// and lays out one full-width row per interface.
func (a *App) rebuild() {
	names := a.mon.Interfaces()

	current := make(map[string]bool, len(names))
	for _, name := range names {
		current[name] = true
	}
	for name := range a.plots {
		if !current[name] {
			delete(a.plots, name)
		}
	}
	for _, name := range names {
		if _, ok := a.plots[name]; !ok {
			a.plots[name] = a.newPlot(name)
		}
	}

	headerRatio := 0.06
	if a.height >= 10 {
		headerRatio = 2.0 / float64(a.height)
	}

	rows := make([]interface{}, 0, len(names)+1)
	rows = append(rows, ui.NewRow(headerRatio, a.header))
	if len(names) == 0 {
		rows = append(rows, ui.NewRow(1-headerRatio, a.empty))
	} else {
		each := (1 - headerRatio) / float64(len(names))
		for _, name := range names {
			rows = append(rows, ui.NewRow(each, a.plots[name]))
		}
	}
	a.grid.Set(rows...)
}

func (a *App) newPlot(name string) *widgets.Plot {
	p := widgets.NewPlot()
	p.Data = [][]float64{{0, 0}, {0, 0}}
	p.ShowAxes = false
	p.BorderStyle.Fg = ui.ColorCyan
	p.TitleStyle.Fg = ui.ColorCyan

	rxColor, txColor := ui.ColorGreen, ui.ColorRed
	if netif.ReverseColors(name, a.cfg.ReverseBridgeColors) {
		rxColor, txColor = txColor, rxColor
	}
	p.LineColors = []ui.Color{rxColor, txColor}
	return p
}

// refresh copies the newest window of every series into its plot.
func (a *App) refresh() {
	// The plot draws one point per column; keep the newest points.
	maxPoints := a.width - 2
	if maxPoints < 2 {
		maxPoints = 2
	}

	for _, name := range a.mon.Interfaces() {
		p, ok := a.plots[name]
		if !ok {
			continue
		}
		s := a.mon.Series(name)

		samples := s.Snapshot()
		if len(samples) > maxPoints {
			samples = samples[len(samples)-maxPoints:]
		}

		rx := make([]float64, 0, len(samples))
		tx := make([]float64, 0, len(samples))
		for _, sm := range samples {
			rx = append(rx, sm.RxRate)
			tx = append(tx, sm.TxRate)
		}
		// The plot widget needs at least two points per line.
		for len(rx) < 2 {
			rx = append(rx, 0)
			tx = append(tx, 0)
		}

		p.Data = [][]float64{rx, tx}
		p.MaxVal = s.Scale()
		p.Title = a.plotTitle(name, s)
	}
}

func (a *App) plotTitle(name string, s *series.Series) string {
	latest, _ := s.Latest()

	rxNote, txNote := "", ""
	if netif.ReverseColors(name, a.cfg.ReverseBridgeColors) {
		rxNote, txNote = " (to containers)", " (from containers)"
	}

	return fmt.Sprintf(" %s  RX %s%s  TX %s%s  scale %s ",
		displayName(name),
		stats.FormatRate(latest.RxRate), rxNote,
		stats.FormatRate(latest.TxRate), txNote,
		stats.FormatRate(s.Scale()))
}

func (a *App) legend() string {
	text := fmt.Sprintf("[netchoo](fg:cyan,mod:bold)  [■ RX](fg:green)  [■ TX](fg:red)  window %s  sample %s  [press q to quit](fg:yellow)",
		a.cfg.WindowDuration, a.cfg.SampleInterval)
	if a.cfg.ReverseBridgeColors {
		text += "  [bridge traffic shown from container perspective](fg:yellow)"
	}
	return text
}

// displayName prefixes the classification icon and truncates long
// names so every chart title starts at the same width.
func displayName(name string) string {
	display := netif.Classify(name).Icon() + " " + name
	if r := []rune(display); len(r) > maxNameChars {
		display = string(r[:maxNameChars-3]) + "..."
	}
	return display
}
