package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scrollgraph/calgrid"
	"scrollgraph/encode"
	"scrollgraph/render"
)

// termLayout is DefaultLayout scaled to terminal cells: two columns per
// week, one row per weekday.
var termLayout = render.Layout{
	CellSize:     2,
	LegendWidth:  4,
	HeaderHeight: 1,
	LabelWidth:   3,
	LabelGap:     1,
}

const cellGlyph = "■"

func (a *app) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Scroll through the calendar in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("preview needs an interactive terminal")
			}
			seq, grid, months, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			m := newPreviewModel(grid, months, a.resolveTheme(), calgrid.Summarize(seq))
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

type tickMsg struct {
	gen int
}

type previewModel struct {
	styles  styleSet
	cells   [calgrid.Levels]lipgloss.Style
	grid    calgrid.Grid
	months  calgrid.MonthIndex
	summary calgrid.Summary
	start   int
	playing bool
	gen     int
}

func newPreviewModel(grid calgrid.Grid, months calgrid.MonthIndex, theme render.Theme, summary calgrid.Summary) previewModel {
	m := previewModel{
		styles:  newStyles(),
		grid:    grid,
		months:  months,
		summary: summary,
	}
	for i, c := range theme.Ramp {
		m.cells[i] = lipgloss.NewStyle().Foreground(hexColor(c))
	}
	return m
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func tick(gen int) tea.Cmd {
	return tea.Tick(encode.FrameDelay, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.playing = false
			m.scroll(-1)
		case "right", "l":
			m.playing = false
			m.scroll(1)
		case "home", "g":
			m.playing = false
			m.start = 0
		case "end", "G":
			m.playing = false
			m.start = render.MaxStartWeek
		case " ":
			m.playing = !m.playing
			if m.playing {
				// A new generation orphans ticks from an earlier run.
				m.gen++
				return m, tick(m.gen)
			}
		}
	case tickMsg:
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		m.start++
		if m.start > render.MaxStartWeek {
			m.start = 0
		}
		return m, tick(m.gen)
	}
	return m, nil
}

func (m *previewModel) scroll(delta int) {
	m.start = min(max(m.start+delta, 0), render.MaxStartWeek)
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteString("\n")

	for d := 0; d < calgrid.DaysPerWeek; d++ {
		legend := ""
		if d%2 == 1 {
			legend = calgrid.Weekday(d).String()
		}
		b.WriteString(m.styles.weekday.Render(padRight(legend, termLayout.LegendWidth)))
		for col := 0; col < render.VisibleWeeks; col++ {
			level := m.grid.At(m.start+col, d)
			b.WriteString(m.cells[level].Render(cellGlyph))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	state := "paused"
	if m.playing {
		state = "playing"
	}
	pos := fmt.Sprintf("Weeks %d-%d of %d  %s", m.start+1, m.start+render.VisibleWeeks, calgrid.Weeks, state)
	b.WriteString(m.styles.footer.Render(pos))
	b.WriteString("\n")
	b.WriteString(m.styles.footer.Render(fmt.Sprintf("%s to %s, %d contributions", m.summary.First, m.summary.Last, m.summary.Total)))
	b.WriteString("\n")

	help := "←/→ h/l: Scroll  space: Play/Pause  home/end: Jump  q: Quit"
	b.WriteString(m.styles.help.Render(help))
	return b.String()
}

// headerLine places month labels on a rune row using the same overlap rule
// as the image renderer.
func (m previewModel) headerLine() string {
	width := termLayout.LegendWidth + render.VisibleWeeks*termLayout.CellSize
	row := []rune(strings.Repeat(" ", width))
	for _, l := range termLayout.MonthLabels(&m.months, m.start) {
		for i, r := range l.Text {
			if x := l.X + i; x < width {
				row[x] = r
			}
		}
	}
	return m.styles.header.Render(strings.TrimRight(string(row), " "))
}

func padRight(text string, width int) string {
	if n := lipgloss.Width(text); n < width {
		return text + strings.Repeat(" ", width-n)
	}
	return text
}

type styleSet struct {
	header  lipgloss.Style
	weekday lipgloss.Style
	footer  lipgloss.Style
	help    lipgloss.Style
	control lipgloss.Style
}

func newStyles() styleSet {
	base := lipgloss.NewStyle().Padding(0).Margin(0)

	return styleSet{
		header:  base.Copy().Foreground(lipgloss.Color("213")).Bold(true),
		weekday: base.Copy().Foreground(lipgloss.Color("111")).Bold(true),
		footer:  base.Copy().Foreground(lipgloss.Color("248")),
		help:    base.Copy().Foreground(lipgloss.Color("244")),
		control: base.Copy().Foreground(lipgloss.Color("153")).Bold(true),
	}
}
