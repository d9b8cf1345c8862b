package snake

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gomos/harness"
)

// The terminal frontend: one bubbletea frame per harness frame. Each screen
// cell is drawn as two spaces with a background color taken straight from
// the bus pixel buffer. Keypresses land in $00ff between steps, through the
// cpu's own forwarding accessor.

type frameMsg time.Time

type playModel struct {
	harness *harness.Harness
	bus     *Bus
}

func (m playModel) frameTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.harness.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m playModel) Init() tea.Cmd {
	m.harness.Run()
	return m.frameTick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w", "a", "s", "d":
			m.harness.Cpu.Write(0x00ff, msg.String()[0])
		case "r":
			m.harness.Reset()
			m.harness.Run()
		}

	case frameMsg:
		m.harness.Frame()
		return m, m.frameTick()
	}
	return m, nil
}

func (m playModel) View() string {
	var rows []string
	for y := 0; y < Screen; y++ {
		row := ""
		for x := 0; x < Screen; x++ {
			r, g, b, _ := m.bus.Pixel(y*Screen + x)
			cell := lipgloss.NewStyle().
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))).
				Render("  ")
			row += cell
		}
		rows = append(rows, row)
	}

	status := fmt.Sprintf("%s | wasd: steer   r: restart   q: quit", m.harness.State())
	if err := m.harness.Err(); err != nil {
		status = fmt.Sprintf("cpu error: %v | r: restart   q: quit", err)
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(rows, status)...)
}

// Play runs the snake cartridge in the terminal until the player quits.
func Play(h *harness.Harness, b *Bus) error {
	_, err := tea.NewProgram(playModel{harness: h, bus: b}).Run()
	return err
}
