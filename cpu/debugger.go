package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// A single-step debugger TUI: a memory page table on the left, registers and
// flags on the right, and a dump of the next decoded instruction below.

type debugModel struct {
	cpu *Cpu

	offset uint16 // entry point; also anchors the page table
	prevPC uint16
	err    error
}

func (m debugModel) Init() tea.Cmd {
	return nil
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.PC
			if err := m.cpu.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}

		case "r":
			m.cpu.Reset()
			m.cpu.PC = m.offset
		}
	}
	return m, nil
}

// renderRow renders 16 bytes of memory as one line, bracketing the byte the
// PC points at.
func (m debugModel) renderRow(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.cpu.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m debugModel) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}

	// the zero page head (where most programs keep their variables), the
	// stack page head, and the code around the entry point
	starts := []uint16{
		0x0000, 0x0010, 0x0020,
		0x0100,
		m.offset,
		m.offset + 16*1,
		m.offset + 16*2,
		m.offset + 16*3,
		m.offset + 16*4,
	}
	for _, start := range starts {
		rows = append(rows, m.renderRow(start&^0xf))
	}
	return strings.Join(rows, "\n")
}

func (m debugModel) registers() string {
	return fmt.Sprintf(`
PC: %04x (prev %04x)
 A: %02x
 X: %02x
 Y: %02x
 S: %02x
 P: %02x %s
cycles left: %d
`,
		m.cpu.PC,
		m.prevPC,
		m.cpu.A,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.S,
		m.cpu.Status.Byte,
		m.cpu.Status.String(),
		m.cpu.CyclesLeft,
	)
}

func (m debugModel) nextInstruction() string {
	entry := Table[m.cpu.Read(m.cpu.PC)]
	if entry == nil {
		return fmt.Sprintf("next: undefined opcode %#02x", m.cpu.Read(m.cpu.PC))
	}
	return spew.Sdump(*entry)
}

func (m debugModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.registers(),
		),
		"",
		m.nextInstruction(),
		"space/j: step   r: reset   q: quit",
	)
}

// Debug starts an interactive single-step TUI on the cpu, which should have
// its program loaded already. PC is set to offset before the first step.
func Debug(c *Cpu, offset uint16) error {
	c.PC = offset
	m, err := tea.NewProgram(debugModel{cpu: c, offset: offset}).Run()
	if err != nil {
		return err
	}
	if x := m.(debugModel); x.err != nil {
		return x.err
	}
	return nil
}
