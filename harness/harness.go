// Package harness drives a Cpu at a configurable clock frequency, frame by
// frame, and latches the first error instead of propagating it into the run
// loop. Frontends render one frame, call Frame, and repeat.
package harness

import (
	"gomos/cpu"
)

// State of the run loop.
type State int

const (
	Paused State = iota
	Running
	Errored
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// A Harness owns a Cpu and paces it. Frequency is the simulated clock in
// Hz; FPS is how often the frontend calls Frame per second. Each Frame call
// then ticks the Cpu Frequency/FPS times.
type Harness struct {
	Cpu       *cpu.Cpu
	Frequency int
	FPS       int

	entry uint16 // PC to restore on Reset
	state State
	err   error
}

// New wraps a cpu whose program is already loaded. entry is the PC the cpu
// starts at, and returns to on Reset. The harness starts paused.
func New(c *cpu.Cpu, entry uint16) *Harness {
	c.PC = entry
	return &Harness{
		Cpu:       c,
		Frequency: 1_000_000, // ballpark of the real chip
		FPS:       60,
		entry:     entry,
	}
}

func (h *Harness) State() State { return h.state }

// Err returns the latched error, if the harness is in the Errored state.
func (h *Harness) Err() error { return h.err }

func (h *Harness) Run()   { h.state = Running }
func (h *Harness) Pause() { h.state = Paused }

// Reset returns the cpu to power-on state with PC at the entry point,
// clears any latched error and leaves the harness Paused. The bus is not
// touched; memory keeps whatever state the program left in it.
func (h *Harness) Reset() {
	h.Cpu.Reset()
	h.Cpu.PC = h.entry
	h.state = Paused
	h.err = nil
}

// Frame advances the simulation by one frame's worth of cycles. It does
// nothing unless Running. The first tick error moves the harness to
// Errored, which stops further frames, and is latched for the frontend to
// display.
func (h *Harness) Frame() {
	if h.state != Running {
		return
	}
	ticks := h.Frequency / h.FPS
	for i := 0; i < ticks; i++ {
		if err := h.Cpu.Tick(); err != nil {
			h.state = Errored
			h.err = err
			return
		}
	}
}

// SingleStep executes exactly one instruction, regardless of state. Useful
// from a paused debugger view.
func (h *Harness) SingleStep() {
	if err := h.Cpu.Step(); err != nil {
		h.state = Errored
		h.err = err
	}
}
