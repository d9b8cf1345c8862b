// Package cpu implements a functional model of the MOS Technology 6502
// microprocessor: it fetches, decodes and executes the instruction stream
// against a memory bus, producing the register, flag and memory state the
// real chip would after an equivalent instruction sequence.
//
// It is not cycle-exact on sub-instruction boundaries, does not emulate
// undocumented opcodes or BCD arithmetic, and leaves interrupt delivery to
// the embedder.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

package cpu

import "gomos/mem"

// The Cpu has no memory of its own, aside from a handful of registers that
// amount to about 7 bytes. All memory traffic goes through the Bus.
type Cpu struct {
	Bus mem.Bus

	// The PC is a word-sized address that increments (almost)
	// continuously. The byte at this address is the next opcode to
	// execute.
	PC uint16

	A byte // accumulator
	X byte // index register
	Y byte // index register

	// S is the low byte of the stack pointer. Stack instructions (PHA,
	// PLA, PHP, PLP, JSR, RTS, RTI) always access the 01 page
	// (0x0100-0x01ff).
	S byte

	// Status is the P register.
	Status Status

	// CyclesLeft counts the cycles still owed by the most recently
	// decoded instruction. Tick only executes a new instruction once it
	// reaches zero.
	CyclesLeft byte
}

// New constructs a Cpu that owns the given bus. Registers and PC start at
// zero and the status register at its power-on value; the embedder sets PC
// to its entry point before stepping.
func New(bus mem.Bus) *Cpu {
	return &Cpu{
		Bus:    bus,
		Status: Status{Byte: DefaultStatus},
	}
}

// Reset restores the power-on state: registers, PC and CyclesLeft to zero,
// status to its default. The hardware reset vector at $fffc is deliberately
// not consulted; the embedder configures the entry point.
func (c *Cpu) Reset() {
	c.PC = 0
	c.A = 0
	c.X = 0
	c.Y = 0
	c.S = 0
	c.Status.Byte = DefaultStatus
	c.CyclesLeft = 0
}

// Read forwards to the bus. Frontends that poke memory between steps (to
// inject a key code, say) go through here rather than holding their own
// reference to the bus.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read(addr)
}

// Write forwards to the bus.
func (c *Cpu) Write(addr uint16, data byte) {
	c.Bus.Write(addr, data)
}

// fetchByte consumes the byte at PC.
func (c *Cpu) fetchByte() byte {
	b := c.Bus.Read(c.PC)
	c.PC++
	return b
}

// fetchWord consumes a little-endian word at PC.
func (c *Cpu) fetchWord() uint16 {
	w := mem.ReadWord(c.Bus, c.PC)
	c.PC += 2
	return w
}

// Step executes exactly one instruction: fetch the opcode byte, look it up,
// resolve the operand per the addressing mode, dispatch the mnemonic, then
// record the instruction's cycle budget in CyclesLeft.
//
// On error the step is abandoned where it failed; PC and the bus may have
// advanced already.
func (c *Cpu) Step() error {
	code := c.fetchByte()
	entry := Table[code]
	if entry == nil {
		return UnknownOpcodeError{Code: code}
	}

	operand, crossed := c.fetchOperand(entry.Mode)

	extra, err := c.execute(entry.Mnemonic, operand)
	if err != nil {
		return err
	}

	cycles := entry.Cycles
	if entry.Rule == CycleAddOnCross && crossed {
		cycles++
	}
	c.CyclesLeft = cycles + extra
	return nil
}

// Tick is the coarse pacing primitive: if the previous instruction's cycles
// have all elapsed, execute the next one; either way one cycle elapses. A
// harness calls Tick at (a multiple of) the target clock frequency.
func (c *Cpu) Tick() error {
	if c.CyclesLeft == 0 {
		if err := c.Step(); err != nil {
			return err
		}
	}
	if c.CyclesLeft > 0 {
		c.CyclesLeft--
	}
	return nil
}
