package cpu

import (
	"fmt"

	"gomos/mask"
	"gomos/mem"
)

// An AddressingMode tells the Cpu how to compute an instruction's operand
// from the bytes that follow the opcode. There are 12 modes.
//
// Most modes can index the full 64 kB range of memory, that is, 256 pages of
// 256 bytes. The zero-page modes are confined to the first page.
//
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type AddressingMode int

const (
	// 0 operand bytes

	Implied AddressingMode = iota // register or no operand; e.g. CLC, ROL A, TXA

	// 1 operand byte

	Immediate // the byte is the value; e.g. LDA #$07
	ZeroPage  // the byte is an address into $0000-$00ff; e.g. LDA $80
	ZeroPageX // zero-page address plus X, wrapping within the page
	ZeroPageY // zero-page address plus Y, wrapping within the page; LDX, STX only
	IndirectX // word pointer read at (byte + X) in the zero page
	IndirectY // word pointer read at byte, then Y added to the pointee
	Relative  // signed offset from the post-operand PC; branches only

	// 2 operand bytes

	Absolute  // the word is the address; e.g. LDA $3010
	AbsoluteX // word address plus X
	AbsoluteY // word address plus Y
	Indirect  // word pointer to the real address; JMP only
)

// operandLengths maps each mode to the operand bytes it consumes. An
// instruction's total length is 1 + operandLengths[mode].
var operandLengths = map[AddressingMode]byte{
	Implied:   0,
	Immediate: 1,
	ZeroPage:  1,
	ZeroPageX: 1,
	ZeroPageY: 1,
	IndirectX: 1,
	IndirectY: 1,
	Relative:  1,
	Absolute:  2,
	AbsoluteX: 2,
	AbsoluteY: 2,
	Indirect:  2,
}

type operandKind int

const (
	opImplied operandKind = iota
	opLiteral
	opAddress
)

// An Operand is a tagged handle describing where an instruction reads and
// writes: the accumulator (Implied), a read-only immediate byte (Literal),
// or a memory cell (Address). Reads always succeed; writes succeed for
// Implied and Address and fail for Literal.
type Operand struct {
	kind operandKind
	lit  byte
	addr uint16
}

// ImpliedOperand targets the accumulator (or nothing at all).
func ImpliedOperand() Operand {
	return Operand{kind: opImplied}
}

// LiteralOperand carries a read-only immediate byte.
func LiteralOperand(lit byte) Operand {
	return Operand{kind: opLiteral, lit: lit}
}

// AddressOperand targets the memory cell at addr.
func AddressOperand(addr uint16) Operand {
	return Operand{kind: opAddress, addr: addr}
}

// Value reads the operand: the accumulator for Implied, the immediate byte
// for Literal, or one bus read for Address.
func (o Operand) Value(c *Cpu) byte {
	switch o.kind {
	case opLiteral:
		return o.lit
	case opAddress:
		return c.Read(o.addr)
	default:
		return c.A
	}
}

// Store writes through the operand: into the accumulator for Implied, or
// one bus write for Address. Literals are read-only.
func (o Operand) Store(c *Cpu, value byte) error {
	switch o.kind {
	case opImplied:
		c.A = value
		return nil
	case opAddress:
		c.Write(o.addr, value)
		return nil
	default:
		return NotWriteableError{Operand: o}
	}
}

// Address unwraps the target address of an Address operand.
func (o Operand) Address() (uint16, error) {
	if o.kind != opAddress {
		return 0, NotAddressError{Operand: o}
	}
	return o.addr, nil
}

func (o Operand) String() string {
	switch o.kind {
	case opLiteral:
		return fmt.Sprintf("#$%02x", o.lit)
	case opAddress:
		return fmt.Sprintf("$%04x", o.addr)
	default:
		return "A"
	}
}

// fetchOperand consumes the operand bytes for the given mode, advancing PC
// per byte, and produces the operand handle. The second return reports
// whether indexed address arithmetic carried out of the low byte, which
// costs an extra cycle on AddOnCross opcodes.
//
// The zero-page indexed modes wrap within the zero page (the sum is taken
// modulo 256), as the hardware does. Absolute and indirect arithmetic is
// 16-bit modular. Indirect does not reproduce the page-wrap bug of the real
// chip's JMP ($xxFF).
func (c *Cpu) fetchOperand(mode AddressingMode) (Operand, bool) {
	switch mode {

	case Implied:
		return ImpliedOperand(), false

	case Immediate:
		return LiteralOperand(c.fetchByte()), false

	case ZeroPage:
		return AddressOperand(uint16(c.fetchByte())), false

	case ZeroPageX:
		// byte addition: the sum stays in page 0
		return AddressOperand(uint16(c.fetchByte() + c.X)), false

	case ZeroPageY:
		return AddressOperand(uint16(c.fetchByte() + c.Y)), false

	case Absolute:
		return AddressOperand(c.fetchWord()), false

	case AbsoluteX:
		base := c.fetchWord()
		addr := base + uint16(c.X)
		return AddressOperand(addr), !mask.SamePage(base, addr)

	case AbsoluteY:
		base := c.fetchWord()
		addr := base + uint16(c.Y)
		return AddressOperand(addr), !mask.SamePage(base, addr)

	case Indirect:
		ptr := c.fetchWord()
		return AddressOperand(mem.ReadWord(c.Bus, ptr)), false

	case IndirectX:
		// the pointer itself lives in the zero page, offset by X before
		// the indirection
		ptr := uint16(c.fetchByte() + c.X)
		return AddressOperand(mem.ReadWord(c.Bus, ptr)), false

	case IndirectY:
		// unlike IndirectX, Y is applied after the indirection, so a
		// page cross is possible
		ptr := uint16(c.fetchByte())
		base := mem.ReadWord(c.Bus, ptr)
		addr := base + uint16(c.Y)
		return AddressOperand(addr), !mask.SamePage(base, addr)

	case Relative:
		// the offset is signed and relative to the PC that already
		// points past the branch operand
		offset := c.fetchByte()
		return AddressOperand(c.PC + mask.SignExtend(offset)), false
	}

	// the opcode table only carries the modes above
	return ImpliedOperand(), false
}
