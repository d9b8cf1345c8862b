package cpu

import "gomos/mask"

// One method per mnemonic, named after it. Each reads and/or writes through
// the operand handle it is given and updates the status register; none of
// them touches PC except the branches, jumps and returns.
//
// how to read the obelisk reference:
// A,Z,N = A&M
// [target],[flags...] = [op]
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// execute dispatches one decoded instruction. The returned byte is the
// bonus cycle count incurred by taken branches; it is zero for everything
// else. A mnemonic without a case here fails rather than silently
// succeeding.
func (c *Cpu) execute(m Mnemonic, op Operand) (byte, error) {
	switch m {
	case ADC:
		c.ADC(op)
	case AND:
		c.AND(op)
	case ASL:
		return 0, c.ASL(op)
	case BCC:
		return c.BCC(op)
	case BCS:
		return c.BCS(op)
	case BEQ:
		return c.BEQ(op)
	case BIT:
		c.BIT(op)
	case BMI:
		return c.BMI(op)
	case BNE:
		return c.BNE(op)
	case BPL:
		return c.BPL(op)
	case BVC:
		return c.BVC(op)
	case BVS:
		return c.BVS(op)
	case CLC:
		c.Status.SetCarry(false)
	case CLD:
		c.Status.SetDecimal(false)
	case CLI:
		c.Status.SetInterrupt(false)
	case CLV:
		c.Status.SetOverflow(false)
	case CMP:
		c.CMP(op)
	case CPX:
		c.CPX(op)
	case CPY:
		c.CPY(op)
	case DEC:
		return 0, c.DEC(op)
	case DEX:
		c.DEX()
	case DEY:
		c.DEY()
	case EOR:
		c.EOR(op)
	case INC:
		return 0, c.INC(op)
	case INX:
		c.INX()
	case INY:
		c.INY()
	case JMP:
		return 0, c.JMP(op)
	case JSR:
		return 0, c.JSR(op)
	case LDA:
		c.LDA(op)
	case LDX:
		c.LDX(op)
	case LDY:
		c.LDY(op)
	case LSR:
		return 0, c.LSR(op)
	case NOP:
		// no state change
	case ORA:
		c.ORA(op)
	case PHA:
		c.PHA()
	case PHP:
		c.PHP()
	case PLA:
		c.PLA()
	case PLP:
		c.PLP()
	case ROL:
		return 0, c.ROL(op)
	case ROR:
		return 0, c.ROR(op)
	case RTI:
		c.RTI()
	case RTS:
		c.RTS()
	case SBC:
		c.SBC(op)
	case SEC:
		c.Status.SetCarry(true)
	case SED:
		c.Status.SetDecimal(true)
	case SEI:
		c.Status.SetInterrupt(true)
	case STA:
		return 0, c.STA(op)
	case STX:
		return 0, c.STX(op)
	case STY:
		return 0, c.STY(op)
	case TAX:
		c.TAX()
	case TAY:
		c.TAY()
	case TSX:
		c.TSX()
	case TXA:
		c.TXA()
	case TXS:
		c.TXS()
	case TYA:
		c.TYA()
	default:
		// BRK lands here: it is a software interrupt, and interrupt
		// delivery is out of scope
		return 0, UnimplementedInstructionError{Mnemonic: m}
	}
	return 0, nil
}

// branch moves PC to the operand's target when taken. A taken branch costs
// one extra cycle, two if the target is on a different page than the
// post-operand PC.
func (c *Cpu) branch(op Operand, taken bool) (byte, error) {
	target, err := op.Address()
	if err != nil {
		return 0, err
	}
	if !taken {
		return 0, nil
	}
	extra := byte(1)
	if !mask.SamePage(c.PC, target) {
		extra = 2
	}
	c.PC = target
	return extra, nil
}

// compare implements CMP/CPX/CPY: register minus memory with no borrow-in.
// The carry is set iff the register is >= memory, i.e. the subtraction did
// not borrow. (The polarity is the same for all three registers.)
func (c *Cpu) compare(reg byte, op Operand) {
	m := op.Value(c)
	c.Status.SetCarry(reg >= m)
	c.Status.SetZN(reg - m)
}

// ADC - Add with Carry
//
// A = A + M + C. The carry takes the carry-out of the 9-bit sum; the
// overflow flag is set when the operands agree in sign but the result does
// not (signed overflow).
func (c *Cpu) ADC(op Operand) {
	m := op.Value(c)
	var carry uint16
	if c.Status.Carry() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := byte(sum)
	c.Status.SetCarry(sum > 0xff)
	c.Status.SetOverflow((c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.Status.SetZN(result)
}

// AND - Logical AND
func (c *Cpu) AND(op Operand) {
	c.A &= op.Value(c)
	c.Status.SetZN(c.A)
}

// ASL - Arithmetic Shift Left
//
// Bit 7 goes into the carry, bit 0 becomes 0.
func (c *Cpu) ASL(op Operand) error {
	v := op.Value(c)
	result := v << 1
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetCarry(v&0x80 != 0)
	c.Status.SetZN(result)
	return nil
}

// BCC - Branch if Carry Clear
func (c *Cpu) BCC(op Operand) (byte, error) {
	return c.branch(op, !c.Status.Carry())
}

// BCS - Branch if Carry Set
func (c *Cpu) BCS(op Operand) (byte, error) {
	return c.branch(op, c.Status.Carry())
}

// BEQ - Branch if Equal
func (c *Cpu) BEQ(op Operand) (byte, error) {
	return c.branch(op, c.Status.Zero())
}

// BIT - Bit Test
//
// Z is set from A&M; bits 7 and 6 of M are copied into N and V.
func (c *Cpu) BIT(op Operand) {
	m := op.Value(c)
	c.Status.SetZero(m&c.A == 0)
	c.Status.SetNegative(m&0x80 != 0)
	c.Status.SetOverflow(m&0x40 != 0)
}

// BMI - Branch if Minus
func (c *Cpu) BMI(op Operand) (byte, error) {
	return c.branch(op, c.Status.Negative())
}

// BNE - Branch if Not Equal
func (c *Cpu) BNE(op Operand) (byte, error) {
	return c.branch(op, !c.Status.Zero())
}

// BPL - Branch if Positive
func (c *Cpu) BPL(op Operand) (byte, error) {
	return c.branch(op, !c.Status.Negative())
}

// BVC - Branch if Overflow Clear
func (c *Cpu) BVC(op Operand) (byte, error) {
	return c.branch(op, !c.Status.Overflow())
}

// BVS - Branch if Overflow Set
func (c *Cpu) BVS(op Operand) (byte, error) {
	return c.branch(op, c.Status.Overflow())
}

// CMP - Compare Accumulator
func (c *Cpu) CMP(op Operand) {
	c.compare(c.A, op)
}

// CPX - Compare X Register
func (c *Cpu) CPX(op Operand) {
	c.compare(c.X, op)
}

// CPY - Compare Y Register
func (c *Cpu) CPY(op Operand) {
	c.compare(c.Y, op)
}

// DEC - Decrement Memory
func (c *Cpu) DEC(op Operand) error {
	result := op.Value(c) - 1
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetZN(result)
	return nil
}

// DEX - Decrement X Register
func (c *Cpu) DEX() {
	c.X--
	c.Status.SetZN(c.X)
}

// DEY - Decrement Y Register
func (c *Cpu) DEY() {
	c.Y--
	c.Status.SetZN(c.Y)
}

// EOR - Exclusive OR
func (c *Cpu) EOR(op Operand) {
	c.A ^= op.Value(c)
	c.Status.SetZN(c.A)
}

// INC - Increment Memory
func (c *Cpu) INC(op Operand) error {
	result := op.Value(c) + 1
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetZN(result)
	return nil
}

// INX - Increment X Register
func (c *Cpu) INX() {
	c.X++
	c.Status.SetZN(c.X)
}

// INY - Increment Y Register
func (c *Cpu) INY() {
	c.Y++
	c.Status.SetZN(c.Y)
}

// JMP - Jump
func (c *Cpu) JMP(op Operand) error {
	target, err := op.Address()
	if err != nil {
		return err
	}
	c.PC = target
	return nil
}

// JSR - Jump to Subroutine
//
// Pushes the PC that points past the JSR operand, so that RTS lands on the
// instruction after the call.
func (c *Cpu) JSR(op Operand) error {
	target, err := op.Address()
	if err != nil {
		return err
	}
	c.PushWord(c.PC)
	c.PC = target
	return nil
}

// LDA - Load Accumulator
func (c *Cpu) LDA(op Operand) {
	c.A = op.Value(c)
	c.Status.SetZN(c.A)
}

// LDX - Load X Register
func (c *Cpu) LDX(op Operand) {
	c.X = op.Value(c)
	c.Status.SetZN(c.X)
}

// LDY - Load Y Register
func (c *Cpu) LDY(op Operand) {
	c.Y = op.Value(c)
	c.Status.SetZN(c.Y)
}

// LSR - Logical Shift Right
//
// Bit 0 goes into the carry, bit 7 becomes 0. V is not affected.
func (c *Cpu) LSR(op Operand) error {
	v := op.Value(c)
	result := v >> 1
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetCarry(v&0x01 != 0)
	c.Status.SetZN(result)
	return nil
}

// ORA - Logical Inclusive OR
func (c *Cpu) ORA(op Operand) {
	c.A |= op.Value(c)
	c.Status.SetZN(c.A)
}

// PHA - Push Accumulator
func (c *Cpu) PHA() {
	c.PushByte(c.A)
}

// PHP - Push Processor Status
func (c *Cpu) PHP() {
	c.PushByte(c.Status.Byte)
}

// PLA - Pull Accumulator
func (c *Cpu) PLA() {
	c.A = c.PullByte()
	c.Status.SetZN(c.A)
}

// PLP - Pull Processor Status
func (c *Cpu) PLP() {
	c.Status.Byte = c.PullByte()
}

// ROL - Rotate Left
//
// A 9-bit rotation through the carry: the old carry becomes bit 0, the old
// bit 7 becomes the carry.
func (c *Cpu) ROL(op Operand) error {
	v := op.Value(c)
	result := v << 1
	if c.Status.Carry() {
		result |= 0x01
	}
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetCarry(v&0x80 != 0)
	c.Status.SetZN(result)
	return nil
}

// ROR - Rotate Right
//
// The old carry becomes bit 7, the old bit 0 becomes the carry.
func (c *Cpu) ROR(op Operand) error {
	v := op.Value(c)
	result := v >> 1
	if c.Status.Carry() {
		result |= 0x80
	}
	if err := op.Store(c, result); err != nil {
		return err
	}
	c.Status.SetCarry(v&0x01 != 0)
	c.Status.SetZN(result)
	return nil
}

// RTI - Return from Interrupt
//
// Pops P then PC. The B and unused bits are never actually restored from
// the stack: the hardware keeps whatever is live in the processor, so the
// restored byte has bits 4 and 5 forced to the current values.
func (c *Cpu) RTI() {
	restored := c.PullByte()
	c.Status.Byte = restored&0b1100_1111 | c.Status.Byte&0b0011_0000
	c.PC = c.PullWord()
}

// RTS - Return from Subroutine
func (c *Cpu) RTS() {
	c.PC = c.PullWord()
}

// SBC - Subtract with Carry
//
// A = A - M - (1-C). The carry is the inverted borrow-out: C=1 means no
// borrow happened. Overflow is set when the operands disagree in sign and
// the result disagrees with the accumulator.
func (c *Cpu) SBC(op Operand) {
	m := op.Value(c)
	var borrow int
	if !c.Status.Carry() {
		borrow = 1
	}
	diff := int(c.A) - int(m) - borrow
	result := byte(diff)
	c.Status.SetCarry(diff >= 0)
	c.Status.SetOverflow((c.A^m)&0x80 != 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.Status.SetZN(result)
}

// STA - Store Accumulator
func (c *Cpu) STA(op Operand) error {
	addr, err := op.Address()
	if err != nil {
		return err
	}
	c.Write(addr, c.A)
	return nil
}

// STX - Store X Register
func (c *Cpu) STX(op Operand) error {
	addr, err := op.Address()
	if err != nil {
		return err
	}
	c.Write(addr, c.X)
	return nil
}

// STY - Store Y Register
func (c *Cpu) STY(op Operand) error {
	addr, err := op.Address()
	if err != nil {
		return err
	}
	c.Write(addr, c.Y)
	return nil
}

// TAX - Transfer Accumulator to X
func (c *Cpu) TAX() {
	c.X = c.A
	c.Status.SetZN(c.X)
}

// TAY - Transfer Accumulator to Y
func (c *Cpu) TAY() {
	c.Y = c.A
	c.Status.SetZN(c.Y)
}

// TSX - Transfer Stack Pointer to X
func (c *Cpu) TSX() {
	c.X = c.S
	c.Status.SetZN(c.X)
}

// TXA - Transfer X to Accumulator
func (c *Cpu) TXA() {
	c.A = c.X
	c.Status.SetZN(c.A)
}

// TXS - Transfer X to Stack Pointer
//
// The one transfer that does not touch Z and N.
func (c *Cpu) TXS() {
	c.S = c.X
}

// TYA - Transfer Y to Accumulator
func (c *Cpu) TYA() {
	c.A = c.Y
	c.Status.SetZN(c.A)
}
