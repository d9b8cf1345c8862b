package cpu

// A Mnemonic is one of the 56 documented 6502 instructions.
type Mnemonic uint8

const (
	ADC Mnemonic = iota // add with carry
	AND                 // and (with accumulator)
	ASL                 // arithmetic shift left
	BCC                 // branch on carry clear
	BCS                 // branch on carry set
	BEQ                 // branch on equal (zero set)
	BIT                 // bit test
	BMI                 // branch on minus (negative set)
	BNE                 // branch on not equal (zero clear)
	BPL                 // branch on plus (negative clear)
	BRK                 // break / interrupt
	BVC                 // branch on overflow clear
	BVS                 // branch on overflow set
	CLC                 // clear carry
	CLD                 // clear decimal
	CLI                 // clear interrupt disable
	CLV                 // clear overflow
	CMP                 // compare (with accumulator)
	CPX                 // compare with X
	CPY                 // compare with Y
	DEC                 // decrement memory
	DEX                 // decrement X
	DEY                 // decrement Y
	EOR                 // exclusive or (with accumulator)
	INC                 // increment memory
	INX                 // increment X
	INY                 // increment Y
	JMP                 // jump
	JSR                 // jump subroutine
	LDA                 // load accumulator
	LDX                 // load X
	LDY                 // load Y
	LSR                 // logical shift right
	NOP                 // no operation
	ORA                 // or with accumulator
	PHA                 // push accumulator
	PHP                 // push processor status
	PLA                 // pull accumulator
	PLP                 // pull processor status
	ROL                 // rotate left
	ROR                 // rotate right
	RTI                 // return from interrupt
	RTS                 // return from subroutine
	SBC                 // subtract with carry
	SEC                 // set carry
	SED                 // set decimal
	SEI                 // set interrupt disable
	STA                 // store accumulator
	STX                 // store X
	STY                 // store Y
	TAX                 // transfer accumulator to X
	TAY                 // transfer accumulator to Y
	TSX                 // transfer stack pointer to X
	TXA                 // transfer X to accumulator
	TXS                 // transfer X to stack pointer
	TYA                 // transfer Y to accumulator

	numMnemonics
)

var mnemonicNames = [numMnemonics]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (m Mnemonic) String() string {
	if m >= numMnemonics {
		return "???"
	}
	return mnemonicNames[m]
}

// A CycleRule determines the final cycle count of an instruction from its
// baseline.
type CycleRule uint8

const (
	// CycleFixed: the instruction always takes the baseline count.
	CycleFixed CycleRule = iota
	// CycleAddOnCross: add 1 if indexed addressing crossed a page.
	CycleAddOnCross
	// CycleBranch: add 1 if the branch is taken, 2 if it is taken to a
	// different page.
	CycleBranch
)

// An OpcodeEntry fully specifies one opcode byte: what instruction it
// invokes, how its operand is addressed, how many bytes it occupies
// (opcode + operand), and its cycle budget.
type OpcodeEntry struct {
	Code     byte
	Mnemonic Mnemonic
	Mode     AddressingMode
	Bytes    byte
	Cycles   byte
	Rule     CycleRule
}

// Table is the dense decoder table, indexed by opcode byte. Nil entries are
// undefined/illegal opcodes; executing one fails with UnknownOpcodeError.
// Built once at init and never written again, so it is safe to share across
// any number of Cpu instances.
var Table [256]*OpcodeEntry

func init() {
	for i := range opcodeList {
		e := &opcodeList[i]
		Table[e.Code] = e
	}
}

// All 151 documented opcodes, grouped by mnemonic.
// Cycle counts per http://www.6502.org/tutorials/6502opcodes.html
var opcodeList = [...]OpcodeEntry{
	// ADC - Add Memory to Accumulator with Carry
	{0x69, ADC, Immediate, 2, 2, CycleFixed},
	{0x65, ADC, ZeroPage, 2, 3, CycleFixed},
	{0x75, ADC, ZeroPageX, 2, 4, CycleFixed},
	{0x6D, ADC, Absolute, 3, 4, CycleFixed},
	{0x7D, ADC, AbsoluteX, 3, 4, CycleAddOnCross},
	{0x79, ADC, AbsoluteY, 3, 4, CycleAddOnCross},
	{0x61, ADC, IndirectX, 2, 6, CycleFixed},
	{0x71, ADC, IndirectY, 2, 5, CycleAddOnCross},
	// AND - AND Memory with Accumulator
	{0x29, AND, Immediate, 2, 2, CycleFixed},
	{0x25, AND, ZeroPage, 2, 3, CycleFixed},
	{0x35, AND, ZeroPageX, 2, 4, CycleFixed},
	{0x2D, AND, Absolute, 3, 4, CycleFixed},
	{0x3D, AND, AbsoluteX, 3, 4, CycleAddOnCross},
	{0x39, AND, AbsoluteY, 3, 4, CycleAddOnCross},
	{0x21, AND, IndirectX, 2, 6, CycleFixed},
	{0x31, AND, IndirectY, 2, 5, CycleAddOnCross},
	// ASL - Shift Left One Bit
	{0x0A, ASL, Implied, 1, 2, CycleFixed},
	{0x06, ASL, ZeroPage, 2, 5, CycleFixed},
	{0x16, ASL, ZeroPageX, 2, 6, CycleFixed},
	{0x0E, ASL, Absolute, 3, 6, CycleFixed},
	{0x1E, ASL, AbsoluteX, 3, 7, CycleFixed},
	// Branches
	{0x90, BCC, Relative, 2, 2, CycleBranch},
	{0xB0, BCS, Relative, 2, 2, CycleBranch},
	{0xF0, BEQ, Relative, 2, 2, CycleBranch},
	{0x30, BMI, Relative, 2, 2, CycleBranch},
	{0xD0, BNE, Relative, 2, 2, CycleBranch},
	{0x10, BPL, Relative, 2, 2, CycleBranch},
	{0x50, BVC, Relative, 2, 2, CycleBranch},
	{0x70, BVS, Relative, 2, 2, CycleBranch},
	// BIT - Test Bits in Memory with Accumulator
	{0x24, BIT, ZeroPage, 2, 3, CycleFixed},
	{0x2C, BIT, Absolute, 3, 4, CycleFixed},
	// BRK - Force Break
	{0x00, BRK, Implied, 1, 7, CycleFixed},
	// Flag clears
	{0x18, CLC, Implied, 1, 2, CycleFixed},
	{0xD8, CLD, Implied, 1, 2, CycleFixed},
	{0x58, CLI, Implied, 1, 2, CycleFixed},
	{0xB8, CLV, Implied, 1, 2, CycleFixed},
	// CMP - Compare Memory with Accumulator
	{0xC9, CMP, Immediate, 2, 2, CycleFixed},
	{0xC5, CMP, ZeroPage, 2, 3, CycleFixed},
	{0xD5, CMP, ZeroPageX, 2, 4, CycleFixed},
	{0xCD, CMP, Absolute, 3, 4, CycleFixed},
	{0xDD, CMP, AbsoluteX, 3, 4, CycleAddOnCross},
	{0xD9, CMP, AbsoluteY, 3, 4, CycleAddOnCross},
	{0xC1, CMP, IndirectX, 2, 6, CycleFixed},
	{0xD1, CMP, IndirectY, 2, 5, CycleAddOnCross},
	// CPX - Compare Memory with X
	{0xE0, CPX, Immediate, 2, 2, CycleFixed},
	{0xE4, CPX, ZeroPage, 2, 3, CycleFixed},
	{0xEC, CPX, Absolute, 3, 4, CycleFixed},
	// CPY - Compare Memory with Y
	{0xC0, CPY, Immediate, 2, 2, CycleFixed},
	{0xC4, CPY, ZeroPage, 2, 3, CycleFixed},
	{0xCC, CPY, Absolute, 3, 4, CycleFixed},
	// DEC - Decrement Memory
	{0xC6, DEC, ZeroPage, 2, 5, CycleFixed},
	{0xD6, DEC, ZeroPageX, 2, 6, CycleFixed},
	{0xCE, DEC, Absolute, 3, 6, CycleFixed},
	{0xDE, DEC, AbsoluteX, 3, 7, CycleFixed},
	{0xCA, DEX, Implied, 1, 2, CycleFixed},
	{0x88, DEY, Implied, 1, 2, CycleFixed},
	// EOR - Exclusive-OR Memory with Accumulator
	{0x49, EOR, Immediate, 2, 2, CycleFixed},
	{0x45, EOR, ZeroPage, 2, 3, CycleFixed},
	{0x55, EOR, ZeroPageX, 2, 4, CycleFixed},
	{0x4D, EOR, Absolute, 3, 4, CycleFixed},
	{0x5D, EOR, AbsoluteX, 3, 4, CycleAddOnCross},
	{0x59, EOR, AbsoluteY, 3, 4, CycleAddOnCross},
	{0x41, EOR, IndirectX, 2, 6, CycleFixed},
	{0x51, EOR, IndirectY, 2, 5, CycleAddOnCross},
	// INC - Increment Memory
	{0xE6, INC, ZeroPage, 2, 5, CycleFixed},
	{0xF6, INC, ZeroPageX, 2, 6, CycleFixed},
	{0xEE, INC, Absolute, 3, 6, CycleFixed},
	{0xFE, INC, AbsoluteX, 3, 7, CycleFixed},
	{0xE8, INX, Implied, 1, 2, CycleFixed},
	{0xC8, INY, Implied, 1, 2, CycleFixed},
	// JMP - Jump
	{0x4C, JMP, Absolute, 3, 3, CycleFixed},
	{0x6C, JMP, Indirect, 3, 5, CycleFixed},
	// JSR - Jump to Subroutine
	{0x20, JSR, Absolute, 3, 6, CycleFixed},
	// LDA - Load Accumulator
	{0xA9, LDA, Immediate, 2, 2, CycleFixed},
	{0xA5, LDA, ZeroPage, 2, 3, CycleFixed},
	{0xB5, LDA, ZeroPageX, 2, 4, CycleFixed},
	{0xAD, LDA, Absolute, 3, 4, CycleFixed},
	{0xBD, LDA, AbsoluteX, 3, 4, CycleAddOnCross},
	{0xB9, LDA, AbsoluteY, 3, 4, CycleAddOnCross},
	{0xA1, LDA, IndirectX, 2, 6, CycleFixed},
	{0xB1, LDA, IndirectY, 2, 5, CycleAddOnCross},
	// LDX - Load X
	{0xA2, LDX, Immediate, 2, 2, CycleFixed},
	{0xA6, LDX, ZeroPage, 2, 3, CycleFixed},
	{0xB6, LDX, ZeroPageY, 2, 4, CycleFixed},
	{0xAE, LDX, Absolute, 3, 4, CycleFixed},
	{0xBE, LDX, AbsoluteY, 3, 4, CycleAddOnCross},
	// LDY - Load Y
	{0xA0, LDY, Immediate, 2, 2, CycleFixed},
	{0xA4, LDY, ZeroPage, 2, 3, CycleFixed},
	{0xB4, LDY, ZeroPageX, 2, 4, CycleFixed},
	{0xAC, LDY, Absolute, 3, 4, CycleFixed},
	{0xBC, LDY, AbsoluteX, 3, 4, CycleAddOnCross},
	// LSR - Shift One Bit Right
	{0x4A, LSR, Implied, 1, 2, CycleFixed},
	{0x46, LSR, ZeroPage, 2, 5, CycleFixed},
	{0x56, LSR, ZeroPageX, 2, 6, CycleFixed},
	{0x4E, LSR, Absolute, 3, 6, CycleFixed},
	{0x5E, LSR, AbsoluteX, 3, 7, CycleFixed},
	// NOP - No Operation
	{0xEA, NOP, Implied, 1, 2, CycleFixed},
	// ORA - OR Memory with Accumulator
	{0x09, ORA, Immediate, 2, 2, CycleFixed},
	{0x05, ORA, ZeroPage, 2, 3, CycleFixed},
	{0x15, ORA, ZeroPageX, 2, 4, CycleFixed},
	{0x0D, ORA, Absolute, 3, 4, CycleFixed},
	{0x1D, ORA, AbsoluteX, 3, 4, CycleAddOnCross},
	{0x19, ORA, AbsoluteY, 3, 4, CycleAddOnCross},
	{0x01, ORA, IndirectX, 2, 6, CycleFixed},
	{0x11, ORA, IndirectY, 2, 5, CycleAddOnCross},
	// Stack pushes and pulls
	{0x48, PHA, Implied, 1, 3, CycleFixed},
	{0x08, PHP, Implied, 1, 3, CycleFixed},
	{0x68, PLA, Implied, 1, 4, CycleFixed},
	{0x28, PLP, Implied, 1, 4, CycleFixed},
	// ROL - Rotate One Bit Left (through carry)
	{0x2A, ROL, Implied, 1, 2, CycleFixed},
	{0x26, ROL, ZeroPage, 2, 5, CycleFixed},
	{0x36, ROL, ZeroPageX, 2, 6, CycleFixed},
	{0x2E, ROL, Absolute, 3, 6, CycleFixed},
	{0x3E, ROL, AbsoluteX, 3, 7, CycleFixed},
	// ROR - Rotate One Bit Right (through carry)
	{0x6A, ROR, Implied, 1, 2, CycleFixed},
	{0x66, ROR, ZeroPage, 2, 5, CycleFixed},
	{0x76, ROR, ZeroPageX, 2, 6, CycleFixed},
	{0x6E, ROR, Absolute, 3, 6, CycleFixed},
	{0x7E, ROR, AbsoluteX, 3, 7, CycleFixed},
	// Returns
	{0x40, RTI, Implied, 1, 6, CycleFixed},
	{0x60, RTS, Implied, 1, 6, CycleFixed},
	// SBC - Subtract Memory from Accumulator with Borrow
	{0xE9, SBC, Immediate, 2, 2, CycleFixed},
	{0xE5, SBC, ZeroPage, 2, 3, CycleFixed},
	{0xF5, SBC, ZeroPageX, 2, 4, CycleFixed},
	{0xED, SBC, Absolute, 3, 4, CycleFixed},
	{0xFD, SBC, AbsoluteX, 3, 4, CycleAddOnCross},
	{0xF9, SBC, AbsoluteY, 3, 4, CycleAddOnCross},
	{0xE1, SBC, IndirectX, 2, 6, CycleFixed},
	{0xF1, SBC, IndirectY, 2, 5, CycleAddOnCross},
	// Flag sets
	{0x38, SEC, Implied, 1, 2, CycleFixed},
	{0xF8, SED, Implied, 1, 2, CycleFixed},
	{0x78, SEI, Implied, 1, 2, CycleFixed},
	// STA - Store Accumulator
	{0x85, STA, ZeroPage, 2, 3, CycleFixed},
	{0x95, STA, ZeroPageX, 2, 4, CycleFixed},
	{0x8D, STA, Absolute, 3, 4, CycleFixed},
	{0x9D, STA, AbsoluteX, 3, 5, CycleFixed},
	{0x99, STA, AbsoluteY, 3, 5, CycleFixed},
	{0x81, STA, IndirectX, 2, 6, CycleFixed},
	{0x91, STA, IndirectY, 2, 6, CycleFixed},
	// STX - Store X
	{0x86, STX, ZeroPage, 2, 3, CycleFixed},
	{0x96, STX, ZeroPageY, 2, 4, CycleFixed},
	{0x8E, STX, Absolute, 3, 4, CycleFixed},
	// STY - Store Y
	{0x84, STY, ZeroPage, 2, 3, CycleFixed},
	{0x94, STY, ZeroPageX, 2, 4, CycleFixed},
	{0x8C, STY, Absolute, 3, 4, CycleFixed},
	// Transfers
	{0xAA, TAX, Implied, 1, 2, CycleFixed},
	{0xA8, TAY, Implied, 1, 2, CycleFixed},
	{0xBA, TSX, Implied, 1, 2, CycleFixed},
	{0x8A, TXA, Implied, 1, 2, CycleFixed},
	{0x9A, TXS, Implied, 1, 2, CycleFixed},
	{0x98, TYA, Implied, 1, 2, CycleFixed},
}
