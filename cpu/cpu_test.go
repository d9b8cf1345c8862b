package cpu

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomos/mem"
)

func TestNewDefaults(t *testing.T) {
	c := New(mem.NewRam())
	assert.Equal(t, c.PC, uint16(0))
	assert.Equal(t, c.A, byte(0))
	assert.Equal(t, c.X, byte(0))
	assert.Equal(t, c.Y, byte(0))
	assert.Equal(t, c.S, byte(0))
	assert.Equal(t, c.Status.Byte, DefaultStatus)
	assert.Equal(t, c.CyclesLeft, byte(0))
}

func TestReset(t *testing.T) {
	c := New(mem.NewRam())
	c.PC = 0x1234
	c.A, c.X, c.Y, c.S = 1, 2, 3, 4
	c.Status.Byte = 0xff
	c.CyclesLeft = 5

	c.Reset()
	assert.Equal(t, c.PC, uint16(0))
	assert.Equal(t, c.A, byte(0))
	assert.Equal(t, c.Status.Byte, DefaultStatus)
	assert.Equal(t, c.CyclesLeft, byte(0))
}

func TestLdaImmediateSetsNegative(t *testing.T) {
	c, _ := loadCpu(t, "A9 80", 0x0600) // LDA #$80

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x80))
	assert.Equal(t, c.PC, uint16(0x0602))
	assert.False(t, c.Status.Zero())
	assert.True(t, c.Status.Negative())
}

func TestAdcCarryInAndOverflow(t *testing.T) {
	c, _ := loadCpu(t, "69 50", 0x0600) // ADC #$50
	c.A = 0x50
	c.Status.SetCarry(true)
	require.Equal(t, c.Status.Byte, byte(0x21))

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0xa1)) // 0x50 + 0x50 + 1
	assert.False(t, c.Status.Carry())
	assert.False(t, c.Status.Zero())
	assert.True(t, c.Status.Negative())
	assert.True(t, c.Status.Overflow(), "two positives must not sum negative")
}

func TestAdcCarryOut(t *testing.T) {
	c, _ := loadCpu(t, "69 01", 0x0600) // ADC #$01
	c.A = 0xff

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x00))
	assert.True(t, c.Status.Carry())
	assert.True(t, c.Status.Zero())
	assert.False(t, c.Status.Overflow())
}

func TestSbcWithoutBorrow(t *testing.T) {
	c, _ := loadCpu(t, "E9 30", 0x0600) // SBC #$30
	c.A = 0x50
	c.Status.SetCarry(true)

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x20))
	assert.True(t, c.Status.Carry(), "no borrow happened")
	assert.False(t, c.Status.Zero())
	assert.False(t, c.Status.Negative())
	assert.False(t, c.Status.Overflow())
}

func TestSbcBorrow(t *testing.T) {
	c, _ := loadCpu(t, "E9 60", 0x0600) // SBC #$60
	c.A = 0x50
	c.Status.SetCarry(true)

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0xf0))
	assert.False(t, c.Status.Carry(), "borrow clears the carry")
	assert.True(t, c.Status.Negative())
}

func TestBranchTakenBackward(t *testing.T) {
	c, _ := loadCpu(t, "F0 FE", 0x0600) // BEQ -2
	c.Status.SetZero(true)

	require.NoError(t, c.Step())
	// -2 from the post-operand PC 0x0602: back onto itself
	assert.Equal(t, c.PC, uint16(0x0600))
	assert.Equal(t, c.CyclesLeft, byte(3), "taken same-page branch costs one extra")
}

func TestBranchNotTaken(t *testing.T) {
	c, _ := loadCpu(t, "F0 FE", 0x0600) // BEQ -2, Z clear

	require.NoError(t, c.Step())
	assert.Equal(t, c.PC, uint16(0x0602), "PC stays at its post-operand position")
	assert.Equal(t, c.CyclesLeft, byte(2))
}

func TestJsrRtsRoundTrip(t *testing.T) {
	c, ram := loadCpu(t, "20 10 06", 0x0600) // JSR $0610
	_, err := ram.LoadHex("60", 0x0610)      // RTS
	require.NoError(t, err)
	c.S = 0xfd

	require.NoError(t, c.Step())
	assert.Equal(t, c.PC, uint16(0x0610))
	assert.Equal(t, c.S, byte(0xfb), "a word went onto the stack")

	require.NoError(t, c.Step())
	assert.Equal(t, c.PC, uint16(0x0603), "RTS lands past the JSR instruction")
	assert.Equal(t, c.S, byte(0xfd), "the stack is balanced again")
}

func TestLdaIndirectX(t *testing.T) {
	c, ram := loadCpu(t, "A1 20", 0x0600) // LDA ($20,X)
	c.X = 0x04
	ram.Write(0x0024, 0x74)
	ram.Write(0x0025, 0x20)
	ram.Write(0x2074, 0x99)

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x99))
	assert.False(t, c.Status.Zero())
	assert.True(t, c.Status.Negative())
}

func TestLdaZeroPageXWraps(t *testing.T) {
	c, ram := loadCpu(t, "B5 FF", 0x0600) // LDA $ff,X
	c.X = 0x01
	ram.Write(0x0000, 0x77)

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x77), "the indexed sum must stay in page zero")
}

// The classic multiply-by-adding loop: 10 * 3 via repeated ADC, then three
// NOPs. End state: A=30, X=3, Y=0, $00-$02 = [10, 3, 30].
func TestMultiplyProgram(t *testing.T) {
	program := "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA"
	c, ram := loadCpu(t, program, 0x8000)

	for i := 0; c.PC < 0x8019; i++ {
		require.NoError(t, c.Step())
		require.Less(t, i, 200, "program must terminate")
	}

	type registers struct {
		A, X, Y byte
		PC      uint16
	}
	got := registers{A: c.A, X: c.X, Y: c.Y, PC: c.PC}
	want := registers{A: 30, X: 3, Y: 0, PC: 0x8019}
	assert.Nil(t, deep.Equal(got, want))

	assert.Equal(t, ram.Read(0x0000), byte(10))
	assert.Equal(t, ram.Read(0x0001), byte(3))
	assert.Equal(t, ram.Read(0x0002), byte(30))

	// the three NOPs change nothing
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	assert.Nil(t, deep.Equal(registers{A: c.A, X: c.X, Y: c.Y, PC: c.PC},
		registers{A: 30, X: 3, Y: 0, PC: 0x801c}))

	// and then the BRK that follows is a coverage gap, not a crash
	err := c.Step()
	var unimplemented UnimplementedInstructionError
	require.ErrorAs(t, err, &unimplemented)
	assert.Equal(t, unimplemented.Mnemonic, BRK)
}

func TestUnknownOpcode(t *testing.T) {
	c, _ := loadCpu(t, "02", 0x0600) // no such instruction

	err := c.Step()
	var unknown UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, unknown.Code, byte(0x02))
	assert.Equal(t, c.PC, uint16(0x0601), "the opcode fetch already advanced PC")
}

func TestCompareCarryPolarity(t *testing.T) {
	// C=1 iff register >= memory, for all three compares
	for _, tc := range []struct {
		name    string
		program string
		setup   func(c *Cpu)
	}{
		{"CMP", "C9 20", func(c *Cpu) { c.A = 0x10 }},
		{"CPX", "E0 20", func(c *Cpu) { c.X = 0x10 }},
		{"CPY", "C0 20", func(c *Cpu) { c.Y = 0x10 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCpu(t, tc.program, 0x0600)
			tc.setup(c)
			require.NoError(t, c.Step())
			assert.False(t, c.Status.Carry(), "register < memory borrows")
			assert.False(t, c.Status.Zero())
			assert.True(t, c.Status.Negative(), "0x10-0x20 has bit 7 set")
		})
	}

	c, _ := loadCpu(t, "E0 10", 0x0600) // CPX #$10
	c.X = 0x10
	require.NoError(t, c.Step())
	assert.True(t, c.Status.Carry())
	assert.True(t, c.Status.Zero())
	assert.False(t, c.Status.Negative())
}

func TestShifts(t *testing.T) {
	// ASL A: bit 7 into carry, bit 0 zero
	c, _ := loadCpu(t, "0A", 0x0600)
	c.A = 0b1100_0001
	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0b1000_0010))
	assert.True(t, c.Status.Carry())
	assert.True(t, c.Status.Negative())

	// LSR A: bit 0 into carry, bit 7 zero; V untouched
	c, _ = loadCpu(t, "4A", 0x0600)
	c.A = 0b0000_0011
	c.Status.SetOverflow(true)
	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0b0000_0001))
	assert.True(t, c.Status.Carry())
	assert.False(t, c.Status.Negative())
	assert.True(t, c.Status.Overflow(), "LSR must not touch V")
}

func TestRotatesGoThroughCarry(t *testing.T) {
	// ROL: old carry becomes bit 0, old bit 7 becomes carry -- a 9-bit
	// rotation, not a cyclic 8-bit one
	c, _ := loadCpu(t, "2A", 0x0600)
	c.A = 0b0100_0000
	c.Status.SetCarry(true)
	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0b1000_0001))
	assert.False(t, c.Status.Carry())

	// ROR: old carry becomes bit 7, old bit 0 becomes carry
	c, _ = loadCpu(t, "6A", 0x0600)
	c.A = 0b0000_0010
	c.Status.SetCarry(true)
	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0b1000_0001))
	assert.False(t, c.Status.Carry())

	// without carry-in, ROL of 0x80 gives zero (bit 7 does not wrap to
	// bit 0)
	c, _ = loadCpu(t, "2A", 0x0600)
	c.A = 0x80
	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x00))
	assert.True(t, c.Status.Carry())
	assert.True(t, c.Status.Zero())
}

func TestRolMemory(t *testing.T) {
	c, ram := loadCpu(t, "2E 10 02", 0x0600) // ROL $0210
	ram.Write(0x0210, 0b1000_0000)
	c.Status.SetCarry(true)

	require.NoError(t, c.Step())
	assert.Equal(t, ram.Read(0x0210), byte(0b0000_0001))
	assert.True(t, c.Status.Carry())
}

func TestBit(t *testing.T) {
	c, ram := loadCpu(t, "24 10", 0x0600) // BIT $10
	ram.Write(0x0010, 0b1100_0000)
	c.A = 0b0011_1111

	require.NoError(t, c.Step())
	assert.True(t, c.Status.Zero(), "A & M == 0")
	assert.True(t, c.Status.Negative(), "bit 7 of M")
	assert.True(t, c.Status.Overflow(), "bit 6 of M")
}

func TestIncDecWrap(t *testing.T) {
	c, ram := loadCpu(t, "E6 10 C6 11", 0x0600) // INC $10, DEC $11
	ram.Write(0x0010, 0xff)
	ram.Write(0x0011, 0x00)

	require.NoError(t, c.Step())
	assert.Equal(t, ram.Read(0x0010), byte(0x00))
	assert.True(t, c.Status.Zero())

	require.NoError(t, c.Step())
	assert.Equal(t, ram.Read(0x0011), byte(0xff))
	assert.True(t, c.Status.Negative())
}

func TestTransfers(t *testing.T) {
	c, _ := loadCpu(t, "AA", 0x0600) // TAX
	c.A = 0x80
	require.NoError(t, c.Step())
	assert.Equal(t, c.X, byte(0x80))
	assert.True(t, c.Status.Negative())

	// TXS is the exception: no flag updates, even for zero
	c, _ = loadCpu(t, "9A", 0x0600)
	c.X = 0x00
	c.S = 0x42
	c.Status.SetZero(false)
	require.NoError(t, c.Step())
	assert.Equal(t, c.S, byte(0x00))
	assert.False(t, c.Status.Zero(), "TXS must not touch Z")

	// TSX does update flags
	c, _ = loadCpu(t, "BA", 0x0600)
	c.S = 0x00
	require.NoError(t, c.Step())
	assert.Equal(t, c.X, byte(0x00))
	assert.True(t, c.Status.Zero())
}

func TestPlaUpdatesFlags(t *testing.T) {
	c, _ := loadCpu(t, "68", 0x0600) // PLA
	c.S = 0xfd
	c.PushByte(0x80)

	require.NoError(t, c.Step())
	assert.Equal(t, c.A, byte(0x80))
	assert.True(t, c.Status.Negative())
}

func TestPlpPhpRoundTrip(t *testing.T) {
	c, ram := loadCpu(t, "28 08", 0x0600) // PLP, PHP
	c.S = 0xfd
	c.PushByte(0b1100_0011)

	require.NoError(t, c.Step())
	assert.Equal(t, c.Status.Byte, byte(0b1100_0011), "PLP overwrites every bit")

	require.NoError(t, c.Step())
	assert.Equal(t, ram.Read(0x01fd), byte(0b1100_0011), "PHP writes back what PLP read")
	assert.Equal(t, c.S, byte(0xfc))
}

func TestRtiForcesLiveBreakBits(t *testing.T) {
	c, _ := loadCpu(t, "40", 0x0600) // RTI
	c.S = 0xfd
	c.PushWord(0x1234)          // return PC
	c.PushByte(0b1111_1111)     // status with B and U set on the stack
	c.Status.Byte = 0b0000_0000 // live B and U clear

	require.NoError(t, c.Step())
	assert.Equal(t, c.PC, uint16(0x1234))
	// bits 4 and 5 come from the live register, everything else from
	// the stack
	assert.Equal(t, c.Status.Byte, byte(0b1100_1111))
}

func TestPageCrossCycleBonus(t *testing.T) {
	// LDA $20ff,X with X=1 crosses into page 0x21
	c, _ := loadCpu(t, "BD FF 20", 0x0600)
	c.X = 0x01
	require.NoError(t, c.Step())
	assert.Equal(t, c.CyclesLeft, byte(5), "4 baseline + 1 for the cross")

	// no cross, no bonus
	c, _ = loadCpu(t, "BD 00 20", 0x0600)
	c.X = 0x01
	require.NoError(t, c.Step())
	assert.Equal(t, c.CyclesLeft, byte(4))

	// STA $20ff,X is a fixed-cycle opcode: crossing adds nothing
	c, _ = loadCpu(t, "9D FF 20", 0x0600)
	c.X = 0x01
	require.NoError(t, c.Step())
	assert.Equal(t, c.CyclesLeft, byte(5))
}

func TestTickPacing(t *testing.T) {
	c, _ := loadCpu(t, "A9 80 A9 00", 0x0600) // LDA #$80, LDA #$00

	// first tick executes the instruction (2 cycles) and burns one
	require.NoError(t, c.Tick())
	assert.Equal(t, c.A, byte(0x80))
	assert.Equal(t, c.CyclesLeft, byte(1))

	// second tick only burns the remaining cycle
	require.NoError(t, c.Tick())
	assert.Equal(t, c.A, byte(0x80))
	assert.Equal(t, c.CyclesLeft, byte(0))

	// third tick fetches the next instruction
	require.NoError(t, c.Tick())
	assert.Equal(t, c.A, byte(0x00))
}

func TestTickSurfacesErrors(t *testing.T) {
	c, _ := loadCpu(t, "02", 0x0600)
	err := c.Tick()
	var unknown UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
}

// A bus stub that records every access, for asserting the observable
// ordering within a step.
type busEvent struct {
	write bool
	addr  uint16
	data  byte
}

type recordingBus struct {
	ram    *mem.Ram
	events []busEvent
}

func (b *recordingBus) Read(addr uint16) byte {
	data := b.ram.Read(addr)
	b.events = append(b.events, busEvent{false, addr, data})
	return data
}

func (b *recordingBus) Write(addr uint16, data byte) {
	b.ram.Write(addr, data)
	b.events = append(b.events, busEvent{true, addr, data})
}

func TestStepAccessOrdering(t *testing.T) {
	ram := mem.NewRam()
	_, err := ram.LoadHex("EE 10 02", 0x0600) // INC $0210
	require.NoError(t, err)
	ram.Write(0x0210, 0x05)

	bus := &recordingBus{ram: ram}
	c := New(bus)
	c.PC = 0x0600

	require.NoError(t, c.Step())
	assert.Equal(t, bus.events, []busEvent{
		{false, 0x0600, 0xee}, // opcode fetch
		{false, 0x0601, 0x10}, // operand low
		{false, 0x0602, 0x02}, // operand high
		{false, 0x0210, 0x05}, // read-modify-write read
		{true, 0x0210, 0x06},  // ...and write
	})
	assert.Equal(t, c.CyclesLeft, byte(6))
}

func TestStoreOperandErrors(t *testing.T) {
	// exercising the capability failure directly: STA against a literal
	// handle must refuse
	c := New(mem.NewRam())
	err := c.STA(LiteralOperand(0x42))
	var notAddress NotAddressError
	require.ErrorAs(t, err, &notAddress)
}
