package cpu

import "fmt"

// All errors are fatal to the current Step and surfaced to the caller; the
// CPU never retries, and never panics on valid input. State after a failing
// step may be partially advanced (the opcode and operand fetches have
// already moved PC and touched the bus). Callers decide whether to reset,
// report, or continue.

// UnknownOpcodeError is returned when the fetched byte has no entry in the
// opcode table, i.e. an undefined/illegal opcode.
type UnknownOpcodeError struct {
	Code byte
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("no instruction implemented for opcode %#02x", e.Code)
}

// UnimplementedInstructionError is returned when the opcode table maps to a
// mnemonic the execution engine does not implement (BRK, for one).
type UnimplementedInstructionError struct {
	Mnemonic Mnemonic
}

func (e UnimplementedInstructionError) Error() string {
	return fmt.Sprintf("instruction %s unimplemented", e.Mnemonic)
}

// NotAddressError is returned when an instruction needs a memory address but
// the operand does not carry one (e.g. a branch decoded against a literal).
type NotAddressError struct {
	Operand Operand
}

func (e NotAddressError) Error() string {
	return fmt.Sprintf("operand %s is not an address", e.Operand)
}

// NotWriteableError is returned when an instruction tries to write through a
// read-only operand (a literal).
type NotWriteableError struct {
	Operand Operand
}

func (e NotWriteableError) Error() string {
	return fmt.Sprintf("operand %s can't be written to", e.Operand)
}
