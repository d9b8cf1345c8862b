// Package mem defines the Bus capability through which all CPU memory
// traffic flows, and a plain 64 kB Ram implementation of it.

package mem

import (
	"strconv"
	"strings"
)

// A Bus is the central object that connects 'hardware' components together.
// The Cpu owns exactly one Bus and performs every read and write through it;
// it never sees what is on the other side.
//
// Implementations are free to side-effect on access: map a region to a pixel
// buffer, return fresh entropy for a given cell, and so on. Such behavior
// belongs to the embedder, not to the CPU.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, data byte)
}

// ReadWord reads a little-endian word: the byte at addr becomes the low
// byte. The second read wraps around the 16-bit address space.
func ReadWord(b Bus, addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// WriteWord writes a little-endian word, low byte first. The second write
// wraps around the 16-bit address space.
func WriteWord(b Bus, addr uint16, data uint16) {
	b.Write(addr, byte(data))
	b.Write(addr+1, byte(data>>8))
}

// Ram is the simplest possible Bus: a flat 64 kB array, zeroed on init, with
// no mirroring and no mapped regions.
type Ram struct {
	cells [0x10000]byte
}

func NewRam() *Ram {
	return &Ram{}
}

func (r *Ram) Read(addr uint16) byte {
	return r.cells[addr]
}

func (r *Ram) Write(addr uint16, data byte) {
	r.cells[addr] = data
}

// Load copies a program image into memory starting at addr.
func (r *Ram) Load(program []byte, addr uint16) {
	for i, b := range program {
		r.cells[addr+uint16(i)] = b
	}
}

// LoadHex parses a whitespace-separated hex dump ("A9 80 EA ...") and places
// the bytes at addr. Returns the number of bytes loaded.
func (r *Ram) LoadHex(program string, addr uint16) (int, error) {
	fields := strings.Fields(program)
	for i, s := range fields {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return i, err
		}
		r.cells[addr+uint16(i)] = byte(b)
	}
	return len(fields), nil
}
