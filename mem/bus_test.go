package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRamReadWrite(t *testing.T) {
	r := NewRam()
	assert.Equal(t, r.Read(0x1234), byte(0)) // zeroed on init

	r.Write(0x1234, 0xab)
	assert.Equal(t, r.Read(0x1234), byte(0xab))

	r.Write(0xffff, 0x01)
	assert.Equal(t, r.Read(0xffff), byte(0x01))
}

func TestWordHelpers(t *testing.T) {
	r := NewRam()

	// little endian: low byte at the lower address
	r.Write(0x0024, 0x74)
	r.Write(0x0025, 0x20)
	assert.Equal(t, ReadWord(r, 0x0024), uint16(0x2074))

	WriteWord(r, 0x0300, 0xbeef)
	assert.Equal(t, r.Read(0x0300), byte(0xef))
	assert.Equal(t, r.Read(0x0301), byte(0xbe))
	assert.Equal(t, ReadWord(r, 0x0300), uint16(0xbeef))
}

func TestWordHelpersWrap(t *testing.T) {
	// the second byte access wraps modulo the address space, it must not
	// extend past 0xffff
	r := NewRam()
	r.Write(0xffff, 0x34)
	r.Write(0x0000, 0x12)
	assert.Equal(t, ReadWord(r, 0xffff), uint16(0x1234))

	WriteWord(r, 0xffff, 0xaabb)
	assert.Equal(t, r.Read(0xffff), byte(0xbb))
	assert.Equal(t, r.Read(0x0000), byte(0xaa))
}

func TestLoad(t *testing.T) {
	r := NewRam()
	r.Load([]byte{0xa9, 0x80, 0xea}, 0x0600)
	assert.Equal(t, r.Read(0x0600), byte(0xa9))
	assert.Equal(t, r.Read(0x0601), byte(0x80))
	assert.Equal(t, r.Read(0x0602), byte(0xea))
	assert.Equal(t, r.Read(0x0603), byte(0))
}

func TestLoadHex(t *testing.T) {
	r := NewRam()
	n, err := r.LoadHex("A2 0A 8E 00 00", 0x8000)
	assert.NoError(t, err)
	assert.Equal(t, n, 5)
	assert.Equal(t, r.Read(0x8000), byte(0xa2))
	assert.Equal(t, r.Read(0x8001), byte(0x0a))
	assert.Equal(t, r.Read(0x8004), byte(0x00))

	_, err = r.LoadHex("A2 zz", 0x8000)
	assert.Error(t, err)
}
