// Package snake is the demonstration cartridge: a Bus implementation with
// the memory-mapped I/O conventions the classic snake program expects, the
// program itself, and a terminal frontend to play it.
//
// The conventions (none of which the cpu knows about):
//
//	$00fe  a fresh pseudo-random byte on every read
//	$00ff  the last key pressed, as ASCII (w/a/s/d)
//	$0200-$05ff  a 32x32 grid of color indices, mirrored into an RGBA
//	             pixel buffer for the frontend
//
// https://skilldrick.github.io/easy6502/#snake
package snake

import "math/rand"

const (
	// Entry is where the game code loads, and where PC starts.
	Entry uint16 = 0x0600

	// Screen is the frame edge: the display region is Screen*Screen
	// cells.
	Screen = 32

	randAddr uint16 = 0x00fe
	keyAddr  uint16 = 0x00ff
	pixStart uint16 = 0x0200
	pixEnd   uint16 = 0x0600
)

// Key codes the game polls $00ff for.
const (
	KeyUp    byte = 'w'
	KeyLeft  byte = 'a'
	KeyDown  byte = 's'
	KeyRight byte = 'd'
)

// Bus is 64 kB of memory fronted by the snake I/O conventions. It satisfies
// mem.Bus.
type Bus struct {
	memory [0x10000]byte
	pixbuf [Screen * Screen * 4]byte

	// Rand supplies the byte returned by reads of $00fe (and the color
	// of out-of-palette cells). Overridable for deterministic tests.
	Rand func() byte
}

// NewBus loads the game code at Entry and clears the screen to the
// background color.
func NewBus() *Bus {
	b := &Bus{
		Rand: func() byte { return byte(rand.Intn(256)) },
	}
	copy(b.memory[Entry:], gameCode)
	for i := range b.pixbuf {
		b.pixbuf[i] = background
	}
	return b
}

func (b *Bus) Read(addr uint16) byte {
	if addr == randAddr {
		return b.Rand()
	}
	return b.memory[addr]
}

func (b *Bus) Write(addr uint16, data byte) {
	if addr >= pixStart && addr < pixEnd {
		b.paint(addr, data)
	}
	b.memory[addr] = data
}

// Pixel returns the RGBA value of display cell i, in row-major order.
func (b *Bus) Pixel(i int) (r, g, bl, a byte) {
	return b.pixbuf[i*4], b.pixbuf[i*4+1], b.pixbuf[i*4+2], b.pixbuf[i*4+3]
}

// LastKey reports the byte the game will see at $00ff.
func (b *Bus) LastKey() byte {
	return b.memory[keyAddr]
}

const background = 60 // dark grey, alpha included

// The game writes small color indices; anything outside the palette paints
// a random color (the original behavior, visible when the snake dies).
func (b *Bus) paint(addr uint16, data byte) {
	px := int(addr-pixStart) * 4
	var c [4]byte
	switch data {
	case 0:
		c = [4]byte{background, background, background, background}
	case 1:
		c = [4]byte{255, 255, 255, 255} // white
	case 2, 9:
		c = [4]byte{100, 100, 100, 100} // grey
	case 3, 10:
		c = [4]byte{255, 0, 0, 255} // red
	case 4, 11:
		c = [4]byte{0, 255, 0, 255} // green
	case 5, 12:
		c = [4]byte{0, 0, 255, 255} // blue
	case 6, 13:
		c = [4]byte{255, 0, 255, 255} // magenta
	case 7, 14:
		c = [4]byte{255, 255, 0, 255} // yellow
	default:
		c = [4]byte{b.Rand(), b.Rand(), b.Rand(), b.Rand()}
	}
	copy(b.pixbuf[px:px+4], c[:])
}

// CellAddr returns the color-grid address of display cell (x, y). Handy for
// tests poking the screen directly.
func CellAddr(x, y int) uint16 {
	return pixStart + uint16(y*Screen+x)
}

// The assembled snake program, loaded at $0600. It reads the direction from
// $00ff, pulls entropy for apple placement from $00fe, and draws by storing
// color indices into $0200-$05ff.
var gameCode = []byte{
	0x20, 0x06, 0x06, 0x20, 0x38, 0x06, 0x20, 0x0d, 0x06, 0x20, 0x2a, 0x06, 0x60, 0xa9,
	0x02, 0x85, 0x02, 0xa9, 0x04, 0x85, 0x03, 0xa9, 0x11, 0x85, 0x10, 0xa9, 0x10, 0x85,
	0x12, 0xa9, 0x0f, 0x85, 0x14, 0xa9, 0x04, 0x85, 0x11, 0x85, 0x13, 0x85, 0x15, 0x60,
	0xa5, 0xfe, 0x85, 0x00, 0xa5, 0xfe, 0x29, 0x03, 0x18, 0x69, 0x02, 0x85, 0x01, 0x60,
	0x20, 0x4d, 0x06, 0x20, 0x8d, 0x06, 0x20, 0xc3, 0x06, 0x20, 0x19, 0x07, 0x20, 0x20,
	0x07, 0x20, 0x2d, 0x07, 0x4c, 0x38, 0x06, 0xa5, 0xff, 0xc9, 0x77, 0xf0, 0x0d, 0xc9,
	0x64, 0xf0, 0x14, 0xc9, 0x73, 0xf0, 0x1b, 0xc9, 0x61, 0xf0, 0x22, 0x60, 0xa9, 0x04,
	0x24, 0x02, 0xd0, 0x26, 0xa9, 0x01, 0x85, 0x02, 0x60, 0xa9, 0x08, 0x24, 0x02, 0xd0,
	0x1b, 0xa9, 0x02, 0x85, 0x02, 0x60, 0xa9, 0x01, 0x24, 0x02, 0xd0, 0x10, 0xa9, 0x04,
	0x85, 0x02, 0x60, 0xa9, 0x02, 0x24, 0x02, 0xd0, 0x05, 0xa9, 0x08, 0x85, 0x02, 0x60,
	0x60, 0x20, 0x94, 0x06, 0x20, 0xa8, 0x06, 0x60, 0xa5, 0x00, 0xc5, 0x10, 0xd0, 0x0d,
	0xa5, 0x01, 0xc5, 0x11, 0xd0, 0x07, 0xe6, 0x03, 0xe6, 0x03, 0x20, 0x2a, 0x06, 0x60,
	0xa2, 0x02, 0xb5, 0x10, 0xc5, 0x10, 0xd0, 0x06, 0xb5, 0x11, 0xc5, 0x11, 0xf0, 0x09,
	0xe8, 0xe8, 0xe4, 0x03, 0xf0, 0x06, 0x4c, 0xaa, 0x06, 0x4c, 0x35, 0x07, 0x60, 0xa6,
	0x03, 0xca, 0x8a, 0xb5, 0x10, 0x95, 0x12, 0xca, 0x10, 0xf9, 0xa5, 0x02, 0x4a, 0xb0,
	0x09, 0x4a, 0xb0, 0x19, 0x4a, 0xb0, 0x1f, 0x4a, 0xb0, 0x2f, 0xa5, 0x10, 0x38, 0xe9,
	0x20, 0x85, 0x10, 0x90, 0x01, 0x60, 0xc6, 0x11, 0xa9, 0x01, 0xc5, 0x11, 0xf0, 0x28,
	0x60, 0xe6, 0x10, 0xa9, 0x1f, 0x24, 0x10, 0xf0, 0x1f, 0x60, 0xa5, 0x10, 0x18, 0x69,
	0x20, 0x85, 0x10, 0xb0, 0x01, 0x60, 0xe6, 0x11, 0xa9, 0x06, 0xc5, 0x11, 0xf0, 0x0c,
	0x60, 0xc6, 0x10, 0xa5, 0x10, 0x29, 0x1f, 0xc9, 0x1f, 0xf0, 0x01, 0x60, 0x4c, 0x35,
	0x07, 0xa0, 0x00, 0xa5, 0xfe, 0x91, 0x00, 0x60, 0xa6, 0x03, 0xa9, 0x00, 0x81, 0x10,
	0xa2, 0x00, 0xa9, 0x01, 0x81, 0x10, 0x60, 0xa2, 0x00, 0xea, 0xea, 0xca, 0xd0, 0xfb,
	0x60,
}
