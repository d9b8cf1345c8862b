package cpu

import "gomos/mask"

// The stack lives in page 0x0100-0x01ff and nowhere else. S holds only the
// low byte and wraps modulo 256, so the stack can never leave its page. As
// on hardware, a push decrements S and a pull increments it; push and pull
// are exact inverses.

const stackPage uint16 = 0x0100

// PushByte writes data at the stack pointer, then moves it down.
func (c *Cpu) PushByte(data byte) {
	c.Write(stackPage|uint16(c.S), data)
	c.S--
}

// PullByte moves the stack pointer up, then reads the byte there.
func (c *Cpu) PullByte() byte {
	c.S++
	return c.Read(stackPage | uint16(c.S))
}

// PushWord pushes high byte first, so that the word sits in memory little
// endian and PullWord reads it back in one pass.
func (c *Cpu) PushWord(data uint16) {
	c.PushByte(mask.Hi(data))
	c.PushByte(mask.Lo(data))
}

// PullWord is the inverse of PushWord.
func (c *Cpu) PullWord() uint16 {
	lo := c.PullByte()
	hi := c.PullByte()
	return mask.Word(hi, lo)
}
