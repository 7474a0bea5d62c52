package video

import (
	"testing"

	"github.com/dmglib/gbvideo/host"
	"github.com/stretchr/testify/assert"
)

func TestWriteBGPDecodesFourShades(t *testing.T) {
	c, _, r := newTestCore(t, host.ModelDMG)

	// 0xE4 = 11 10 01 00: shade 3,2,1,0 for pixel values 3,2,1,0.
	c.WriteBGP(0xE4)
	pal := c.Palette()
	assert.Equal(t, dmgColors[0], pal[0])
	assert.Equal(t, dmgColors[1], pal[1])
	assert.Equal(t, dmgColors[2], pal[2])
	assert.Equal(t, dmgColors[3], pal[3])
	assert.Len(t, r.paletteLog, 4)
}

func TestWriteOBP0AndOBP1TargetDistinctSlots(t *testing.T) {
	c, _, _ := newTestCore(t, host.ModelDMG)
	c.WriteOBP0(0x1B) // 00 01 10 11
	c.WriteOBP1(0xE4)

	pal := c.Palette()
	assert.Equal(t, dmgColors[3], pal[32])
	assert.Equal(t, dmgColors[2], pal[33])
	assert.Equal(t, dmgColors[1], pal[34])
	assert.Equal(t, dmgColors[0], pal[35])

	assert.Equal(t, dmgColors[0], pal[36])
	assert.Equal(t, dmgColors[3], pal[39])
}

func TestCGBPaletteAutoIncrement(t *testing.T) {
	c, h, r := newTestCore(t, host.ModelCGB)

	c.WriteBCPS(0x80) // index 0, auto-increment
	c.WriteBCPD(0x34)
	c.WriteBCPD(0x12)
	c.WriteBCPD(0xAA)
	c.WriteBCPD(0xBB)

	pal := c.Palette()
	assert.Equal(t, uint16(0x1234), pal[0])
	assert.Equal(t, uint16(0xBBAA), pal[1])
	assert.Len(t, r.paletteLog, 4)

	// After four writes the index should have advanced to 4 and BCPS
	// should mirror it with the increment bit preserved.
	assert.Equal(t, uint8(0x84), h.IO(regBCPS))
}

func TestCGBPaletteNoAutoIncrementReusesIndex(t *testing.T) {
	c, _, _ := newTestCore(t, host.ModelCGB)
	c.WriteOCPS(0x04) // index 4, no auto-increment
	c.WriteOCPD(0x11)
	c.WriteOCPD(0x22) // overwrites the same low byte, not the high byte

	pal := c.Palette()
	assert.Equal(t, uint16(0x0022), pal[32+4/2])
}
