package video

import "github.com/dmglib/gbvideo/render"

// scanOAM selects up to 10 sprites intersecting scanline y, walking the 40
// OAM entries in index order and stopping once 10 are found. This is the
// DMG selection rule; sorting those 10 by X for display priority is left
// to the renderer (see DESIGN.md and render.SDLRenderer). Scanning happens
// exactly once per line, on mode-2 entry — a mid-mode-2 OAM write does not
// re-trigger it; the core works from the snapshot taken here.
func (c *Core) scanOAM(y uint8) {
	c.objMax = 0
	height := 8
	if c.host.IO(regLCDC)&LCDCObjSize != 0 {
		height = 16
	}
	for i := 0; i < 40; i++ {
		base := i * 4
		oy := int(c.oam[base])
		top := oy - 16
		if int(y) < top || int(y) >= top+height {
			continue
		}
		c.objThisLine[c.objMax] = render.Sprite{
			Y:     c.oam[base],
			X:     c.oam[base+1],
			Tile:  c.oam[base+2],
			Attrs: c.oam[base+3],
		}
		c.objMax++
		if c.objMax == 10 {
			break
		}
	}
}

// ReadOAM reads a raw OAM byte (0..159).
func (c *Core) ReadOAM(addr uint8) uint8 { return c.oam[addr] }

// WriteOAM writes a raw OAM byte (0..159). It does not re-scan the current
// line; the next mode-2 entry will pick up the new value.
func (c *Core) WriteOAM(addr uint8, value uint8) { c.oam[addr] = value }
