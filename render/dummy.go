package render

import "github.com/dmglib/gbvideo/host"

// Dummy is the no-op renderer the video core falls back to on init and
// deinit. Every hook is callable and harmless, the same guarantee the
// original's dummyRenderer function table made; only WriteVRAM and
// WritePalette do anything, and only when a tile cache is attached.
type Dummy struct {
	cache TileCache
}

// NewDummy returns a ready-to-associate Dummy renderer.
func NewDummy() *Dummy {
	return &Dummy{}
}

func (d *Dummy) Init(model host.Model) {}
func (d *Dummy) Deinit()               {}

func (d *Dummy) WriteVideoRegister(address uint16, value uint8) uint8 {
	return value
}

func (d *Dummy) WriteVRAM(address uint16) {
	if d.cache != nil {
		d.cache.WriteVRAM(address)
	}
}

func (d *Dummy) WritePalette(index int, value uint16) {
	if d.cache != nil {
		d.cache.WritePalette(index << 1)
	}
}

func (d *Dummy) DrawRange(startX, endX int, y uint8, objs []Sprite) {}
func (d *Dummy) FinishScanline(y uint8)                             {}
func (d *Dummy) FinishFrame()                                       {}

func (d *Dummy) GetPixels() (int, []uint16)            { return 0, nil }
func (d *Dummy) PutPixels(stride int, pixels []uint16) {}

func (d *Dummy) Cache() TileCache         { return d.cache }
func (d *Dummy) SetCache(cache TileCache) { d.cache = cache }
