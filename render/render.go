// Package render declares the capability the video core draws through. The
// core never owns pixel production; it hands a Renderer the same narrow set
// of calls the original emulator's function table exposed (init/deinit,
// register and VRAM write notification, ranged draw, frame boundaries, and
// a pixel buffer handoff), modelled on the way c64.C64 owns its SDL
// window/renderer/texture instead of the VIC-II chip owning them directly.
package render

import "github.com/dmglib/gbvideo/host"

// Sprite is the fixed-layout OAM record the video core hands to a renderer
// for the sprites selected on the current scanline. It lives here, rather
// than in the video package, so Renderer implementations can depend on it
// without the video package importing back into render.
type Sprite struct {
	Y, X, Tile, Attrs uint8
}

// Priority reports the OBJ-to-BG priority bit: true means the sprite is
// drawn behind background colors 1-3.
func (s Sprite) Priority() bool { return s.Attrs&0x80 != 0 }

// YFlip reports the vertical-flip attribute bit.
func (s Sprite) YFlip() bool { return s.Attrs&0x40 != 0 }

// XFlip reports the horizontal-flip attribute bit.
func (s Sprite) XFlip() bool { return s.Attrs&0x20 != 0 }

// DMGPalette selects OBP0 (0) or OBP1 (1) on DMG.
func (s Sprite) DMGPalette() uint8 { return (s.Attrs >> 4) & 1 }

// VRAMBank selects the CGB VRAM bank the tile data is read from.
func (s Sprite) VRAMBank() uint8 { return (s.Attrs >> 3) & 1 }

// CGBPalette selects one of the eight CGB object palettes.
func (s Sprite) CGBPalette() uint8 { return s.Attrs & 0x07 }

// TileCache is an optional accelerator structure a Renderer may forward
// VRAM and palette writes to, mirroring the original's mTileCache hooks.
// Renderers that don't need one simply never call SetCache on themselves.
type TileCache interface {
	WriteVRAM(address uint16)
	WritePalette(index int)
}

// Renderer is the capability set the video core invokes at VRAM writes,
// palette writes, dot-clock boundaries, scanline ends, and frame ends. Every method must always be safely callable; a Renderer with
// nothing useful to do should behave like Dummy rather than panic or
// require nil checks from the core.
type Renderer interface {
	// Init prepares the renderer for the given hardware model. Called on
	// association and on core reset.
	Init(model host.Model)
	// Deinit releases any renderer-owned resources. Called before Init
	// on association, and before a renderer is replaced.
	Deinit()

	// WriteVideoRegister lets the renderer observe (and potentially
	// rewrite) an LCD register write before it's stored; the dummy and
	// SDL renderers both return value unchanged. The video package's
	// register writers do not call it.
	WriteVideoRegister(address uint16, value uint8) uint8
	// WriteVRAM notifies the renderer that the byte at address changed.
	WriteVRAM(address uint16)
	// WritePalette notifies the renderer that palette slot index now
	// holds the 15-bit color value.
	WritePalette(index int, value uint16)

	// DrawRange asks the renderer to produce pixels for columns
	// [startX, endX) of scanline y, given the sprites selected for that
	// line. The core may call this multiple times per line as the
	// dot-clock advances.
	DrawRange(startX, endX int, y uint8, objs []Sprite)
	// FinishScanline marks scanline y as complete.
	FinishScanline(y uint8)
	// FinishFrame marks the current frame as complete.
	FinishFrame()

	// GetPixels exposes the renderer's current frame buffer without a
	// copy: stride is pixels per row, in BGR555 (bit 15 unused).
	GetPixels() (stride int, pixels []uint16)
	// PutPixels replaces the renderer's frame buffer wholesale. The video
	// core's Deserialize does not call it; the video payload holds no
	// pixels.
	PutPixels(stride int, pixels []uint16)

	// Cache returns the currently attached tile cache, or nil.
	Cache() TileCache
	// SetCache attaches (or clears, with nil) a tile cache.
	SetCache(cache TileCache)
}
