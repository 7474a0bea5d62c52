//go:build cgo

package render

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/dmglib/gbvideo/host"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenWidth  = 160
	screenHeight = 144
)

// SDLRenderer is a real display backend for the video core, modelled on
// c64.C64's window/renderer/texture/pixel-buffer fields and its per-frame
// texture upload. It owns a 160x144 BGR555 frame buffer; DrawRange fills it
// column-by-column from the current background color and whatever sprite
// pixels the selected OBJs contribute, and FinishFrame blits it.
//
// Decoding tile/bitmap data into exact pixel colors is explicitly the
// renderer's job and out of the video core's scope; this implementation
// keeps that job intentionally simple (flat background fill plus sprite
// silhouette overlay) rather than reproducing a full PPU pixel pipeline.
type SDLRenderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []uint16 // BGR555, screenWidth*screenHeight
	rgba   []byte   // scratch buffer for the SDL texture upload

	bgColor uint16
	cache   TileCache
	model   host.Model
	running bool
}

// NewSDLRenderer opens a window sized for the DMG/CGB screen, scaled by
// scale, and returns a Renderer backed by it. Callers must call Close when
// done.
func NewSDLRenderer(scale int) (*SDLRenderer, error) {
	if scale < 1 {
		scale = 1
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow("gbvideo",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		screenWidth*int32(scale), screenHeight*int32(scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		screenWidth, screenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &SDLRenderer{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]uint16, screenWidth*screenHeight),
		rgba:     make([]byte, screenWidth*screenHeight*4),
		bgColor:  0x7FFF,
		running:  true,
	}, nil
}

func (r *SDLRenderer) Init(model host.Model) { r.model = model }
func (r *SDLRenderer) Deinit()               {}

func (r *SDLRenderer) WriteVideoRegister(address uint16, value uint8) uint8 {
	return value
}

func (r *SDLRenderer) WriteVRAM(address uint16) {
	if r.cache != nil {
		r.cache.WriteVRAM(address)
	}
}

func (r *SDLRenderer) WritePalette(index int, value uint16) {
	if index == 0 {
		r.bgColor = value
	}
	if r.cache != nil {
		r.cache.WritePalette(index << 1)
	}
}

// DrawRange fills columns [startX, endX) of line y with the current
// background color, then overlays any selected sprite's column span with a
// flat silhouette color. The core hands sprites in OAM index order; DMG
// x-priority (lowest X wins overlapping pixels, ties broken by OAM index)
// is applied here by sorting a local copy highest-X-first and painting in
// that order, so the lowest-X sprite is painted last and wins.
func (r *SDLRenderer) DrawRange(startX, endX int, y uint8, objs []Sprite) {
	if int(y) >= screenHeight {
		return
	}
	row := int(y) * screenWidth
	if startX < 0 {
		startX = 0
	}
	if endX > screenWidth {
		endX = screenWidth
	}
	for x := startX; x < endX; x++ {
		r.pixels[row+x] = r.bgColor
	}

	// Copy in reverse OAM order so that, after the stable sort, equal-X
	// sprites are painted highest index first and the lowest index wins.
	ordered := make([]Sprite, len(objs))
	for i, obj := range objs {
		ordered[len(objs)-1-i] = obj
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].X > ordered[j].X })

	for _, obj := range ordered {
		spriteColor := uint16(0x0000)
		oy := int(obj.Y) - 16
		ox := int(obj.X) - 8
		if int(y) < oy || int(y) >= oy+16 {
			continue
		}
		lo, hi := ox, ox+8
		if lo < startX {
			lo = startX
		}
		if hi > endX {
			hi = endX
		}
		for x := lo; x < hi; x++ {
			if x < 0 || x >= screenWidth {
				continue
			}
			r.pixels[row+x] = spriteColor
		}
	}
}

func (r *SDLRenderer) FinishScanline(y uint8) {}

// FinishFrame uploads the BGR555 buffer to the SDL texture and presents
// it, draining the SDL event queue the way c64.C64.RenderFrame does.
func (r *SDLRenderer) FinishFrame() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			r.running = false
			return
		}
	}

	for i, p := range r.pixels {
		red := uint8((p & 0x1F) << 3)
		green := uint8(((p >> 5) & 0x1F) << 3)
		blue := uint8(((p >> 10) & 0x1F) << 3)
		off := i * 4
		r.rgba[off+0] = red
		r.rgba[off+1] = green
		r.rgba[off+2] = blue
		r.rgba[off+3] = 0xFF
	}

	if err := r.texture.Update(nil, unsafe.Pointer(&r.rgba[0]), screenWidth*4); err != nil {
		fmt.Println(err)
		return
	}
	_ = r.renderer.Clear()
	_ = r.renderer.Copy(r.texture, nil, nil)
	r.renderer.Present()
}

func (r *SDLRenderer) GetPixels() (int, []uint16) {
	return screenWidth, r.pixels
}

func (r *SDLRenderer) PutPixels(stride int, pixels []uint16) {
	copy(r.pixels, pixels)
}

func (r *SDLRenderer) Cache() TileCache         { return r.cache }
func (r *SDLRenderer) SetCache(cache TileCache) { r.cache = cache }

// Running reports whether the window is still open, mirroring c64.C64's
// running flag so a driving main loop knows when to stop.
func (r *SDLRenderer) Running() bool { return r.running }

// Close tears down the SDL window, renderer, and texture.
func (r *SDLRenderer) Close() {
	if r.texture != nil {
		r.texture.Destroy()
	}
	if r.renderer != nil {
		r.renderer.Destroy()
	}
	if r.window != nil {
		r.window.Destroy()
	}
	sdl.Quit()
}
