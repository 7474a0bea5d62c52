package video

import "github.com/dmglib/gbvideo/render"

// Reset maps fresh VRAM (discarding any previous contents), zeroes OAM and
// palette RAM, re-initializes the renderer (Deinit then Init), and parks the
// timing state machine disarmed at ly=0, mode=1 — matching GBVideoReset,
// which leaves the machine in VBlank until the first LCDC enable edge
// arms mode 2.
func (c *Core) Reset() {
	c.ly = 0
	c.x = 0
	c.mode = ModeVBlank
	c.stat = 1

	c.nextEvent = timerInfinite
	c.eventDiff = 0
	c.nextMode = timerInfinite
	c.dotCounter = dotDisarmed
	c.nextFrame = timerInfinite

	c.frameCounter = 0
	c.frameskipCounter = 0

	c.vram = [2][0x2000]uint8{}
	c.SwitchBank(0)
	c.oam = [160]uint8{}
	c.palette = [64]uint16{}

	c.renderer.Deinit()
	c.renderer.Init(c.host.Model())
}

// Deinit returns the core to the dummy renderer. VRAM is stored inline in
// the Core and is left as it is.
func (c *Core) Deinit() {
	c.AssociateRenderer(render.NewDummy())
}

// AssociateRenderer swaps in a new renderer, preserving any tile cache the
// previous renderer had attached.
func (c *Core) AssociateRenderer(r render.Renderer) {
	c.renderer.Deinit()
	if cache := c.renderer.Cache(); cache != nil {
		r.SetCache(cache)
	}
	c.renderer = r
	c.renderer.Init(c.host.Model())
}

// Renderer returns the currently associated renderer.
func (c *Core) Renderer() render.Renderer { return c.renderer }
