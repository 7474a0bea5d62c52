// Package video implements the DMG/CGB LCD timing core: a CPU-cycle-driven
// PPU mode state machine, LCD register codecs, OAM sprite scanning, the
// DMG/CGB palette engines, and a fixed-layout serialization format. It is a
// direct generalization of the c64/vic and c64/cia chips of the 6502/C64
// emulator this repository grew out of (github.com/newhook/6502):
// vic.VIC.Update and cia.CIA.Update both accumulate an elapsed cycle delta
// and fire on crossing a threshold; Core.ProcessEvents follows the same
// shape but returns the next deadline instead of an event value, because
// its contract is "tell me when to call again" rather than "tell me what
// happened" — interrupts and renderer callbacks are delivered synchronously
// instead.
package video

import (
	"math"

	"github.com/dmglib/gbvideo/host"
	"github.com/dmglib/gbvideo/render"
)

// Mode is one of the four PPU modes a scanline cycles through.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

// Sentinel timer values. timerInfinite marks a dormant scheduler scalar;
// dotDisarmed marks a dot-clock counter not currently tracking mode 3.
// Arithmetic on either must be guarded — see ProcessEvents and processDots.
const (
	timerInfinite int32 = math.MaxInt32
	dotDisarmed   int32 = math.MinInt32
)

// Timing constants, in dots, at 1x CPU speed. VPix and VTotal are counted in
// scanlines rather than dots.
const (
	HorizLen     int32 = 456
	TotalLen     int32 = 70224
	VPix         uint8 = 144
	VTotal       uint8 = 153
	Mode2Len     int32 = 80
	Mode3LenBase int32 = 172
	Mode0LenBase int32 = 204
)

// Core owns VRAM, OAM, palette RAM, and the scanline timing state machine.
// It holds a borrowed host.Host collaborator rather than a pointer back
// into the enclosing system, and a borrowed render.Renderer it never calls
// concurrently with itself.
type Core struct {
	vram             [2][0x2000]uint8
	vramCurrentBank  uint8
	oam              [160]uint8
	palette          [64]uint16
	bcpIndex         uint8
	bcpIncrement     bool
	ocpIndex         uint8
	ocpIncrement     bool

	ly   uint8
	x    uint8
	mode Mode
	stat uint8

	nextEvent   int32
	nextMode    int32
	nextFrame   int32
	eventDiff   int32
	dotCounter  int32

	frameCounter     int32
	frameskip        int32
	frameskipCounter int32

	objThisLine [10]render.Sprite
	objMax      int

	renderer render.Renderer
	host     host.Host
}

// NewCore constructs a Core bound to host h, with VRAM unmapped and the
// dummy renderer associated, mirroring GBVideoInit.
func NewCore(h host.Host) *Core {
	c := &Core{
		host:       h,
		renderer:   render.NewDummy(),
		nextEvent:  timerInfinite,
		nextMode:   timerInfinite,
		nextFrame:  timerInfinite,
		dotCounter: dotDisarmed,
	}
	return c
}

// Frameskip reports the configured frameskip (N of every N+1 frames have
// their pixel production suppressed).
func (c *Core) Frameskip() int32 { return c.frameskip }

// SetFrameskip configures frameskip; it takes effect from the next frame
// boundary onward, matching how frameskipCounter is only reloaded there.
func (c *Core) SetFrameskip(n int32) { c.frameskip = n }

// LY returns the current scanline.
func (c *Core) LY() uint8 { return c.ly }

// CurrentMode returns the current PPU mode.
func (c *Core) CurrentMode() Mode { return c.mode }

// STAT returns the current LCD status register value.
func (c *Core) STAT() uint8 { return c.stat }

// X returns the current dot within mode 3.
func (c *Core) X() uint8 { return c.x }

// FrameCounter returns the number of completed frames.
func (c *Core) FrameCounter() int32 { return c.frameCounter }

// ObjThisLine returns the sprites selected for the current scanline.
func (c *Core) ObjThisLine() []render.Sprite { return c.objThisLine[:c.objMax] }

func setMode(stat uint8, mode Mode) uint8 {
	return (stat &^ StatModeMask) | uint8(mode)
}

func (c *Core) setLYCBit(equal bool) {
	if equal {
		c.stat |= StatCoincidence
	} else {
		c.stat &^= StatCoincidence
	}
}

func (c *Core) doubleSpeedShift() uint {
	if c.host.DoubleSpeed() {
		return 1
	}
	return 0
}

// ProcessEvents advances the timing state machine by the given CPU-cycle
// delta and returns the number of cycles until the core must be called
// again. It never returns an error: its contract is total.
func (c *Core) ProcessEvents(cycles int32) int32 {
	c.eventDiff += cycles
	if c.nextEvent != timerInfinite {
		c.nextEvent -= cycles
	}
	if c.nextEvent > 0 {
		return c.nextEvent
	}

	if c.nextMode != timerInfinite {
		c.nextMode -= c.eventDiff
	}
	if c.nextFrame != timerInfinite {
		c.nextFrame -= c.eventDiff
	}
	c.nextEvent = timerInfinite

	c.processDots()

	if c.nextMode <= 0 {
		c.handleModeEvent()
	}
	if c.nextFrame <= 0 {
		c.handleFrameEvent()
	}
	if c.nextMode < c.nextEvent {
		c.nextEvent = c.nextMode
	}
	c.eventDiff = 0
	return c.nextEvent
}

func (c *Core) handleModeEvent() {
	lyc := c.host.IO(regLYC)
	switch c.mode {
	case ModeHBlank:
		if c.frameskipCounter <= 0 {
			c.renderer.FinishScanline(c.ly)
		}
		c.ly++
		c.host.SetIO(regLY, c.ly)
		c.setLYCBit(lyc == c.ly)
		if c.ly < VPix {
			c.nextMode = Mode2Len + int32(c.host.IO(regSCX)&7)
			c.mode = ModeOAM
			if c.stat&StatHBlankIRQ == 0 && c.stat&StatOAMIRQ != 0 {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
		} else {
			c.nextMode = HorizLen
			c.mode = ModeVBlank
			if c.nextFrame != 0 {
				c.nextFrame = 0
			}
			if c.stat&StatVBlankIRQ != 0 || c.stat&StatOAMIRQ != 0 {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
			c.host.RaiseIRQ(host.IRQVBlank)
			c.host.FrameEnded()
		}
		if c.stat&StatLYCIRQ != 0 && lyc == c.ly {
			c.host.RaiseIRQ(host.IRQLCDSTAT)
		}

	case ModeVBlank:
		c.ly++
		switch {
		case c.ly == VTotal+1:
			c.ly = 0
			c.host.SetIO(regLY, c.ly)
			c.nextMode = Mode2Len + int32(c.host.IO(regSCX)&7)
			c.mode = ModeOAM
			if c.stat&StatOAMIRQ != 0 {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
			c.renderer.FinishFrame()
			c.host.SampleRotation()
		case c.ly == VTotal:
			c.host.SetIO(regLY, 0)
			c.nextMode = HorizLen - 8
			c.setLYCBit(lyc == c.host.IO(regLY))
			if c.stat&StatLYCIRQ != 0 && lyc == c.host.IO(regLY) {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
		case c.ly == VTotal-1:
			c.host.SetIO(regLY, c.ly)
			c.nextMode = 8
			c.setLYCBit(lyc == c.host.IO(regLY))
			if c.stat&StatLYCIRQ != 0 && lyc == c.host.IO(regLY) {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
		default:
			c.host.SetIO(regLY, c.ly)
			c.nextMode = HorizLen
			c.setLYCBit(lyc == c.host.IO(regLY))
			if c.stat&StatLYCIRQ != 0 && lyc == c.host.IO(regLY) {
				c.host.RaiseIRQ(host.IRQLCDSTAT)
			}
		}

	case ModeOAM:
		c.scanOAM(c.ly)
		c.dotCounter = 0
		c.nextEvent = HorizLen
		c.x = 0
		c.nextMode = Mode3LenBase + int32(c.objMax)*11 - int32(c.host.IO(regSCX)&7)
		c.mode = ModeDraw

	case ModeDraw:
		c.nextMode = Mode0LenBase - int32(c.objMax)*11
		c.mode = ModeHBlank
		if c.stat&StatHBlankIRQ != 0 {
			c.host.RaiseIRQ(host.IRQLCDSTAT)
		}
		if c.ly < VPix && c.host.HDMAActive() && c.host.HDMA5() != 0xFF {
			c.host.SetHDMARemaining(0x10)
			c.host.SetHDMANext(c.host.CPUCycles())
		}
	}

	c.stat = setMode(c.stat, c.mode)
	c.host.SetIO(regSTAT, c.stat)
}

func (c *Core) handleFrameEvent() {
	if c.host.ExecutionState() != host.ExecFetch {
		c.nextFrame = 4 - ((int32(c.host.ExecutionState()) + 1) & 3)
		if c.nextFrame < c.nextEvent {
			c.nextEvent = c.nextFrame
		}
		return
	}

	c.nextFrame = TotalLen
	c.nextEvent = TotalLen

	c.frameskipCounter--
	if c.frameskipCounter < 0 {
		c.host.PostFrame()
		c.frameskipCounter = c.frameskip
	}
	c.frameCounter++

	stride, pixels := c.renderer.GetPixels()
	c.host.StreamFrame(stride, pixels)
	c.host.FrameStarted()
}
