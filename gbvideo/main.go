// Command gbvideo drives a video.Core with an SDL window, standing in for
// the rest of a Game Boy system the way c64emu stands in for the 6502 CPU
// loop around c64.C64. There is no CPU or cartridge here: LCDC is forced on
// at startup and the OAM/VRAM/palette state is either left blank or loaded
// from an optional raw snapshot file, after which the DMG BGP/OBP0/OBP1
// palettes are set to the 0xE4 mapping, so the window shows raster timing and
// sprite placement rather than a real game.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmglib/gbvideo/config"
	"github.com/dmglib/gbvideo/host"
	"github.com/dmglib/gbvideo/render"
	"github.com/dmglib/gbvideo/video"
)

// cyclesPerStep is one Game Boy machine cycle, the smallest unit the
// original hardware (and this core) schedules around.
const cyclesPerStep int32 = 4

func loadPattern(c *video.Core, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()
	if err := c.Deserialize(f); err != nil {
		return fmt.Errorf("load pattern file: %w", err)
	}
	return nil
}

func main() {
	fs := flag.NewFlagSet("gbvideo", flag.ExitOnError)
	cfg := config.Register(fs)
	fs.Parse(os.Args[1:])
	if err := cfg.Resolve(); err != nil {
		log.Fatal(err)
	}

	sdlRenderer, err := render.NewSDLRenderer(cfg.Scale)
	if err != nil {
		log.Fatal(err)
	}
	defer sdlRenderer.Close()

	h := host.NewRefHost(cfg.Model)
	h.SetDoubleSpeed(cfg.DoubleSpeed)

	core := video.NewCore(h)
	core.Reset()
	core.AssociateRenderer(sdlRenderer)
	core.SetFrameskip(cfg.Frameskip)

	if cfg.PatternFile != "" {
		if err := loadPattern(core, cfg.PatternFile); err != nil {
			log.Fatal(err)
		}
	}

	core.WriteLCDC(0x91) // LCD on, BG on, tiles/map at their default banks
	core.WriteBGP(0xE4)
	core.WriteOBP0(0xE4)
	core.WriteOBP1(0xE4)

	for sdlRenderer.Running() {
		h.SetCPUCycles(h.CPUCycles() + cyclesPerStep)
		core.ProcessEvents(cyclesPerStep)
	}
}
