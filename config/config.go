// Package config parses the command-line flags shared by the gbvideo demo
// and the gbvmonitor TUI, mirroring how the teacher corpus's cmd tools
// (c64emu, monitor) take their setup from flag.String/flag.Bool rather than
// a config file or environment variables.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/dmglib/gbvideo/host"
)

// Config holds the resolved settings for a run of either command. Model is
// only valid after Resolve has run.
type Config struct {
	Model       host.Model
	DoubleSpeed bool
	Frameskip   int32
	Scale       int
	PatternFile string

	modelFlag     *string
	frameskipFlag *int
}

// Register binds Config's fields to flags on fs. Call fs.Parse, then
// Resolve, before reading Model.
func Register(fs *flag.FlagSet) *Config {
	c := &Config{}
	c.modelFlag = fs.String("model", "dmg", "hardware model: dmg or cgb")
	fs.BoolVar(&c.DoubleSpeed, "double-speed", false, "run the CGB double-speed dot clock")
	c.frameskipFlag = fs.Int("frameskip", 0, "render 1 of every N+1 frames")
	fs.IntVar(&c.Scale, "scale", 3, "SDL window scale factor")
	fs.StringVar(&c.PatternFile, "pattern", "", "optional serialized video-core snapshot to load before running")
	return c
}

// Resolve finalizes Config after fs.Parse has been called, validating the
// model flag and copying the frameskip count.
func (c *Config) Resolve() error {
	switch strings.ToLower(*c.modelFlag) {
	case "dmg":
		c.Model = host.ModelDMG
	case "cgb":
		c.Model = host.ModelCGB
	default:
		return fmt.Errorf("unknown model %q: want dmg or cgb", *c.modelFlag)
	}
	c.Frameskip = int32(*c.frameskipFlag)
	return nil
}
