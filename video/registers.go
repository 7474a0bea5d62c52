package video

import "github.com/dmglib/gbvideo/host"

// Memory-mapped register addresses the core reads or writes directly.
const (
	regLCDC uint16 = 0xFF40
	regSTAT uint16 = 0xFF41
	regSCY  uint16 = 0xFF42
	regSCX  uint16 = 0xFF43
	regLY   uint16 = 0xFF44
	regLYC  uint16 = 0xFF45
	regBGP  uint16 = 0xFF47
	regOBP0 uint16 = 0xFF48
	regOBP1 uint16 = 0xFF49
	regBCPS uint16 = 0xFF68
	regBCPD uint16 = 0xFF69
	regOCPS uint16 = 0xFF6A
	regOCPD uint16 = 0xFF6B
)

// LCDC (0xFF40) bit masks.
const (
	LCDCEnable  uint8 = 1 << 7
	LCDCObjSize uint8 = 1 << 2
)

// STAT (0xFF41) bit masks.
const (
	StatModeMask    uint8 = 0x03
	StatCoincidence uint8 = 1 << 2
	StatHBlankIRQ   uint8 = 1 << 3
	StatVBlankIRQ   uint8 = 1 << 4
	StatOAMIRQ      uint8 = 1 << 5
	StatLYCIRQ      uint8 = 1 << 6
)

// WriteLCDC handles a write to the LCDC register. LCDC itself lives in the
// IO array, which is where both the enable-edge detection and the OAM
// scanner read it back from. On the OFF->ON edge it re-arms mode 2 with
// the empirical MODE2_LEN-5 fudge and backdates eventDiff to the CPU's
// current cycle count so the dot clock lines up; on the ON->OFF edge it
// parks the machine at ly=0, mode=0 with the mode timer disarmed. A write
// that isn't an edge just stores the byte.
func (c *Core) WriteLCDC(value uint8) {
	old := c.host.IO(regLCDC)
	c.host.SetIO(regLCDC, value)
	switch {
	case old&LCDCEnable == 0 && value&LCDCEnable != 0:
		c.mode = ModeOAM
		c.nextMode = Mode2Len - 5
		c.nextEvent = c.nextMode
		shift := c.doubleSpeedShift()
		c.eventDiff = -c.host.CPUCycles() >> shift
		c.ly = 0
		c.host.SetIO(regLY, 0)
		c.stat = setMode(c.stat, ModeOAM)
		lyc := c.host.IO(regLYC)
		c.setLYCBit(lyc == c.ly)
		if c.stat&StatLYCIRQ != 0 && lyc == c.ly {
			c.host.RaiseIRQ(host.IRQLCDSTAT)
		}
		c.host.SetIO(regSTAT, c.stat)

		cpuDeadline := c.host.CPUCycles() + (c.nextEvent << shift)
		c.host.LowerNextEvent(cpuDeadline)

	case old&LCDCEnable != 0 && value&LCDCEnable == 0:
		c.mode = ModeHBlank
		c.nextMode = timerInfinite
		c.nextEvent = c.nextFrame
		c.stat = setMode(c.stat, c.mode)
		c.host.SetIO(regSTAT, c.stat)
		c.ly = 0
		c.host.SetIO(regLY, 0)
	}
}

// WriteSTAT stores the writable bits 3-6 of STAT, leaving the read-only
// mode/LYC bits untouched. On DMG, any STAT write made while in mode 1
// unconditionally raises LCDSTAT — a documented hardware quirk.
func (c *Core) WriteSTAT(value uint8) {
	c.stat = (c.stat & 0x07) | (value & 0x78)
	if c.host.Model() == host.ModelDMG && c.mode == ModeVBlank {
		c.host.RaiseIRQ(host.IRQLCDSTAT)
	}
	c.host.SetIO(regSTAT, c.stat)
}

// WriteLYC stores the LYC register and, if the write lands during mode 2,
// immediately re-evaluates the coincidence flag. Outside mode 2 the new
// value only takes effect at the next LY change.
func (c *Core) WriteLYC(value uint8) {
	if c.mode == ModeOAM {
		c.setLYCBit(value == c.ly)
		if c.stat&StatLYCIRQ != 0 && value == c.ly {
			c.host.RaiseIRQ(host.IRQLCDSTAT)
		}
		c.host.SetIO(regSTAT, c.stat)
	}
	c.host.SetIO(regLYC, value)
}
