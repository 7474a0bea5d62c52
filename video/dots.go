package video

import "log"

// processDots resolves however many dots have elapsed since the dot
// counter was last armed into a horizontal pixel position, and asks the
// renderer to draw the newly-covered columns. It's invoked from inside
// ProcessEvents on every event firing, which is what lets a register
// write that re-primes the schedule draw a partial scanline first: the
// renderer never has to reason about sub-mode-3 granularity itself.
func (c *Core) processDots() {
	if c.mode != ModeDraw || c.dotCounter < 0 {
		return
	}

	oldX := c.x
	shift := c.doubleSpeedShift()
	newX := c.dotCounter + c.eventDiff + (c.host.CPUCycles() >> shift)

	switch {
	case newX > 160:
		newX = 160
	case newX < 0:
		log.Printf("video: dot clock went negative")
		newX = int32(oldX)
	}

	c.x = uint8(newX)
	if newX == 160 {
		c.dotCounter = dotDisarmed
	}

	if c.frameskipCounter <= 0 {
		c.renderer.DrawRange(int(oldX), int(c.x), c.ly, c.objThisLine[:c.objMax])
	}
}
