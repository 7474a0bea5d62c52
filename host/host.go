// Package host declares the collaborator interface the video core uses to
// reach the rest of the system: CPU cycle counts, the memory-mapped IO
// array, interrupt delivery, HDMA state, cartridge rotation sensors, and
// frame synchronization. The core never holds a pointer to the enclosing
// system directly; it is handed a Host the way c64.CIA is handed an IRQ
// callback instead of a pointer back into c64.C64.
package host

// Model selects DMG or CGB register and palette semantics.
type Model uint8

const (
	ModelDMG Model = iota
	ModelCGB
)

// IF register bit indices for the two interrupt lines the video core can
// raise.
const (
	IRQVBlank  uint8 = 0
	IRQLCDSTAT uint8 = 1
)

// ExecFetch is the CPU execution-state value meaning "about to fetch the
// next opcode" — the only phase the frame-end tick is allowed to land on.
const ExecFetch = 0

// Host is the narrow set of host-system operations the video core needs.
// Implementations own the CPU, the IO array, and the interrupt flag
// register; the core only calls through this interface.
type Host interface {
	// CPUCycles returns the host CPU's running cycle counter.
	CPUCycles() int32
	// DoubleSpeed reports whether the CGB double-speed mode is active.
	DoubleSpeed() bool
	// ExecutionState reports the CPU's current micro-op phase, used to
	// align the frame-end tick to a fetch cycle.
	ExecutionState() int

	// IO reads a memory-mapped IO register byte.
	IO(addr uint16) uint8
	// SetIO writes a memory-mapped IO register byte.
	SetIO(addr uint16, v uint8)

	// RaiseIRQ sets the named IF bit and notifies the CPU.
	RaiseIRQ(bit uint8)

	// Model reports whether the host is running in DMG or CGB mode.
	Model() Model

	// HDMAActive reports whether a general-purpose or HBlank HDMA
	// transfer has been armed.
	HDMAActive() bool
	// HDMA5 returns the current HDMA5 control register value.
	HDMA5() uint8
	// SetHDMARemaining sets the number of bytes left in the current
	// HBlank HDMA burst.
	SetHDMARemaining(n uint8)
	// SetHDMANext records the CPU cycle count at which the next HDMA
	// burst should run.
	SetHDMANext(cycles int32)

	// SampleRotation polls an attached MBC7 rotation sensor, if any.
	SampleRotation()

	// StreamFrame delivers a finished frame to an attached video stream
	// sink, if any.
	StreamFrame(stride int, pixels []uint16)
	// PostFrame blocks on the frame-pacing sync primitive.
	PostFrame()
	// FrameStarted and FrameEnded notify an observing thread of frame
	// boundaries.
	FrameStarted()
	FrameEnded()

	// LowerNextEvent asks the CPU to wake no later than the given cycle
	// count, used when enabling the LCD schedules an event sooner than
	// the CPU's own next deadline.
	LowerNextEvent(cpuCycles int32)
}
