package host

// RefHost is a minimal, memory-backed Host used by the video package's own
// tests and by the example commands. It plays the role the teacher corpus
// gives to small in-test fixtures (gintendo's testBus) and to
// memory.Manager's flat register array, scaled down to the handful of
// fields the video core actually touches.
type RefHost struct {
	io [0x0100]uint8 // offsets from 0xFF00

	model       Model
	doubleSpeed bool
	cpuCycles   int32
	execState   int

	ifReg uint8

	hdmaActive    bool
	hdmaRemaining uint8
	hdmaNext      int32

	RotationSamples int
	FrameStartedN   int
	FrameEndedN     int
	PostFrameN      int
	StreamedN       int
	RaisedIRQs      []uint8
	Lowered         []int32
	LastStreamed    []uint16
}

// NewRefHost creates a RefHost for the given model, IO array zeroed.
func NewRefHost(model Model) *RefHost {
	return &RefHost{model: model}
}

func (h *RefHost) IO(addr uint16) uint8        { return h.io[addr&0xFF] }
func (h *RefHost) SetIO(addr uint16, v uint8)  { h.io[addr&0xFF] = v }
func (h *RefHost) CPUCycles() int32            { return h.cpuCycles }
func (h *RefHost) SetCPUCycles(c int32)        { h.cpuCycles = c }
func (h *RefHost) DoubleSpeed() bool           { return h.doubleSpeed }
func (h *RefHost) SetDoubleSpeed(v bool)       { h.doubleSpeed = v }
func (h *RefHost) ExecutionState() int         { return h.execState }
func (h *RefHost) SetExecutionState(s int)     { h.execState = s }
func (h *RefHost) Model() Model                { return h.model }

func (h *RefHost) RaiseIRQ(bit uint8) {
	h.ifReg |= 1 << bit
	h.io[0xFF0F&0xFF] = h.ifReg
	h.RaisedIRQs = append(h.RaisedIRQs, bit)
}

// IF returns the current interrupt-flag byte, for test assertions.
func (h *RefHost) IF() uint8 { return h.ifReg }

// ClearIF mimics the CPU's interrupt dispatcher consuming a flag bit.
func (h *RefHost) ClearIF(bit uint8) {
	h.ifReg &^= 1 << bit
	h.io[0xFF0F&0xFF] = h.ifReg
}

func (h *RefHost) HDMAActive() bool             { return h.hdmaActive }
func (h *RefHost) SetHDMAActive(v bool)         { h.hdmaActive = v }
func (h *RefHost) HDMA5() uint8                 { return h.io[0xFF55&0xFF] }
func (h *RefHost) SetHDMARemaining(n uint8)     { h.hdmaRemaining = n }
func (h *RefHost) SetHDMANext(cycles int32)     { h.hdmaNext = cycles }
func (h *RefHost) HDMARemaining() uint8         { return h.hdmaRemaining }
func (h *RefHost) HDMANext() int32              { return h.hdmaNext }

func (h *RefHost) SampleRotation() { h.RotationSamples++ }

func (h *RefHost) StreamFrame(stride int, pixels []uint16) {
	h.StreamedN++
	h.LastStreamed = append(h.LastStreamed[:0], pixels...)
}

func (h *RefHost) PostFrame()    { h.PostFrameN++ }
func (h *RefHost) FrameStarted() { h.FrameStartedN++ }
func (h *RefHost) FrameEnded()   { h.FrameEndedN++ }

func (h *RefHost) LowerNextEvent(cpuCycles int32) {
	h.Lowered = append(h.Lowered, cpuCycles)
}
