package gree

import (
	"github.com/hatstand/greeremote/ir"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is the cause of every construction failure.
	ErrInvalidConfig = errors.New("gree: invalid encoder config")
	// ErrClosed is returned when closing an encoder twice.
	ErrClosed = errors.New("gree: encoder closed")
)

// Config configures an Encoder.
type Config struct {
	// Resolution is the transmitter tick rate in Hz.
	Resolution uint32
}

func DefaultConfig() Config {
	return Config{Resolution: DefaultResolution}
}

// Timing returns the protocol timing table in ticks, or an error if any
// phase would be zero or exceed the peripheral's 15 bit duration field.
func (c Config) Timing() (Timing, error) {
	if c.Resolution == 0 {
		return Timing{}, errors.Wrap(ErrInvalidConfig, "resolution is zero")
	}
	t := Microseconds.Scaled(c.Resolution)
	for _, d := range t.durations() {
		if d == 0 || d > ir.MaxDuration {
			return Timing{}, errors.Wrapf(ErrInvalidConfig,
				"resolution %dHz gives a phase of %d ticks, outside 1-%d", c.Resolution, d, ir.MaxDuration)
		}
	}
	return t, nil
}

// Step is a position in the frame.
type Step int

const (
	StepLeading1 Step = iota
	StepData1Bits
	StepData1Suffix
	StepShortGap1
	StepData2Bits
	StepLongGap
	StepLeading2
	StepData3Bits
	StepData3Suffix
	StepShortGap2
	StepData4Bits
	StepTerminator
)

var stepNames = [...]string{
	StepLeading1:    "leading1",
	StepData1Bits:   "data1",
	StepData1Suffix: "data1-suffix",
	StepShortGap1:   "short-gap1",
	StepData2Bits:   "data2",
	StepLongGap:     "long-gap",
	StepLeading2:    "leading2",
	StepData3Bits:   "data3",
	StepData3Suffix: "data3-suffix",
	StepShortGap2:   "short-gap2",
	StepData4Bits:   "data4",
	StepTerminator:  "terminator",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Encoder converts ScanCodes into Gree frames. It may fill a destination
// buffer that is smaller than a frame; the next call resumes where the
// previous one stopped.
//
// An Encoder belongs to a single transmitter. It is not safe for
// concurrent use and the ScanCode must not change while a frame is partly
// encoded.
type Encoder struct {
	bytes *ir.BytesEncoder
	copy  *ir.CopyEncoder
	prims Primitives

	step    Step
	// done is set once a frame completes and cleared by Reset.
	done    bool
	scratch [4]byte
}

func NewEncoder(config Config) (*Encoder, error) {
	t, err := config.Timing()
	if err != nil {
		return nil, err
	}
	prims := BuildPrimitives(t)
	bytes, err := ir.NewBytesEncoder(ir.BytesEncoderConfig{
		Bit0: prims.Bit0,
		Bit1: prims.Bit1,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "bytes encoder: %v", err)
	}
	return &Encoder{
		bytes: bytes,
		copy:  ir.NewCopyEncoder(),
		prims: prims,
	}, nil
}

// Primitives returns the fixed symbols the encoder was built with.
func (e *Encoder) Primitives() Primitives {
	return e.prims
}

// Closed reports whether Close has been called.
func (e *Encoder) Closed() bool {
	return e.bytes == nil
}

// Step returns the step the next Encode call starts in.
func (e *Encoder) Step() Step {
	return e.step
}

// Encode writes as much of the frame for code into dst as fits.
//
// StateComplete is returned once the terminator has been written. Reset must
// be called before the next frame; encoding again without it panics, as does
// encoding with a nil code or after Close. StateBufferFull means a step
// could not finish and Encode must be called again. Neither flag means dst
// filled exactly at a step boundary with steps remaining, and Encode must
// also be called again. StateBufferFull always wins over StateComplete.
func (e *Encoder) Encode(dst []ir.Symbol, code *ScanCode) (int, ir.State) {
	if e.bytes == nil {
		panic("gree: Encode on closed Encoder")
	}
	if code == nil {
		panic("gree: Encode with nil ScanCode")
	}
	if e.done {
		panic("gree: Encode after a complete frame without Reset")
	}
	written := 0
	for {
		n, state := e.encodeStep(dst[written:], code)
		written += n
		if state.BufferFull() {
			return written, ir.StateBufferFull
		}
		if e.step == StepTerminator {
			e.step = StepLeading1
			e.done = true
			return written, ir.StateComplete
		}
		e.step++
		if written == len(dst) {
			return written, 0
		}
	}
}

func (e *Encoder) encodeStep(dst []ir.Symbol, code *ScanCode) (int, ir.State) {
	switch e.step {
	case StepLeading1, StepLeading2:
		return e.copy.Encode(dst, []ir.Symbol{e.prims.Leading})
	case StepData1Bits:
		return e.bytes.Encode(dst, fieldBytes(&e.scratch, code.Data1))
	case StepData1Suffix, StepData3Suffix:
		return e.copy.Encode(dst, e.prims.Suffix[:])
	case StepShortGap1, StepShortGap2:
		return e.copy.Encode(dst, []ir.Symbol{e.prims.ShortGap})
	case StepData2Bits:
		return e.bytes.Encode(dst, fieldBytes(&e.scratch, code.Data2))
	case StepLongGap:
		return e.copy.Encode(dst, e.prims.LongGap[:])
	case StepData3Bits:
		return e.bytes.Encode(dst, fieldBytes(&e.scratch, code.Data3))
	case StepData4Bits:
		return e.bytes.Encode(dst, fieldBytes(&e.scratch, code.Data4))
	case StepTerminator:
		return e.copy.Encode(dst, []ir.Symbol{e.prims.Terminator})
	}
	panic("gree: invalid step " + e.step.String())
}

// EncodeFrame returns the whole frame for code. The encoder is reset before
// and after.
func (e *Encoder) EncodeFrame(code *ScanCode) []ir.Symbol {
	e.Reset()
	defer e.Reset()
	frame := make([]ir.Symbol, SymbolsPerFrame)
	n, _ := e.Encode(frame, code)
	return frame[:n]
}

// Reset abandons any partly encoded frame.
func (e *Encoder) Reset() {
	if e.bytes != nil {
		e.bytes.Reset()
		e.copy.Reset()
	}
	e.step = StepLeading1
	e.done = false
}

// Close releases the sub-encoders. The encoder cannot be used afterwards.
func (e *Encoder) Close() error {
	if e.bytes == nil {
		return ErrClosed
	}
	e.bytes = nil
	e.copy = nil
	e.step = StepLeading1
	e.done = false
	return nil
}
