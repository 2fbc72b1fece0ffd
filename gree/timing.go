// Package gree encodes Gree air conditioner remote commands into infrared
// symbols.
//
// A command is a ScanCode of four 32 bit fields. It is sent as two halves,
// each a leading code followed by a 35 bit group (32 data bits plus the
// fixed tail 010), a short connector, and 32 more data bits. The halves are
// joined by a long connector and the frame ends with a terminator:
//
//	L d1 010 S d2 G L d3 010 S d4 T
//
// Timings below are as seen by the transmitter, with the carrier on during
// the first phase of every symbol.
package gree

const (
	// CarrierFrequency is the IR modulation frequency in Hz.
	CarrierFrequency = 38000
	// CarrierDutyCycle is the modulation duty cycle in percent.
	CarrierDutyCycle = 33

	// DefaultResolution gives one tick per microsecond.
	DefaultResolution = 1000000

	// EndOfSequence is the terminator's low phase. It holds the line idle
	// until the next transmission and is never scaled by resolution.
	EndOfSequence = 0x7fff

	// SymbolsPerFrame is the length of every encoded ScanCode.
	SymbolsPerFrame = 141
)

// Microsecond timings.
const (
	leadingMark  = 9000
	leadingSpace = 4500

	bitMark       = 660
	bitZeroSpace  = 540
	bitOneSpace   = 1680
	shortGapMark  = 660
	shortGapSpace = 20000

	// The long connector is 660us on and 40ms off. 40ms does not fit a
	// single 15 bit phase so it is sent as 20ms, then two 10ms low phases.
	longGapMark   = 660
	longGapSpace  = 20000
	longGapFiller = 10000
	LongGapSpace  = longGapSpace + 2*longGapFiller

	terminatorMark = 660
)

// Pulse is one mark/space pair in ticks.
type Pulse struct {
	Mark  uint32
	Space uint32
}

// Timing is the protocol timing table expressed in ticks of some resolution.
type Timing struct {
	Leading  Pulse
	Bit0     Pulse
	Bit1     Pulse
	ShortGap Pulse
	// LongGap is the 20ms part of the long connector; LongGapFiller is the
	// length of each of the two trailing low phases.
	LongGap        Pulse
	LongGapFiller  uint32
	TerminatorMark uint32
}

// Microseconds is the timing table at one tick per microsecond.
var Microseconds = Timing{
	Leading:        Pulse{leadingMark, leadingSpace},
	Bit0:           Pulse{bitMark, bitZeroSpace},
	Bit1:           Pulse{bitMark, bitOneSpace},
	ShortGap:       Pulse{shortGapMark, shortGapSpace},
	LongGap:        Pulse{longGapMark, longGapSpace},
	LongGapFiller:  longGapFiller,
	TerminatorMark: terminatorMark,
}

func scale(us uint32, resolution uint32) uint32 {
	return uint32(uint64(us) * uint64(resolution) / 1000000)
}

// Scaled returns the table converted from microseconds to ticks at the
// given resolution in Hz.
func (t Timing) Scaled(resolution uint32) Timing {
	p := func(in Pulse) Pulse {
		return Pulse{scale(in.Mark, resolution), scale(in.Space, resolution)}
	}
	return Timing{
		Leading:        p(t.Leading),
		Bit0:           p(t.Bit0),
		Bit1:           p(t.Bit1),
		ShortGap:       p(t.ShortGap),
		LongGap:        p(t.LongGap),
		LongGapFiller:  scale(t.LongGapFiller, resolution),
		TerminatorMark: scale(t.TerminatorMark, resolution),
	}
}

// durations lists every tick count that ends up in a single symbol phase.
func (t Timing) durations() []uint32 {
	return []uint32{
		t.Leading.Mark, t.Leading.Space,
		t.Bit0.Mark, t.Bit0.Space,
		t.Bit1.Mark, t.Bit1.Space,
		t.ShortGap.Mark, t.ShortGap.Space,
		t.LongGap.Mark, t.LongGap.Space,
		t.LongGapFiller,
		t.TerminatorMark,
	}
}
