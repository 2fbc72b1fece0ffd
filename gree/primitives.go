package gree

import "github.com/hatstand/greeremote/ir"

// Primitives are the fixed symbols a frame is assembled from.
type Primitives struct {
	Leading    ir.Symbol
	Terminator ir.Symbol
	ShortGap   ir.Symbol
	LongGap    [2]ir.Symbol
	// Suffix is the constant 010 tail of the first and third data groups.
	Suffix [3]ir.Symbol
	Bit0   ir.Symbol
	Bit1   ir.Symbol
}

func markSpace(p Pulse) ir.Symbol {
	return ir.Symbol{
		Level0:    ir.High,
		Duration0: uint16(p.Mark),
		Level1:    ir.Low,
		Duration1: uint16(p.Space),
	}
}

// BuildPrimitives assembles the frame symbols from a timing table. The
// table must already have been checked to fit 15 bit phases.
func BuildPrimitives(t Timing) Primitives {
	bit0 := markSpace(t.Bit0)
	bit1 := markSpace(t.Bit1)
	return Primitives{
		Leading: markSpace(t.Leading),
		Terminator: ir.Symbol{
			Level0:    ir.High,
			Duration0: uint16(t.TerminatorMark),
			Level1:    ir.Low,
			Duration1: EndOfSequence,
		},
		ShortGap: markSpace(t.ShortGap),
		LongGap: [2]ir.Symbol{
			markSpace(t.LongGap),
			{
				Level0:    ir.Low,
				Duration0: uint16(t.LongGapFiller),
				Level1:    ir.Low,
				Duration1: uint16(t.LongGapFiller),
			},
		},
		Suffix: [3]ir.Symbol{bit0, bit1, bit0},
		Bit0:   bit0,
		Bit1:   bit1,
	}
}
