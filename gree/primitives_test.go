package gree

import (
	"testing"

	"github.com/hatstand/greeremote/ir"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrimitives(t *testing.T) {
	timing, err := DefaultConfig().Timing()
	if err != nil {
		t.Fatal(err)
	}
	p := BuildPrimitives(timing)

	Convey("Microsecond table", t, func() {
		So(p.Leading, ShouldResemble, ir.Symbol{Level0: ir.High, Duration0: 9000, Level1: ir.Low, Duration1: 4500})
		So(p.Bit0, ShouldResemble, ir.Symbol{Level0: ir.High, Duration0: 660, Level1: ir.Low, Duration1: 540})
		So(p.Bit1, ShouldResemble, ir.Symbol{Level0: ir.High, Duration0: 660, Level1: ir.Low, Duration1: 1680})
		So(p.ShortGap, ShouldResemble, ir.Symbol{Level0: ir.High, Duration0: 660, Level1: ir.Low, Duration1: 20000})
		So(p.Terminator, ShouldResemble, ir.Symbol{Level0: ir.High, Duration0: 660, Level1: ir.Low, Duration1: EndOfSequence})
	})

	Convey("Suffix is 010", t, func() {
		So(p.Suffix, ShouldResemble, [3]ir.Symbol{p.Bit0, p.Bit1, p.Bit0})
	})

	Convey("Long gap is one 40ms space split over two symbols", t, func() {
		first, second := p.LongGap[0], p.LongGap[1]
		So(first.Level0, ShouldEqual, ir.High)
		So(first.Duration0, ShouldEqual, uint16(660))
		So(first.Level1, ShouldEqual, ir.Low)
		So(second.Level0, ShouldEqual, ir.Low)
		So(second.Level1, ShouldEqual, ir.Low)
		So(uint32(first.Duration1)+uint32(second.Duration0)+uint32(second.Duration1), ShouldEqual, uint32(LongGapSpace))
		So(LongGapSpace, ShouldBeGreaterThan, ir.MaxDuration)
	})

	Convey("Every symbol fits the peripheral", t, func() {
		all := []ir.Symbol{p.Leading, p.Terminator, p.ShortGap, p.Bit0, p.Bit1}
		all = append(all, p.LongGap[:]...)
		all = append(all, p.Suffix[:]...)
		for _, s := range all {
			So(s.Validate(), ShouldBeNil)
		}
	})
}
