package ir

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSymbolWord(t *testing.T) {
	Convey("Packs levels and durations", t, func() {
		s := Symbol{Level0: High, Duration0: 660, Level1: Low, Duration1: 1680}
		So(s.Word(), ShouldEqual, uint32(660)|1<<15|uint32(1680)<<16)
		So(SymbolFromWord(s.Word()), ShouldResemble, s)
	})

	Convey("Round trips the largest durations", t, func() {
		s := Symbol{Level0: Low, Duration0: MaxDuration, Level1: High, Duration1: MaxDuration}
		So(SymbolFromWord(s.Word()), ShouldResemble, s)
	})
}

func TestSymbolValidate(t *testing.T) {
	Convey("Accepts 15 bit durations", t, func() {
		So(Symbol{High, MaxDuration, Low, MaxDuration}.Validate(), ShouldBeNil)
	})
	Convey("Rejects long durations", t, func() {
		So(Symbol{High, MaxDuration + 1, Low, 0}.Validate(), ShouldNotBeNil)
		So(Symbol{High, 0, Low, 40000}.Validate(), ShouldNotBeNil)
	})
	Convey("Rejects bad levels", t, func() {
		So(Symbol{Level0: 2}.Validate(), ShouldNotBeNil)
	})
}

func TestStateString(t *testing.T) {
	Convey("State", t, func() {
		So(State(0).String(), ShouldEqual, "none")
		So(StateComplete.String(), ShouldEqual, "complete")
		So(StateBufferFull.String(), ShouldEqual, "buffer-full")
		So((StateComplete | StateBufferFull).String(), ShouldEqual, "complete|buffer-full")
	})
}
