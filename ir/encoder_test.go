package ir

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var (
	zero = Symbol{High, 660, Low, 540}
	one  = Symbol{High, 660, Low, 1680}
)

func newBytesEncoder(lsbFirst bool) *BytesEncoder {
	e, err := NewBytesEncoder(BytesEncoderConfig{Bit0: zero, Bit1: one, LSBFirst: lsbFirst})
	So(err, ShouldBeNil)
	return e
}

func TestBytesEncoder(t *testing.T) {
	Convey("MSB first", t, func() {
		e := newBytesEncoder(false)
		dst := make([]Symbol, 16)
		n, state := e.Encode(dst, []byte{0x81, 0x02})
		So(n, ShouldEqual, 16)
		So(state, ShouldEqual, StateComplete)
		So(dst[:8], ShouldResemble, []Symbol{one, zero, zero, zero, zero, zero, zero, one})
		So(dst[8:], ShouldResemble, []Symbol{zero, zero, zero, zero, zero, zero, one, zero})
	})

	Convey("LSB first", t, func() {
		e := newBytesEncoder(true)
		dst := make([]Symbol, 8)
		n, state := e.Encode(dst, []byte{0x03})
		So(n, ShouldEqual, 8)
		So(state, ShouldEqual, StateComplete)
		So(dst, ShouldResemble, []Symbol{one, one, zero, zero, zero, zero, zero, zero})
	})

	Convey("Resumes where the destination filled", t, func() {
		data := []byte{0xde, 0xad, 0xbe, 0xef}
		whole := make([]Symbol, 32)
		n, _ := newBytesEncoder(false).Encode(whole, data)
		So(n, ShouldEqual, 32)

		e := newBytesEncoder(false)
		var got []Symbol
		for _, size := range []int{3, 0, 5, 1, 11, 20} {
			dst := make([]Symbol, size)
			n, state := e.Encode(dst, data)
			got = append(got, dst[:n]...)
			if len(got) < 32 {
				So(state, ShouldEqual, StateBufferFull)
				So(n, ShouldEqual, size)
			} else {
				So(state, ShouldEqual, StateComplete)
				break
			}
		}
		So(got, ShouldResemble, whole)
	})

	Convey("Completes exactly at the end of the destination", t, func() {
		e := newBytesEncoder(false)
		n, state := e.Encode(make([]Symbol, 8), []byte{0xff})
		So(n, ShouldEqual, 8)
		So(state, ShouldEqual, StateComplete)
	})

	Convey("Reset starts from the first bit", t, func() {
		e := newBytesEncoder(false)
		e.Encode(make([]Symbol, 3), []byte{0x80})
		e.Reset()
		dst := make([]Symbol, 1)
		e.Encode(dst, []byte{0x80})
		So(dst[0], ShouldResemble, one)
	})

	Convey("Rejects invalid bit symbols", t, func() {
		_, err := NewBytesEncoder(BytesEncoderConfig{Bit0: Symbol{}, Bit1: one})
		So(err, ShouldNotBeNil)
		_, err = NewBytesEncoder(BytesEncoderConfig{Bit0: zero, Bit1: Symbol{High, 0x8000, Low, 1}})
		So(err, ShouldNotBeNil)
	})

	Convey("Panics on empty data", t, func() {
		e := newBytesEncoder(false)
		So(func() { e.Encode(make([]Symbol, 8), nil) }, ShouldPanic)
	})
}

func TestCopyEncoder(t *testing.T) {
	src := []Symbol{zero, one, zero}

	Convey("Copies everything that fits", t, func() {
		e := NewCopyEncoder()
		dst := make([]Symbol, 4)
		n, state := e.Encode(dst, src)
		So(n, ShouldEqual, 3)
		So(state, ShouldEqual, StateComplete)
		So(dst[:3], ShouldResemble, src)
	})

	Convey("Continues after a full buffer", t, func() {
		e := NewCopyEncoder()
		dst := make([]Symbol, 2)
		n, state := e.Encode(dst, src)
		So(n, ShouldEqual, 2)
		So(state, ShouldEqual, StateBufferFull)
		So(dst, ShouldResemble, src[:2])

		n, state = e.Encode(dst, src)
		So(n, ShouldEqual, 1)
		So(state, ShouldEqual, StateComplete)
		So(dst[0], ShouldResemble, src[2])
	})

	Convey("Zero capacity reports a full buffer", t, func() {
		e := NewCopyEncoder()
		n, state := e.Encode(nil, src)
		So(n, ShouldEqual, 0)
		So(state, ShouldEqual, StateBufferFull)
	})

	Convey("Reset discards progress", t, func() {
		e := NewCopyEncoder()
		e.Encode(make([]Symbol, 2), src)
		e.Reset()
		dst := make([]Symbol, 3)
		n, state := e.Encode(dst, src)
		So(n, ShouldEqual, 3)
		So(state, ShouldEqual, StateComplete)
	})

	Convey("Panics on an empty source", t, func() {
		So(func() { NewCopyEncoder().Encode(make([]Symbol, 1), nil) }, ShouldPanic)
	})
}
