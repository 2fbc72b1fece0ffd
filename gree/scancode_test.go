package gree

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScanCodeText(t *testing.T) {
	Convey("String", t, func() {
		c := ScanCode{0xaaaaaaaa, 0x1, 0xdeadbeef, 0}
		So(c.String(), ShouldEqual, "aaaaaaaa:00000001:deadbeef:00000000")
		parsed, err := ParseScanCode(c.String())
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, c)
	})

	Convey("Accepts 0x prefixes and short fields", t, func() {
		c, err := ParseScanCode(" 0xAAAAAAAA:1:0XdeadBEEF:0 ")
		So(err, ShouldBeNil)
		So(c, ShouldResemble, ScanCode{0xaaaaaaaa, 1, 0xdeadbeef, 0})
	})

	Convey("Rejects malformed codes", t, func() {
		for _, s := range []string{
			"",
			"aaaaaaaa:aaaaaaaa:aaaaaaaa",
			"aaaaaaaa:aaaaaaaa:aaaaaaaa:aaaaaaaa:aa",
			"aaaaaaaa::aaaaaaaa:aaaaaaaa",
			"aaaaaaaaa:aaaaaaaa:aaaaaaaa:aaaaaaaa",
			"zzzzzzzz:aaaaaaaa:aaaaaaaa:aaaaaaaa",
		} {
			_, err := ParseScanCode(s)
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Fields go out low byte first", t, func() {
		var b [4]byte
		So(fieldBytes(&b, 0x11223344), ShouldResemble, []byte{0x44, 0x33, 0x22, 0x11})
	})
}
