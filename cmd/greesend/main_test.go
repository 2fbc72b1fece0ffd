package main

import (
	"flag"
	"testing"

	"go.uber.org/zap"

	. "github.com/smartystreets/goconvey/convey"
)

func setFlags(values map[string]string) {
	for name, value := range values {
		So(flag.Set(name, value), ShouldBeNil)
	}
}

func TestRun(t *testing.T) {
	defaults := map[string]string{
		"n":       "true",
		"code":    "aaaaaaaa:aaaaaaaa:aaaaaaaa:aaaaaaaa",
		"timeout": "10s",
		"repeat":  "0",
	}

	Convey("Dry run succeeds", t, func() {
		setFlags(defaults)
		So(run(zap.NewNop()), ShouldEqual, 0)
	})

	Convey("Bad scan codes are usage errors", t, func() {
		setFlags(defaults)
		setFlags(map[string]string{"code": "nope"})
		So(run(zap.NewNop()), ShouldEqual, 2)
	})

	Convey("A failed send returns instead of exiting", t, func() {
		setFlags(defaults)
		setFlags(map[string]string{"timeout": "0s", "repeat": "1"})
		So(run(zap.NewNop()), ShouldEqual, 1)
	})
}
