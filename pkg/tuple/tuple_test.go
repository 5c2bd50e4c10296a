package tuple_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/cebtree/cebtree/pkg/tuple"
)

func ExampleNew2() {
	t := New2("hello", 42)

	fmt.Println(t)
	fmt.Println(t.Unpack())

	// Output:
	// (hello, 42)
	// hello 42
}

func TestTuple2(t *testing.T) {
	Convey("Given a 2-tuple", t, func() {
		p := New2("answer", 42)

		Convey("Its fields are positional", func() {
			So(p.V0, ShouldEqual, "answer")
			So(p.V1, ShouldEqual, 42)
		})

		Convey("Unpack returns both values", func() {
			k, v := p.Unpack()
			So(k, ShouldEqual, "answer")
			So(v, ShouldEqual, 42)
		})

		Convey("String renders both values", func() {
			So(p.String(), ShouldEqual, "(answer, 42)")
		})
	})
}
