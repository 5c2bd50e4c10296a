//go:build go1.23

package cebtree_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cebtree/cebtree/pkg/cebtree"
)

func TestTreeIterators(t *testing.T) {
	Convey("Given a u32 tree with several keys", t, func() {
		tr := cebtree.NewU32(u32Kofs, false)
		for _, k := range []uint32{8, 3, 12, 1, 9} {
			tr.Insert(&(&u32Elem{key: k}).n)
		}

		Convey("All yields every element ascending", func() {
			var got []uint32
			for s := range tr.All() {
				got = append(got, u32At(s))
			}
			So(got, ShouldResemble, []uint32{1, 3, 8, 9, 12})
		})

		Convey("Descending yields every element in reverse", func() {
			var got []uint32
			for s := range tr.Descending() {
				got = append(got, u32At(s))
			}
			So(got, ShouldResemble, []uint32{12, 9, 8, 3, 1})
		})

		Convey("Range clips to the inclusive bounds", func() {
			var got []uint32
			for s := range tr.Range(3, 9) {
				got = append(got, u32At(s))
			}
			So(got, ShouldResemble, []uint32{3, 8, 9})
		})

		Convey("Early break stops the walk cleanly", func() {
			var got []uint32
			for s := range tr.All() {
				got = append(got, u32At(s))
				if len(got) == 2 {
					break
				}
			}
			So(got, ShouldResemble, []uint32{1, 3})
		})
	})
}

func TestViewIterators(t *testing.T) {
	Convey("Given a typed view with a few records", t, func() {
		v, err := cebtree.U64ViewOf[record]("ID", false)
		So(err, ShouldBeNil)
		for _, id := range []uint64{4, 1, 3} {
			v.Insert(&record{ID: id})
		}

		Convey("All yields typed pointers ascending", func() {
			var got []uint64
			for r := range v.All() {
				got = append(got, r.ID)
			}
			So(got, ShouldResemble, []uint64{1, 3, 4})
		})

		Convey("Range respects both bounds", func() {
			var got []uint64
			for r := range v.Range(2, 3) {
				got = append(got, r.ID)
			}
			So(got, ShouldResemble, []uint64{3})
		})
	})
}
