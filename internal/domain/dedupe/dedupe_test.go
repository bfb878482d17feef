package dedupe_test

import (
	"fmt"
	"testing"

	"github.com/okian/sportvu/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new deduper with default options", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a key is recorded twice", func() {
			first := d.SeenAndRecord("1/700.00")
			second := d.SeenAndRecord("1/700.00")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a bounded deduper of size 3", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 0; i < 4; i++ {
			So(d.SeenAndRecord(fmt.Sprintf("k%d", i)), ShouldBeFalse)
		}

		Convey("Then the oldest key was forgotten", func() {
			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord("k3"), ShouldBeTrue)
			So(d.SeenAndRecord("k1"), ShouldBeTrue)
			So(d.SeenAndRecord("k0"), ShouldBeFalse)
		})

		Convey("When recording k0 again", func() {
			d.SeenAndRecord("k0")

			Convey("Then k1 has been evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord("k1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 50_000; i++ {
			d.SeenAndRecord(fmt.Sprintf("k%d", i))
		}

		Convey("Then nothing is evicted", func() {
			So(d.Size(), ShouldEqual, 50_000)
			So(d.SeenAndRecord("k0"), ShouldBeTrue)
		})
	})
}
