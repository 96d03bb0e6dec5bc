package roster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeName(t *testing.T) {
	Convey("Given fighter names", t, func() {
		So(roster.NormalizeName("  Alex   PEREIRA "), ShouldEqual, "alex pereira")
		So(roster.NormalizeName("José Aldo Jr."), ShouldEqual, "jose aldo jr")
		So(roster.NormalizeName("Sean O'Malley"), ShouldEqual, "sean omalley")
		So(roster.NormalizeName("Jan Błachowicz"), ShouldEqual, "jan błachowicz")
		So(roster.NormalizeName("Benoît Saint-Denis"), ShouldEqual, "benoit saint denis")
		So(roster.NormalizeName("!!!"), ShouldEqual, "")
	})
}

func TestSnapshot(t *testing.T) {
	Convey("Given raw records", t, func() {
		loaded := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		records := []fighter.RawRecord{
			{"name": "Alex Pereira"},
			{"n_win": 3},
			{"name": "Magomed Ankalaev"},
			{"name": "alex pereira"},
		}

		Convey("When a snapshot is built", func() {
			snap := roster.NewSnapshot("test.csv", loaded, records)

			Convey("Then rows without a name are rejected", func() {
				So(snap.Len(), ShouldEqual, 3)
				So(snap.Rejected(), ShouldHaveLength, 1)
				So(errors.Is(snap.Rejected()[0], fighter.ErrMalformedRecord), ShouldBeTrue)
			})

			Convey("Then metadata is recorded", func() {
				So(snap.ID(), ShouldNotBeEmpty)
				So(snap.Source(), ShouldEqual, "test.csv")
				So(snap.LoadedAt(), ShouldEqual, loaded)
			})

			Convey("Then duplicate keys resolve to the first row", func() {
				f, ok := snap.ByKey("alex pereira")
				So(ok, ShouldBeTrue)
				So(f.Index, ShouldEqual, 0)
				So(f.Name, ShouldEqual, "Alex Pereira")
			})

			Convey("Then indexes follow snapshot order", func() {
				f, ok := snap.At(1)
				So(ok, ShouldBeTrue)
				So(f.Name, ShouldEqual, "Magomed Ankalaev")
				_, ok = snap.At(7)
				So(ok, ShouldBeFalse)
			})

			Convey("Then names are distinct and sorted", func() {
				So(snap.Names(), ShouldResemble, []string{"Alex Pereira", "Magomed Ankalaev", "alex pereira"})
			})
		})

		Convey("When two snapshots are built", func() {
			a := roster.NewSnapshot("a", loaded, records)
			b := roster.NewSnapshot("b", loaded, records)

			Convey("Then their ids differ", func() {
				So(a.ID(), ShouldNotEqual, b.ID())
			})
		})
	})
}
