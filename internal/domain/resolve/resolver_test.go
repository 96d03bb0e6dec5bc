package resolve_test

import (
	"testing"
	"time"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/resolve"
	"github.com/okian/cageside/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func testSnapshot() *roster.Snapshot {
	names := []string{
		"Alex Pereira", "Magomed Ankalaev", "Israel Adesanya",
		"Jiri Prochazka", "Jon Jones", "Jan Blachowicz",
	}
	recs := make([]fighter.RawRecord, 0, len(names))
	for _, n := range names {
		recs = append(recs, fighter.RawRecord{"name": n})
	}
	return roster.NewSnapshot("test", time.Now(), recs)
}

func TestResolveExact(t *testing.T) {
	Convey("Given a roster", t, func() {
		snap := testSnapshot()
		r := resolve.New()

		Convey("When the query matches a name after normalization", func() {
			out := r.Resolve("  alex PEREIRA ", snap)

			Convey("Then a single exact candidate is returned", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Kind, ShouldEqual, resolve.KindExact)
				So(out[0].Score, ShouldEqual, 100)
				So(out[0].Fighter.Name, ShouldEqual, "Alex Pereira")
			})
		})

		Convey("When the same normalized name appears twice", func() {
			dup := roster.NewSnapshot("dup", time.Now(), []fighter.RawRecord{
				{"name": "Jon Jones", "n_win": 1},
				{"name": "JON JONES", "n_win": 2},
			})
			out := r.Resolve("jon jones", dup)

			Convey("Then the first row in snapshot order wins", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Fighter.Index, ShouldEqual, 0)
			})
		})
	})
}

func TestResolveSubstring(t *testing.T) {
	Convey("Given a roster", t, func() {
		snap := testSnapshot()

		Convey("When the query is part of several names", func() {
			out := resolve.New().Resolve("J", snap)

			Convey("Then substring candidates are returned in snapshot order up to the limit", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].Fighter.Name, ShouldEqual, "Jiri Prochazka")
				So(out[1].Fighter.Name, ShouldEqual, "Jon Jones")
				So(out[2].Fighter.Name, ShouldEqual, "Jan Blachowicz")
				for _, c := range out {
					So(c.Kind, ShouldEqual, resolve.KindSubstring)
					So(c.Score, ShouldEqual, 100)
				}
			})
		})

		Convey("When rows share a display name", func() {
			dup := roster.NewSnapshot("dup", time.Now(), []fighter.RawRecord{
				{"name": "Jon Jones"}, {"name": "Jon Jones"}, {"name": "Jon Jonesy"},
			})
			out := resolve.New().Resolve("jones", dup)

			Convey("Then each name appears once", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].Fighter.Index, ShouldEqual, 0)
				So(out[1].Fighter.Name, ShouldEqual, "Jon Jonesy")
			})
		})

		Convey("When the name is contained in the query instead", func() {
			out := resolve.New().Resolve("Alex Pereira the Poatan", snap)

			Convey("Then matching falls through to fuzzy", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Kind, ShouldEqual, resolve.KindFuzzy)
				So(out[0].Fighter.Name, ShouldEqual, "Alex Pereira")
				So(out[0].Score, ShouldAlmostEqual, 90.0, 0.001)
			})
		})
	})
}

func TestResolveFuzzy(t *testing.T) {
	Convey("Given a roster", t, func() {
		snap := testSnapshot()

		Convey("When the query is misspelled", func() {
			out := resolve.New().Resolve("Alex Pereria", snap)

			Convey("Then the closest name ranks first", func() {
				So(out, ShouldNotBeEmpty)
				So(out[0].Kind, ShouldEqual, resolve.KindFuzzy)
				So(out[0].Fighter.Name, ShouldEqual, "Alex Pereira")
				So(out[0].Score, ShouldAlmostEqual, 83.333, 0.01)
			})
		})

		Convey("When the query resembles nobody", func() {
			out := resolve.New().Resolve("Zzzznonexistent Fighter", snap)

			Convey("Then no candidate clears the floor", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the floor is disabled", func() {
			out := resolve.New(resolve.WithMinScore(0)).Resolve("Zzzznonexistent Fighter", snap)

			Convey("Then the top candidates are returned by descending score", func() {
				So(out, ShouldHaveLength, resolve.DefaultLimit)
				So(out[0].Fighter.Name, ShouldEqual, "Jon Jones")
				So(out[0].Score, ShouldBeGreaterThanOrEqualTo, out[1].Score)
				So(out[1].Score, ShouldBeGreaterThanOrEqualTo, out[2].Score)
			})
		})

		Convey("When the query is blank or punctuation", func() {
			So(resolve.New().Resolve("", snap), ShouldBeEmpty)
			So(resolve.New().Resolve(" ?! ", snap), ShouldBeEmpty)
			So(resolve.New().Resolve("jon", nil), ShouldBeEmpty)
		})
	})
}

func TestSimilarity(t *testing.T) {
	Convey("Given the similarity scorers", t, func() {
		So(resolve.Ratio("abc", "abc"), ShouldEqual, 100)
		So(resolve.Ratio("", "abc"), ShouldEqual, 0)
		So(resolve.PartialRatio("pereira", "alex pereira"), ShouldEqual, 100)
		So(resolve.TokenSortRatio("pereira alex", "alex pereira"), ShouldEqual, 100)
		So(resolve.TokenSetRatio("alex pereira", "alex"), ShouldEqual, 100)
		So(resolve.WRatio("jon jnes", "jon jones"), ShouldAlmostEqual, 88.889, 0.01)
		So(resolve.WRatio("", "jon"), ShouldEqual, 0)
	})
}
