package prediction_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/prediction"
	"github.com/okian/cageside/internal/domain/resolve"
	"github.com/okian/cageside/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

type stubClassifier struct {
	decision int
	err      error
	calls    int
	rows     [][]float64
}

func (s *stubClassifier) Predict(_ context.Context, row []float64) (int, error) {
	s.calls++
	s.rows = append(s.rows, row)
	return s.decision, s.err
}

type probaClassifier struct {
	stubClassifier
	proba    []float64
	probaErr error
}

func (p *probaClassifier) PredictProba(_ context.Context, _ []float64) ([]float64, error) {
	return p.proba, p.probaErr
}

func twoFighterSnapshot() *roster.Snapshot {
	return roster.NewSnapshot("test", time.Now(), []fighter.RawRecord{
		{"name": "A", "n_win": "10", "n_loss": "2", "n_draw": "1", "sig_str_land_pM": "4.5", "td_avg": "1.2", "stance": "Southpaw", "reach": `74"`},
		{"name": "B", "n_win": "8", "n_loss": "4", "sig_str_land_pM": "3.1", "td_avg": "2.5", "stance": "Orthodox", "reach": `72"`},
	})
}

func TestPredictFight(t *testing.T) {
	Convey("Given a two fighter roster", t, func() {
		ctx := context.Background()
		snap := twoFighterSnapshot()
		p := prediction.New()

		Convey("When the classifier always picks blue", func() {
			clf := &stubClassifier{decision: prediction.BlueWins}
			out, err := p.PredictFight(ctx, "A", "B", snap, clf)

			Convey("Then blue is the winner and confidence is unavailable", func() {
				So(err, ShouldBeNil)
				So(out.Winner, ShouldEqual, "A")
				So(out.Loser, ShouldEqual, "B")
				So(out.WinnerCorner, ShouldEqual, prediction.CornerBlue)
				_, known := out.Confidence.Value()
				So(known, ShouldBeFalse)
				So(out.SnapshotID, ShouldEqual, snap.ID())
			})

			Convey("Then the classifier saw one full vector", func() {
				So(clf.calls, ShouldEqual, 1)
				So(clf.rows[0], ShouldHaveLength, 2*fighter.Canonical.Len())
				So(clf.rows[0][0], ShouldEqual, 10)
				So(clf.rows[0][fighter.Canonical.Len()], ShouldEqual, 8)
			})

			Convey("Then summaries and the tape are filled", func() {
				So(out.Blue.Record, ShouldEqual, "10-2-1")
				So(out.Red.Record, ShouldEqual, "8-4-0")
				So(out.Blue.Stance, ShouldEqual, "Southpaw")
				So(out.Blue.MatchKind, ShouldEqual, string(resolve.KindExact))
				So(out.Tape, ShouldNotBeEmpty)
				So(out.Tape[0].Metric, ShouldEqual, fighter.SigStrLandPM)
				So(out.Tape[0].Advantage, ShouldEqual, prediction.CornerBlue)
			})
		})

		Convey("When the classifier picks red", func() {
			out, err := p.PredictFight(ctx, "A", "B", snap, &stubClassifier{decision: prediction.RedWins})

			So(err, ShouldBeNil)
			So(out.Winner, ShouldEqual, "B")
			So(out.Loser, ShouldEqual, "A")
			So(out.WinnerCorner, ShouldEqual, prediction.CornerRed)
		})

		Convey("When the classifier reports probabilities", func() {
			clf := &probaClassifier{stubClassifier: stubClassifier{decision: prediction.BlueWins}, proba: []float64{0.27, 0.73}}
			out, err := p.PredictFight(ctx, "A", "B", snap, clf)

			Convey("Then confidence is the larger probability as a percentage", func() {
				So(err, ShouldBeNil)
				v, known := out.Confidence.Value()
				So(known, ShouldBeTrue)
				So(v, ShouldAlmostEqual, 73.0, 1e-9)
			})
		})

		Convey("When PredictProba fails", func() {
			clf := &probaClassifier{stubClassifier: stubClassifier{decision: prediction.BlueWins}, probaErr: errors.New("boom")}
			out, err := p.PredictFight(ctx, "A", "B", snap, clf)

			Convey("Then the prediction stands with unavailable confidence", func() {
				So(err, ShouldBeNil)
				So(out.Winner, ShouldEqual, "A")
				_, known := out.Confidence.Value()
				So(known, ShouldBeFalse)
			})
		})

		Convey("When both names resolve to the same fighter", func() {
			clf := &stubClassifier{decision: prediction.BlueWins}
			_, err := p.PredictFight(ctx, "A", " a ", snap, clf)

			Convey("Then ErrDuplicateFighter is returned without classifying", func() {
				So(errors.Is(err, prediction.ErrDuplicateFighter), ShouldBeTrue)
				So(clf.calls, ShouldEqual, 0)
			})
		})

		Convey("When a name cannot be resolved", func() {
			clf := &stubClassifier{decision: prediction.BlueWins}
			_, err := p.PredictFight(ctx, "A", "Zzzznonexistent Fighter", snap, clf)

			Convey("Then ErrFighterNotFound is returned", func() {
				So(errors.Is(err, prediction.ErrFighterNotFound), ShouldBeTrue)
				So(clf.calls, ShouldEqual, 0)
			})
		})

		Convey("When the best candidate is below the minimum confidence", func() {
			strict := prediction.New(
				prediction.WithResolver(resolve.New(resolve.WithMinScore(0))),
				prediction.WithMinConfidence(101),
			)
			_, err := strict.PredictFight(ctx, "A", "B", snap, &stubClassifier{})

			So(errors.Is(err, prediction.ErrFighterNotFound), ShouldBeTrue)
		})

		Convey("When the classifier fails or answers out of range", func() {
			_, err1 := p.PredictFight(ctx, "A", "B", snap, &stubClassifier{err: errors.New("down")})
			_, err2 := p.PredictFight(ctx, "A", "B", snap, &stubClassifier{decision: 7})
			_, err3 := p.PredictFight(ctx, "A", "B", snap, nil)

			Convey("Then ErrClassifier is returned", func() {
				So(errors.Is(err1, prediction.ErrClassifier), ShouldBeTrue)
				So(err1.Error(), ShouldContainSubstring, "down")
				So(errors.Is(err2, prediction.ErrClassifier), ShouldBeTrue)
				So(errors.Is(err3, prediction.ErrClassifier), ShouldBeTrue)
			})
		})
	})
}

func TestConfidenceJSON(t *testing.T) {
	Convey("Given confidences", t, func() {
		known, _ := json.Marshal(prediction.Percent(73.456))
		unknown, _ := json.Marshal(prediction.Unavailable())

		So(string(known), ShouldEqual, "73.46")
		So(string(unknown), ShouldEqual, `"unavailable"`)

		var c prediction.Confidence
		So(json.Unmarshal(unknown, &c), ShouldBeNil)
		_, ok := c.Value()
		So(ok, ShouldBeFalse)

		So(json.Unmarshal([]byte("61.5"), &c), ShouldBeNil)
		v, ok := c.Value()
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, 61.5)
		So(c.String(), ShouldEqual, "61.5%")
	})
}

func TestCompare(t *testing.T) {
	Convey("Given two fighters", t, func() {
		vals := func(abs, land float64) map[string]float64 {
			return map[string]float64{fighter.SigStrAbsPM: abs, fighter.SigStrLandPM: land}
		}
		blue := fighter.NewAttributes("A", "", vals(2, 5))
		red := fighter.NewAttributes("B", "", vals(4, 5))

		tape := prediction.Compare(blue, red)
		byMetric := map[string]prediction.Comparison{}
		for _, c := range tape {
			byMetric[c.Metric] = c
		}

		Convey("Then lower absorbed strikes is an advantage and equal values are even", func() {
			So(byMetric[fighter.SigStrAbsPM].Advantage, ShouldEqual, prediction.CornerBlue)
			So(byMetric[fighter.SigStrLandPM].Advantage, ShouldEqual, prediction.Even)
		})
	})
}
