package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/cageside/internal/adapters/classifier"
	"github.com/okian/cageside/internal/cli"
	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/matchup"
	. "github.com/smartystreets/goconvey/convey"
)

const rosterCSV = `fighter,n_win,n_loss,n_draw,Stance,sig_str_land_pM,td_avg,sig_str_abs_pM
Magomed Ankalaev,21,1,1,Orthodox,3.6,1.0,2.4
Alex Pereira,12,3,0,Orthodox,5.1,0.1,3.9
Jiří Procházka,31,5,1,Orthodox,5.9,0.5,5.6
Khalil Rountree,15,6,0,Southpaw,4.3,0.2,3.8
`

const cardYAML = `event: UFC 320
bouts:
  - blue: Magomed Ankalaev
    red: Alex Pereira
    weight_class: Light Heavyweight
    description: Light Heavyweight Championship
    main_event: true
  - blue: Jiri Prochazka
    red: Khalil Rountree
  - blue: Josh Emmett
    red: Youssef Zalal
`

// fixture writes a roster and a model that favours the corner with more wins.
func fixture(t *testing.T) (dataDir, model string) {
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "fighter_stats")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "stats.csv"), []byte(rosterCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	names := matchup.Names(fighter.Canonical)
	coef := make([]float64, len(names))
	for i, n := range names {
		switch n {
		case matchup.BluePrefix + fighter.Wins:
			coef[i] = 0.2
		case matchup.RedPrefix + fighter.Wins:
			coef[i] = -0.2
		}
	}
	b, _ := json.Marshal(classifier.ModelFile{Features: names, Coefficients: coef})
	model = filepath.Join(dir, "model.json")
	if err := os.WriteFile(model, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return dataDir, model
}

func run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	Convey("Given a roster and a model", t, func() {
		dataDir, model := fixture(t)
		base := []string{"--data-dir", dataDir, "--fallback", "", "--model", model}

		Convey("When predicting a bout", func() {
			out, err := run(append(base, "predict", "Magomed Ankalaev", "alex pereira")...)

			Convey("Then the winner and advantages are printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Magomed Ankalaev (21-1-1) vs Alex Pereira (12-3-0)")
				So(out, ShouldContainSubstring, "PREDICTION: Magomed Ankalaev defeats Alex Pereira")
				So(out, ShouldContainSubstring, "Confidence: 85.8%")
				So(out, ShouldContainSubstring, "KEY ADVANTAGES:")
			})
		})

		Convey("When predicting with JSON output", func() {
			out, err := run(append(base, "--json", "predict", "Alex Pereira", "Magomed Ankalaev")...)
			So(err, ShouldBeNil)

			var got map[string]any
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got["winner"], ShouldEqual, "Magomed Ankalaev")
			So(got["winner_corner"], ShouldEqual, "red")
		})

		Convey("When a fighter is unknown", func() {
			_, err := run(append(base, "predict", "Alex Pereira", "Qqqqqq Xxxxxx")...)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not found")
		})

		Convey("When the argument count is wrong", func() {
			_, err := run(append(base, "predict", "Alex Pereira")...)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSearchAndFightersCommands(t *testing.T) {
	Convey("Given a roster", t, func() {
		dataDir, model := fixture(t)
		base := []string{"--data-dir", dataDir, "--fallback", "", "--model", model}

		Convey("Then search shows ranked candidates", func() {
			out, err := run(append(base, "search", "prochazka")...)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "NAME")
			So(out, ShouldContainSubstring, "Jiří Procházka")
			So(out, ShouldContainSubstring, "substring")
		})

		Convey("Then fighters lists the sorted roster", func() {
			out, err := run(append(base, "fighters")...)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Alex Pereira\nJiří Procházka\nKhalil Rountree\nMagomed Ankalaev\n")
		})
	})
}

func TestCardCommand(t *testing.T) {
	Convey("Given a card file", t, func() {
		dataDir, model := fixture(t)
		path := filepath.Join(t.TempDir(), "ufc320.yaml")
		So(os.WriteFile(path, []byte(cardYAML), 0o600), ShouldBeNil)

		card, err := cli.LoadCard(path)
		So(err, ShouldBeNil)
		So(card.Event, ShouldEqual, "UFC 320")
		So(card.Bouts, ShouldHaveLength, 3)
		So(card.Bouts[0].MainEvent, ShouldBeTrue)

		Convey("When the card is predicted", func() {
			out, err := run("--data-dir", dataDir, "--fallback", "", "--model", model, "card", path)

			Convey("Then every bout is reported", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "MAIN EVENT - Light Heavyweight Championship")
				So(out, ShouldContainSubstring, "Weight Class: Light Heavyweight")
				So(out, ShouldContainSubstring, "Jiří Procházka vs Khalil Rountree -> Jiří Procházka wins")
				So(out, ShouldContainSubstring, "Failed to predict Josh Emmett vs Youssef Zalal")
				So(out, ShouldContainSubstring, "Predicted 2/3 bouts")
			})
		})

		Convey("When the card has unknown keys", func() {
			So(os.WriteFile(path, []byte("bouts:\n  - fighter1: A\n"), 0o600), ShouldBeNil)
			_, err := cli.LoadCard(path)
			So(err, ShouldNotBeNil)
		})
	})
}
