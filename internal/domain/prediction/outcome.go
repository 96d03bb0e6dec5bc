package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Corner names.
const (
	CornerBlue = "blue"
	CornerRed  = "red"
)

const unavailable = "unavailable"

// Confidence is a percentage in [0, 100] or unavailable.
type Confidence struct {
	value float64
	ok    bool
}

// Percent returns a known confidence.
func Percent(v float64) Confidence { return Confidence{value: v, ok: true} }

// Unavailable returns the unknown confidence.
func Unavailable() Confidence { return Confidence{} }

// Value returns the percentage and whether it is known.
func (c Confidence) Value() (float64, bool) { return c.value, c.ok }

func (c Confidence) String() string {
	if !c.ok {
		return unavailable
	}
	return strconv.FormatFloat(c.value, 'f', 1, 64) + "%"
}

// MarshalJSON encodes a number, or the string "unavailable".
func (c Confidence) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return json.Marshal(unavailable)
	}
	return json.Marshal(math.Round(c.value*100) / 100)
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (c *Confidence) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte(`"`+unavailable+`"`)) {
		*c = Unavailable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("confidence: %w", err)
	}
	*c = Percent(v)
	return nil
}

// Summary is the short stat line shown next to a prediction.
type Summary struct {
	Name             string  `json:"name"`
	Record           string  `json:"record"`
	StrikesPerMinute float64 `json:"sig_str_land_pM"`
	TakedownAverage  float64 `json:"td_avg"`
	Stance           string  `json:"stance"`
	MatchScore       float64 `json:"match_score"`
	MatchKind        string  `json:"match_kind"`
}

// Outcome is a completed prediction. It is never partially populated.
type Outcome struct {
	Winner       string       `json:"winner"`
	Loser        string       `json:"loser"`
	WinnerCorner string       `json:"winner_corner"`
	Confidence   Confidence   `json:"confidence"`
	Blue         Summary      `json:"blue"`
	Red          Summary      `json:"red"`
	Tape         []Comparison `json:"tale_of_the_tape"`
	SnapshotID   string       `json:"snapshot_id"`
}
