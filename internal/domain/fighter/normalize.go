package fighter

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/cageside/internal/domain/stance"
	"github.com/okian/cageside/internal/domain/units"
)

// dobLayouts are the date of birth formats seen in crawler exports.
var dobLayouts = []string{"Jan 2, 2006", "Jan 02, 2006", "2006-01-02", "01/02/2006"}

// statFields are copied verbatim when numeric and default to 0.
var statFields = []string{
	Wins, Losses,
	SigStrLandPM, SigStrAbsPM, SigStrDefPct, SigStrLandPct,
	TdAvg, TdDefPct, TdLandPct, SubAvg,
	CurrentLoseStreak, CurrentWinStreak, LongestWinStreak,
	TotalRoundsFought, TotalTitleBouts,
	WinByDecisionMajority, WinByDecisionSplit, WinByDecisionUnanimous,
	WinByKOTKO, WinBySubmission, WinByTKODoctorStoppage,
}

// Normalizer turns raw records into Attributes.
type Normalizer struct {
	aliases Aliases
	asOf    time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithAliases replaces the alias table.
func WithAliases(a Aliases) Option {
	return func(n *Normalizer) {
		if a != nil {
			n.aliases = a.clone()
		}
	}
}

// WithAlias registers extra source keys for one field.
func WithAlias(field string, keys ...string) Option {
	return func(n *Normalizer) {
		n.aliases.Add(field, keys...)
	}
}

// WithAsOf sets the reference time used to derive age from a date of birth.
// Without it age is never derived.
func WithAsOf(t time.Time) Option {
	return func(n *Normalizer) {
		n.asOf = t
	}
}

// NewNormalizer returns a Normalizer using DefaultAliases.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{aliases: DefaultAliases()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NameOf returns the fighter name carried by raw.
func (n *Normalizer) NameOf(raw RawRecord) (string, bool) {
	if v, ok := lookup(raw, n.aliases.Keys(FieldName)); ok {
		if s := text(v); strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	first, _ := lookup(raw, n.aliases.Keys(FieldFirstName))
	last, _ := lookup(raw, n.aliases.Keys(FieldLastName))
	full := strings.TrimSpace(strings.TrimSpace(text(first)) + " " + strings.TrimSpace(text(last)))
	if full == "" {
		return "", false
	}
	return full, true
}

// Normalize maps raw into the canonical attribute set. The only failure is a
// record without a usable name.
func (n *Normalizer) Normalize(raw RawRecord) (Attributes, error) {
	name, ok := n.NameOf(raw)
	if !ok {
		return Attributes{}, fmt.Errorf("%w: missing name", ErrMalformedRecord)
	}

	vals := make(map[string]float64, len(Canonical))
	for _, f := range statFields {
		vals[f] = n.numeric(raw, f, 0)
	}

	vals[HeightCms] = n.measure(raw, HeightCms, FieldHeight, units.HeightToCm)
	vals[ReachCms] = n.measure(raw, ReachCms, FieldReach, units.ReachToCm)
	vals[WeightLbs] = n.measure(raw, WeightLbs, FieldWeight, units.WeightToLbs)

	enc := n.encodeStance(raw)
	vals[StanceOrthodox] = enc.Orthodox
	vals[StanceSouthpaw] = enc.Southpaw
	vals[StanceSwitch] = enc.Switch
	vals[StanceOpen] = enc.Open

	vals[Age] = n.age(raw)

	var id string
	if v, ok := lookup(raw, n.aliases.Keys(FieldID)); ok {
		id = identity(v)
	}

	return Attributes{
		Name:   name,
		ID:     id,
		Stance: enc.Label(),
		Draws:  n.numeric(raw, FieldDraws, 0),
		values: vals,
	}, nil
}

func (n *Normalizer) numeric(raw RawRecord, field string, def float64) float64 {
	v, ok := lookup(raw, n.aliases.Keys(field))
	if !ok {
		return def
	}
	f, ok := number(v)
	if !ok {
		return def
	}
	return f
}

// measure prefers an already converted canonical column and otherwise runs
// the free-text converter on the source field.
func (n *Normalizer) measure(raw RawRecord, canonical, field string, conv func(string) float64) float64 {
	if v, ok := raw[canonical]; ok {
		if f, ok := number(v); ok {
			return f
		}
	}
	v, _ := lookup(raw, n.aliases.Keys(field))
	return conv(text(v))
}

func (n *Normalizer) encodeStance(raw RawRecord) stance.Encoding {
	if v, ok := lookup(raw, n.aliases.Keys(FieldStance)); ok {
		return stance.Encode(text(v))
	}
	// Legacy rows carry the one-hot columns instead of a label.
	legacy := []struct {
		key string
		enc stance.Encoding
	}{
		{StanceOrthodox, stance.Encoding{Orthodox: 1}},
		{StanceSouthpaw, stance.Encoding{Southpaw: 1}},
		{StanceSwitch, stance.Encoding{Switch: 1}},
		{StanceOpen, stance.Encoding{Open: 1}},
	}
	for _, l := range legacy {
		if f, ok := number(raw[l.key]); ok && f > 0 {
			return l.enc
		}
	}
	return stance.Encode("")
}

func (n *Normalizer) age(raw RawRecord) float64 {
	if v, ok := lookup(raw, n.aliases.Keys(Age)); ok {
		if f, ok := number(v); ok {
			return f
		}
	}
	if n.asOf.IsZero() {
		return DefaultAge
	}
	v, ok := lookup(raw, n.aliases.Keys(FieldDOB))
	if !ok {
		return DefaultAge
	}
	s := strings.TrimSpace(text(v))
	for _, layout := range dobLayouts {
		dob, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if dob.After(n.asOf) {
			return DefaultAge
		}
		return float64(yearsBetween(dob, n.asOf))
	}
	return DefaultAge
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
