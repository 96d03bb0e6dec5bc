// Package fighter maps raw fighter rows from any supported source shape into
// the canonical numeric attribute set the matchup vector is built from.
package fighter

// SchemaVersion identifies the canonical field order below. Models exported
// against one order must not be fed vectors built from another.
const SchemaVersion = "v1"

// Canonical field names.
const (
	Wins                   = "wins"
	Losses                 = "losses"
	HeightCms              = "Height_cms"
	ReachCms               = "Reach_cms"
	WeightLbs              = "Weight_lbs"
	SigStrLandPM           = "sig_str_land_pM"
	SigStrAbsPM            = "sig_str_abs_pM"
	SigStrDefPct           = "sig_str_def_pct"
	SigStrLandPct          = "sig_str_land_pct"
	TdAvg                  = "td_avg"
	TdDefPct               = "td_def_pct"
	TdLandPct              = "td_land_pct"
	SubAvg                 = "sub_avg"
	StanceOrthodox         = "Stance_Orthodox"
	StanceSouthpaw         = "Stance_Southpaw"
	StanceSwitch           = "Stance_Switch"
	StanceOpen             = "Stance_Open_Stance"
	CurrentLoseStreak      = "current_lose_streak"
	CurrentWinStreak       = "current_win_streak"
	LongestWinStreak       = "longest_win_streak"
	TotalRoundsFought      = "total_rounds_fought"
	TotalTitleBouts        = "total_title_bouts"
	WinByDecisionMajority  = "win_by_Decision_Majority"
	WinByDecisionSplit     = "win_by_Decision_Split"
	WinByDecisionUnanimous = "win_by_Decision_Unanimous"
	WinByKOTKO             = "win_by_KO_TKO"
	WinBySubmission        = "win_by_Submission"
	WinByTKODoctorStoppage = "win_by_TKO_Doctor_Stoppage"
	Age                    = "age"
)

// DefaultAge is used when neither an age nor a parseable date of birth is present.
const DefaultAge = 30.0

// Schema is an ordered list of canonical field names.
type Schema []string

// Canonical is the field order the classifier was trained on.
var Canonical = Schema{
	Wins, Losses,
	HeightCms, ReachCms, WeightLbs,
	SigStrLandPM, SigStrAbsPM, SigStrDefPct, SigStrLandPct,
	TdAvg, TdDefPct, TdLandPct, SubAvg,
	StanceOrthodox, StanceSouthpaw, StanceSwitch, StanceOpen,
	CurrentLoseStreak, CurrentWinStreak, LongestWinStreak,
	TotalRoundsFought, TotalTitleBouts,
	WinByDecisionMajority, WinByDecisionSplit, WinByDecisionUnanimous,
	WinByKOTKO, WinBySubmission, WinByTKODoctorStoppage,
	Age,
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s) }

// Contains reports whether key is part of the schema.
func (s Schema) Contains(key string) bool {
	for _, k := range s {
		if k == key {
			return true
		}
	}
	return false
}
