package fighter

// Semantic fields that are not part of the canonical schema but are read
// from raw records.
const (
	FieldName      = "name"
	FieldID        = "id"
	FieldDraws     = "draws"
	FieldHeight    = "height"
	FieldReach     = "reach"
	FieldWeight    = "weight"
	FieldStance    = "stance"
	FieldDOB       = "dob"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// Aliases maps a semantic field to the source keys that may carry it,
// in lookup order. The first key present with a usable value wins.
type Aliases map[string][]string

// DefaultAliases covers the crawler export, the legacy enhanced stats
// file and the common spellings seen in third party dumps.
func DefaultAliases() Aliases {
	a := Aliases{
		FieldName:      {"name", "fighter", "fighter_name", "Fighter", "Name"},
		FieldFirstName: {"First Name", "first_name"},
		FieldLastName:  {"Last Name", "last_name"},
		FieldID:        {"ID", "id", "fighter_id"},
		FieldDraws:     {"n_draw", "draws", "draw"},
		FieldHeight:    {"height", "Height"},
		FieldReach:     {"reach", "Reach"},
		FieldWeight:    {"weight", "Weight"},
		FieldStance:    {"stance", "Stance"},
		FieldDOB:       {"dob", "DOB", "date_of_birth"},

		Wins:          {"n_win", "wins", "win"},
		Losses:        {"n_loss", "losses", "loss"},
		SigStrLandPM:  {SigStrLandPM, "slpm", "SLpM"},
		SigStrAbsPM:   {SigStrAbsPM, "sapm", "SApM"},
		SigStrDefPct:  {SigStrDefPct, "str_def", "Str_Def"},
		SigStrLandPct: {SigStrLandPct, "str_acc", "Str_Acc"},
		TdAvg:         {TdAvg, "TD_Avg"},
		TdDefPct:      {TdDefPct, "td_def", "TD_Def"},
		TdLandPct:     {TdLandPct, "td_acc", "TD_Acc"},
		SubAvg:        {SubAvg, "Sub_Avg"},
		Age:           {Age, "Age"},
	}
	for _, k := range Canonical {
		if _, ok := a[k]; !ok {
			a[k] = []string{k}
		}
	}
	return a
}

// Add appends source keys to field. Existing keys keep their priority.
func (a Aliases) Add(field string, keys ...string) {
	a[field] = append(a[field], keys...)
}

// Keys returns the source keys for field, or nil.
func (a Aliases) Keys(field string) []string {
	return a[field]
}

func (a Aliases) clone() Aliases {
	out := make(Aliases, len(a))
	for f, keys := range a {
		out[f] = append([]string(nil), keys...)
	}
	return out
}
