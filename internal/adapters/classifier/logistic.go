package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/matchup"
	"github.com/okian/cageside/internal/domain/prediction"
)

// Threshold is the Blue-win probability at or above which Predict returns BlueWins.
const Threshold = 0.5

// ModelFile is the JSON export of a trained logistic regression.
type ModelFile struct {
	SchemaVersion string    `json:"schema_version"`
	Features      []string  `json:"features"`
	Coefficients  []float64 `json:"coefficients"`
	Intercept     float64   `json:"intercept"`
}

// Logistic scores a matchup row as sigmoid(w·x + b), the probability that Blue wins.
type Logistic struct {
	coef      []float64
	intercept float64
}

var _ prediction.ProbabilityClassifier = (*Logistic)(nil)

// LoadLogistic reads a model export from path and validates it against schema.
func LoadLogistic(path string, schema fighter.Schema) (*Logistic, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var mf ModelFile
	if err := json.Unmarshal(b, &mf); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidModel, path, err)
	}
	return NewLogistic(mf, schema)
}

// NewLogistic validates mf. Its feature names must equal the matchup vector
// names for schema, in order.
func NewLogistic(mf ModelFile, schema fighter.Schema) (*Logistic, error) {
	if mf.SchemaVersion != "" && mf.SchemaVersion != fighter.SchemaVersion {
		return nil, fmt.Errorf("%w: schema version %q, want %q", ErrInvalidModel, mf.SchemaVersion, fighter.SchemaVersion)
	}
	if len(mf.Coefficients) != len(mf.Features) {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidModel, len(mf.Coefficients), len(mf.Features))
	}
	if want := matchup.Names(schema); !slices.Equal(mf.Features, want) {
		return nil, fmt.Errorf("%w: feature names do not match the %d-column matchup layout", ErrInvalidModel, len(want))
	}
	for i, c := range mf.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coefficient %s is not finite", ErrInvalidModel, mf.Features[i])
		}
	}
	return &Logistic{coef: slices.Clone(mf.Coefficients), intercept: mf.Intercept}, nil
}

// Predict returns BlueWins when the Blue-win probability reaches Threshold.
func (l *Logistic) Predict(ctx context.Context, row []float64) (int, error) {
	p, err := l.blue(row)
	if err != nil {
		return 0, err
	}
	if p >= Threshold {
		return prediction.BlueWins, nil
	}
	return prediction.RedWins, nil
}

// PredictProba returns [P(red), P(blue)].
func (l *Logistic) PredictProba(ctx context.Context, row []float64) ([]float64, error) {
	p, err := l.blue(row)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

func (l *Logistic) blue(row []float64) (float64, error) {
	if len(row) != len(l.coef) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureLength, len(row), len(l.coef))
	}
	z := l.intercept
	for i, x := range row {
		z += l.coef[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
