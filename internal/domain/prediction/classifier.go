package prediction

import "context"

// Classifier decisions.
const (
	RedWins  = 0
	BlueWins = 1
)

// Classifier predicts the winner of a matchup row: BlueWins or RedWins.
type Classifier interface {
	Predict(ctx context.Context, row []float64) (int, error)
}

// ProbabilityClassifier is a Classifier that can also report class
// probabilities as [p(red), p(blue)].
type ProbabilityClassifier interface {
	Classifier
	PredictProba(ctx context.Context, row []float64) ([]float64, error)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(ctx context.Context, row []float64) (int, error)

// Predict calls f.
func (f ClassifierFunc) Predict(ctx context.Context, row []float64) (int, error) {
	return f(ctx, row)
}
