package recommendation

import (
	"context"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// Recommender is the external recommendation engine. A disabled or
// unreachable engine surfaces as ErrUnavailable, never as an empty result.
type Recommender interface {
	// Recommend returns scored jobs for a user, best first
	Recommend(ctx context.Context, userID kernel.UserID, method Method, limit int) ([]RecommendedJob, error)

	// Train triggers a full model retraining run
	Train(ctx context.Context) (*TrainResult, error)
}
