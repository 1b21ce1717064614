package recommendationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/jobpulse/jobpulse/board/recommendation"
	"github.com/jobpulse/jobpulse/pkg/cachex"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const (
	recommendationTTL = time.Hour
	defaultLimit      = 10
)

// RecommendationService fronts the ML engine with a cache and graceful
// degradation: an unavailable engine yields an empty list to the caller, not
// an error.
type RecommendationService struct {
	recommender recommendation.Recommender
	cache       cachex.Cache
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(recommender recommendation.Recommender, cache cachex.Cache) *RecommendationService {
	return &RecommendationService{
		recommender: recommender,
		cache:       cache,
	}
}

// GetRecommendations returns scored jobs for a user. Results are cached per
// (user, method, limit); engine unavailability degrades to an empty list.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID kernel.UserID, method recommendation.Method, limit int) ([]recommendation.RecommendedJob, error) {
	if method == "" {
		method = recommendation.MethodHybrid
	}
	if !method.IsValid() {
		return nil, recommendation.ErrInvalidMethod().WithDetail("method", string(method))
	}
	if limit < 1 || limit > 50 {
		limit = defaultLimit
	}

	key := cacheKey(userID, method, limit)

	var cached []recommendation.RecommendedJob
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logx.Warnf("recommendation cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	recs, err := s.recommender.Recommend(ctx, userID, method, limit)
	if err != nil {
		if errx.IsCode(err, recommendation.CodeUnavailable) {
			// Unavailability is logged, not surfaced: the user just sees no
			// recommendations today
			logx.Warnf("recommendation engine unavailable for user %s: %v", userID, err)
			return []recommendation.RecommendedJob{}, nil
		}
		logx.Errorf("recommendation request failed for user %s: %v", userID, err)
		return []recommendation.RecommendedJob{}, nil
	}

	if recs == nil {
		recs = []recommendation.RecommendedJob{}
	}

	if err := s.cache.Set(ctx, key, recs, recommendationTTL); err != nil {
		logx.Warnf("recommendation cache write failed: %v", err)
	}

	return recs, nil
}

// Train triggers a model retraining run. Unlike inference this propagates
// failure: an admin asked for it explicitly.
func (s *RecommendationService) Train(ctx context.Context) (*recommendation.TrainResult, error) {
	result, err := s.recommender.Train(ctx)
	if err != nil {
		if errx.IsType(err, errx.TypeUnavailable) {
			return nil, err
		}
		return nil, recommendation.ErrTrainFailed().WithCause(err)
	}
	return result, nil
}

func cacheKey(userID kernel.UserID, method recommendation.Method, limit int) string {
	return fmt.Sprintf("recommendations:%s:%s:%d", userID, method, limit)
}
