package recommendationsrv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobpulse/jobpulse/board/recommendation"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type fakeRecommender struct {
	mu         sync.Mutex
	recs       []recommendation.RecommendedJob
	err        error
	calls      int
	lastMethod recommendation.Method
	lastLimit  int
	trainErr   error
}

func (f *fakeRecommender) Recommend(_ context.Context, _ kernel.UserID, method recommendation.Method, limit int) ([]recommendation.RecommendedJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMethod = method
	f.lastLimit = limit
	return f.recs, f.err
}

func (f *fakeRecommender) Train(_ context.Context) (*recommendation.TrainResult, error) {
	if f.trainErr != nil {
		return nil, f.trainErr
	}
	return &recommendation.TrainResult{Message: "trained"}, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func TestGetRecommendationsDefaultsToHybrid(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{recs: []recommendation.RecommendedJob{{JobID: "j1", Score: 0.9}}}
	svc := NewRecommendationService(rec, newFakeCache())

	if _, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), "", 0); err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}

	if rec.lastMethod != recommendation.MethodHybrid {
		t.Fatalf("expected hybrid default, got %q", rec.lastMethod)
	}
	if rec.lastLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", rec.lastLimit)
	}
}

func TestGetRecommendationsRejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	svc := NewRecommendationService(&fakeRecommender{}, newFakeCache())

	_, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), "astrology", 10)
	if !errx.IsCode(err, recommendation.CodeInvalidMethod) {
		t.Fatalf("expected invalid method error, got %v", err)
	}
}

func TestGetRecommendationsDegradesWhenEngineIsDown(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{err: recommendation.ErrUnavailable()}
	svc := NewRecommendationService(rec, newFakeCache())

	recs, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), recommendation.MethodHybrid, 10)
	if err != nil {
		t.Fatalf("engine unavailability must not surface as an error, got %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected an empty non-nil list, got %v", recs)
	}
}

func TestGetRecommendationsCachesPerUserMethodAndLimit(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{recs: []recommendation.RecommendedJob{{JobID: "j1", Title: "Backend", Score: 0.8}}}
	svc := NewRecommendationService(rec, newFakeCache())

	for i := 0; i < 2; i++ {
		got, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), recommendation.MethodHybrid, 10)
		if err != nil {
			t.Fatalf("GetRecommendations error: %v", err)
		}
		if len(got) != 1 || got[0].JobID != "j1" {
			t.Fatalf("unexpected recommendations %v", got)
		}
	}
	if rec.calls != 1 {
		t.Fatalf("second read should come from cache, engine called %d times", rec.calls)
	}

	// A different limit is a different cache entry
	if _, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), recommendation.MethodHybrid, 5); err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}
	if rec.calls != 2 {
		t.Fatalf("limit change should miss the cache, engine called %d times", rec.calls)
	}
}

func TestFailedRunsAreNotCached(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{err: recommendation.ErrUnavailable()}
	cache := newFakeCache()
	svc := NewRecommendationService(rec, cache)

	if _, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), recommendation.MethodHybrid, 10); err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}

	// Engine recovers; the next read must reach it instead of a cached
	// empty list
	rec.mu.Lock()
	rec.err = nil
	rec.recs = []recommendation.RecommendedJob{{JobID: "j1"}}
	rec.mu.Unlock()

	got, err := svc.GetRecommendations(context.Background(), kernel.NewUserID("u1"), recommendation.MethodHybrid, 10)
	if err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected fresh results after recovery, got %v", got)
	}
}

func TestTrainPropagatesFailures(t *testing.T) {
	t.Parallel()

	unavailable := &fakeRecommender{trainErr: recommendation.ErrUnavailable()}
	svc := NewRecommendationService(unavailable, newFakeCache())
	if _, err := svc.Train(context.Background()); !errx.IsCode(err, recommendation.CodeUnavailable) {
		t.Fatalf("expected unavailable to pass through, got %v", err)
	}

	broken := &fakeRecommender{trainErr: errors.New("bad response")}
	svc = NewRecommendationService(broken, newFakeCache())
	if _, err := svc.Train(context.Background()); !errx.IsCode(err, recommendation.CodeTrainFailed) {
		t.Fatalf("expected train-failed wrapper, got %v", err)
	}

	healthy := &fakeRecommender{}
	svc = NewRecommendationService(healthy, newFakeCache())
	result, err := svc.Train(context.Background())
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if result.Message != "trained" {
		t.Fatalf("unexpected train result %+v", result)
	}
}
