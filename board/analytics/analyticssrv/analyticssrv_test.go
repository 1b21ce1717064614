package analyticssrv

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jobpulse/jobpulse/board/analytics"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type fakeAnalyticsRepo struct {
	analytics.Repository

	overviewCalls  int
	topRecruiters  []analytics.TopRecruiter
	lastLimit      int
	lastDays       int
	lastRecruiter  kernel.UserID
	performance    *analytics.RecruiterPerformance
	performanceErr error
}

func (r *fakeAnalyticsRepo) Overview(_ context.Context) (*analytics.OverviewStats, error) {
	r.overviewCalls++
	return &analytics.OverviewStats{TotalJobs: 7}, nil
}

func (r *fakeAnalyticsRepo) TopRecruiters(_ context.Context, limit int) ([]analytics.TopRecruiter, error) {
	r.lastLimit = limit
	return r.topRecruiters, nil
}

func (r *fakeAnalyticsRepo) UserGrowth(_ context.Context, days int) ([]analytics.UserGrowthRow, error) {
	r.lastDays = days
	return []analytics.UserGrowthRow{}, nil
}

func (r *fakeAnalyticsRepo) LocationStats(_ context.Context) ([]analytics.LocationStat, error) {
	return []analytics.LocationStat{{Location: "Lima", JobCount: 4}}, nil
}

func (r *fakeAnalyticsRepo) ConversionRates(_ context.Context) ([]analytics.ConversionRow, error) {
	return []analytics.ConversionRow{{Title: "Backend Engineer", ConversionRate: 12.5}}, nil
}

func (r *fakeAnalyticsRepo) RecruiterPerformance(_ context.Context, recruiterID kernel.UserID) (*analytics.RecruiterPerformance, error) {
	r.lastRecruiter = recruiterID
	return r.performance, r.performanceErr
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
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

func (c *fakeCache) DeleteByPattern(_ context.Context, _ string) error {
	return nil
}

func TestOverviewIsCached(t *testing.T) {
	t.Parallel()

	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, newFakeCache())

	for i := 0; i < 3; i++ {
		stats, err := svc.Overview(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalJobs != 7 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	}

	if repo.overviewCalls != 1 {
		t.Fatalf("expected a single repository round-trip, got %d", repo.overviewCalls)
	}
}

func TestTopRecruitersClampsLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back", 0, 10},
		{"negative falls back", -5, 10},
		{"oversized falls back", 500, 10},
		{"in-range passes through", 25, 25},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeAnalyticsRepo{}
			svc := NewAnalyticsService(repo, newFakeCache())

			if _, err := svc.TopRecruiters(context.Background(), tc.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastLimit != tc.want {
				t.Fatalf("limit %d should reach the repository as %d, got %d", tc.limit, tc.want, repo.lastLimit)
			}
		})
	}
}

func TestUserGrowthClampsWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		days int
		want int
	}{
		{"zero falls back", 0, 30},
		{"beyond a year falls back", 400, 30},
		{"in-range passes through", 90, 90},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeAnalyticsRepo{}
			svc := NewAnalyticsService(repo, newFakeCache())

			if _, err := svc.UserGrowth(context.Background(), tc.days); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastDays != tc.want {
				t.Fatalf("window %d should reach the repository as %d, got %d", tc.days, tc.want, repo.lastDays)
			}
		})
	}
}

func TestRecruiterPerformanceScopesToRecruiter(t *testing.T) {
	t.Parallel()

	repo := &fakeAnalyticsRepo{performance: &analytics.RecruiterPerformance{
		Overview: analytics.RecruiterOverview{TotalJobs: 3},
	}}
	svc := NewAnalyticsService(repo, newFakeCache())

	performance, err := svc.RecruiterPerformance(context.Background(), kernel.NewUserID("rec-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if performance.Overview.TotalJobs != 3 {
		t.Fatalf("unexpected performance: %+v", performance)
	}
	if repo.lastRecruiter.String() != "rec-1" {
		t.Fatalf("expected the recruiter id to reach the repository, got %q", repo.lastRecruiter)
	}
}

func TestRecruiterPerformanceWrapsFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeAnalyticsRepo{performanceErr: errors.New("connection refused")}
	svc := NewAnalyticsService(repo, newFakeCache())

	_, err := svc.RecruiterPerformance(context.Background(), kernel.NewUserID("rec-1"))
	if err == nil {
		t.Fatalf("expected repository failure to propagate")
	}
	if !errx.IsType(err, errx.TypeInternal) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}
