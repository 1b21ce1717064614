package analyticssrv

import (
	"context"
	"time"

	"github.com/jobpulse/jobpulse/board/analytics"
	"github.com/jobpulse/jobpulse/pkg/cachex"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/kernel"
	"github.com/jobpulse/jobpulse/pkg/logx"
)

const (
	overviewCacheKey = "analytics:overview"
	overviewTTL      = 10 * time.Minute
)

// AnalyticsService provides aggregate reporting for admins
type AnalyticsService struct {
	repo  analytics.Repository
	cache cachex.Cache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo analytics.Repository, cache cachex.Cache) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		cache: cache,
	}
}

// Overview returns the headline counters, cached for ten minutes
func (s *AnalyticsService) Overview(ctx context.Context) (*analytics.OverviewStats, error) {
	var cached analytics.OverviewStats
	hit, err := s.cache.Get(ctx, overviewCacheKey, &cached)
	if err != nil {
		logx.Warnf("analytics cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute overview stats", errx.TypeInternal)
	}

	if err := s.cache.Set(ctx, overviewCacheKey, stats, overviewTTL); err != nil {
		logx.Warnf("analytics cache write failed: %v", err)
	}

	return stats, nil
}

// JobStats aggregates active jobs by type and level
func (s *AnalyticsService) JobStats(ctx context.Context, dateRange analytics.DateRange) ([]analytics.JobStatsRow, error) {
	rows, err := s.repo.JobStats(ctx, dateRange)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute job stats", errx.TypeInternal)
	}
	return rows, nil
}

// ApplicationStats counts applications per day and status
func (s *AnalyticsService) ApplicationStats(ctx context.Context, dateRange analytics.DateRange) ([]analytics.ApplicationStatsRow, error) {
	rows, err := s.repo.ApplicationStats(ctx, dateRange)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute application stats", errx.TypeInternal)
	}
	return rows, nil
}

// TopJobs ranks active jobs by applications, then views
func (s *AnalyticsService) TopJobs(ctx context.Context, limit int) ([]analytics.TopJob, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	rows, err := s.repo.TopJobs(ctx, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute top jobs", errx.TypeInternal)
	}
	return rows, nil
}

// TopRecruiters ranks recruiters by active postings, then applications
func (s *AnalyticsService) TopRecruiters(ctx context.Context, limit int) ([]analytics.TopRecruiter, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	rows, err := s.repo.TopRecruiters(ctx, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute top recruiters", errx.TypeInternal)
	}
	return rows, nil
}

// UserGrowth counts signups per day and role over the trailing window
func (s *AnalyticsService) UserGrowth(ctx context.Context, days int) ([]analytics.UserGrowthRow, error) {
	if days < 1 || days > 365 {
		days = 30
	}

	rows, err := s.repo.UserGrowth(ctx, days)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute user growth", errx.TypeInternal)
	}
	return rows, nil
}

// LocationStats aggregates active postings per location
func (s *AnalyticsService) LocationStats(ctx context.Context) ([]analytics.LocationStat, error) {
	rows, err := s.repo.LocationStats(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute location stats", errx.TypeInternal)
	}
	return rows, nil
}

// ConversionRates ranks viewed active jobs by view-to-application rate
func (s *AnalyticsService) ConversionRates(ctx context.Context) ([]analytics.ConversionRow, error) {
	rows, err := s.repo.ConversionRates(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute conversion rates", errx.TypeInternal)
	}
	return rows, nil
}

// RecruiterPerformance sums one recruiter's postings and breaks each down
// by pipeline stage
func (s *AnalyticsService) RecruiterPerformance(ctx context.Context, recruiterID kernel.UserID) (*analytics.RecruiterPerformance, error) {
	performance, err := s.repo.RecruiterPerformance(ctx, recruiterID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute recruiter performance", errx.TypeInternal)
	}
	return performance, nil
}

// SkillsInDemand counts active postings per skill
func (s *AnalyticsService) SkillsInDemand(ctx context.Context, limit int) ([]analytics.SkillDemand, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, err := s.repo.SkillsInDemand(ctx, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute skills in demand", errx.TypeInternal)
	}
	return rows, nil
}
