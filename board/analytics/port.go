package analytics

import (
	"context"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type Repository interface {
	// Overview computes the headline counters in one round-trip
	Overview(ctx context.Context) (*OverviewStats, error)

	// JobStats aggregates active jobs by type and level within a range
	JobStats(ctx context.Context, dateRange DateRange) ([]JobStatsRow, error)

	// ApplicationStats counts applications per day and status within a range
	ApplicationStats(ctx context.Context, dateRange DateRange) ([]ApplicationStatsRow, error)

	// TopJobs ranks active jobs by applications, then views
	TopJobs(ctx context.Context, limit int) ([]TopJob, error)

	// TopRecruiters ranks recruiters by active postings, then applications
	TopRecruiters(ctx context.Context, limit int) ([]TopRecruiter, error)

	// SkillsInDemand counts active postings per skill
	SkillsInDemand(ctx context.Context, limit int) ([]SkillDemand, error)

	// UserGrowth counts signups per day and role over the trailing window
	UserGrowth(ctx context.Context, days int) ([]UserGrowthRow, error)

	// LocationStats aggregates active postings per location
	LocationStats(ctx context.Context) ([]LocationStat, error)

	// ConversionRates ranks viewed active jobs by view-to-application rate
	ConversionRates(ctx context.Context) ([]ConversionRow, error)

	// RecruiterPerformance sums one recruiter's postings and breaks each
	// down by pipeline stage
	RecruiterPerformance(ctx context.Context, recruiterID kernel.UserID) (*RecruiterPerformance, error)
}
