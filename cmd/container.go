package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jmoiron/sqlx"
	"github.com/jobpulse/jobpulse/board/activity/activityinfra"
	"github.com/jobpulse/jobpulse/board/analytics/analyticsapi"
	"github.com/jobpulse/jobpulse/board/analytics/analyticsinfra"
	"github.com/jobpulse/jobpulse/board/analytics/analyticssrv"
	"github.com/jobpulse/jobpulse/board/application/applicationapi"
	"github.com/jobpulse/jobpulse/board/application/applicationinfra"
	"github.com/jobpulse/jobpulse/board/application/applicationsrv"
	"github.com/jobpulse/jobpulse/board/application/worker"
	"github.com/jobpulse/jobpulse/board/job/jobapi"
	"github.com/jobpulse/jobpulse/board/job/jobinfra"
	"github.com/jobpulse/jobpulse/board/job/jobsrv"
	"github.com/jobpulse/jobpulse/board/recommendation/recommendationapi"
	"github.com/jobpulse/jobpulse/board/recommendation/recommendationinfra"
	"github.com/jobpulse/jobpulse/board/recommendation/recommendationsrv"
	"github.com/jobpulse/jobpulse/board/search/searchapi"
	"github.com/jobpulse/jobpulse/board/search/searchinfra"
	"github.com/jobpulse/jobpulse/board/search/searchsrv"
	"github.com/jobpulse/jobpulse/board/user/userapi"
	"github.com/jobpulse/jobpulse/board/user/userinfra"
	"github.com/jobpulse/jobpulse/board/user/usersrv"
	"github.com/jobpulse/jobpulse/internal/ai/embeddings"
	"github.com/jobpulse/jobpulse/internal/ai/summarizer"
	"github.com/jobpulse/jobpulse/pkg/cachex"
	"github.com/jobpulse/jobpulse/pkg/fsx"
	"github.com/jobpulse/jobpulse/pkg/fsx/fsxs3"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/logx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	accessTokenTTL   = 24 * time.Hour
	tokenIssuer      = "jobpulse"
	resumeQueueName  = "resume_processing"
	searchIndexName  = "jobs"
	resumeWorkerPool = 3
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB          *sqlx.DB
	Redis       *redis.Client
	ES          *elasticsearch.Client
	SearchIndex *searchinfra.ElasticsearchIndex
	FileSystem  fsx.FileSystem
	S3Client    *s3.Client
	Cache       cachex.Cache

	// Core Services
	TokenService auth.TokenService

	// Domain Services
	UserService           *usersrv.UserService
	JobService            *jobsrv.JobService
	ApplicationService    *applicationsrv.ApplicationService
	SearchService         *searchsrv.SearchService
	RecommendationService *recommendationsrv.RecommendationService
	AnalyticsService      *analyticssrv.AnalyticsService

	// Background Processing
	ResumeWorker *worker.ResumeWorker

	// API Handlers
	UserHandlers           *userapi.Handlers
	JobHandlers            *jobapi.Handlers
	ApplicationHandlers    *applicationapi.Handlers
	SearchHandlers         *searchapi.Handlers
	RecommendationHandlers *recommendationapi.Handlers
	AnalyticsHandlers      *analyticsapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}
	c.Cache = cachex.NewRedisCache(c.Redis)

	// 3. Elasticsearch Connection
	esURL := os.Getenv("ELASTICSEARCH_URL")
	if esURL == "" {
		esURL = "http://localhost:9200"
	}
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		logx.Fatalf("Failed to create Elasticsearch client: %v", err)
	}
	c.ES = esClient

	// 4. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "resumes")

	// 5. Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(jwtSecret, accessTokenTTL, tokenIssuer)
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	analyticsRepo := analyticsinfra.NewPostgresAnalyticsRepository(c.DB)
	recorder := activityinfra.NewPostgresRecorder(c.DB)

	// --- Infrastructure Adapters ---
	searchIndex := searchinfra.NewElasticsearchIndex(c.ES, searchIndexName)
	c.SearchIndex = searchIndex
	resumeQueue := applicationinfra.NewRedisQueue(c.Redis, resumeQueueName)

	openaiKey := os.Getenv("OPENAI_API_KEY")
	embedGen := embeddings.NewGenerator(openaiKey)
	resumeSummarizer := summarizer.NewSummarizer(openaiKey)

	recommender := recommendationinfra.NewHTTPRecommender(recommendationinfra.Config{
		BaseURL: os.Getenv("ML_SERVICE_URL"),
		Enabled: os.Getenv("ML_SERVICE_ENABLED") != "false",
	})

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(userRepo, c.TokenService)
	c.JobService = jobsrv.NewJobService(jobRepo, c.Cache, searchIndex, recorder)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		jobRepo,
		resumeQueue,
		c.Cache,
		recorder,
		embedGen,
	)
	c.SearchService = searchsrv.NewSearchService(searchIndex, jobRepo, recorder)
	c.RecommendationService = recommendationsrv.NewRecommendationService(recommender, c.Cache)
	c.AnalyticsService = analyticssrv.NewAnalyticsService(analyticsRepo, c.Cache)

	// --- Background Processing ---
	resumeProcessor := applicationsrv.NewResumeProcessor(
		applicationRepo,
		c.FileSystem,
		resumeSummarizer,
		embedGen,
		resumeQueue,
	)
	c.ResumeWorker = worker.NewResumeWorker(resumeProcessor, resumeQueue, resumeWorkerPool)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.SearchHandlers = searchapi.NewHandlers(c.SearchService)
	c.RecommendationHandlers = recommendationapi.NewHandlers(c.RecommendationService)
	c.AnalyticsHandlers = analyticsapi.NewHandlers(c.AnalyticsService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}
