package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/reelify-app/backend/config"
	"github.com/reelify-app/backend/internal/domain"
	"github.com/reelify-app/backend/internal/repository"
	"github.com/reelify-app/backend/pkg/authenticator"
	"github.com/reelify-app/backend/pkg/logger"
	"github.com/reelify-app/backend/pkg/router"
	"github.com/reelify-app/backend/pkg/storage"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/reelify-app/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	userRepo           repository.UserRepository
	oauth2Repo         repository.OAuth2Repository
	refreshTokenRepo   repository.RefreshTokenRepository
	campaignRepo       repository.CampaignRepository
	campaignMemberRepo repository.CampaignMemberRepository
	postRepo           repository.PostRepository
	postLikeRepo       repository.PostLikeRepository
	postReactionRepo   repository.PostReactionRepository
	commentRepo        repository.CommentRepository
	transactionRepo    repository.TransactionRepository
	campaignUpdateRepo repository.CampaignUpdateRepository
	chatMessageRepo    repository.ChatMessageRepository

	authDomain           domain.AuthDomain
	userDomain           domain.UserDomain
	campaignDomain       domain.CampaignDomain
	postDomain           domain.PostDomain
	transactionDomain    domain.TransactionDomain
	campaignUpdateDomain domain.CampaignUpdateDomain
	statisticDomain      domain.StatisticDomain
	fileDomain           domain.FileDomain
	chatDomain           domain.ChatDomain

	oauth2Services []authenticator.IOAuth2Service

	db          *gorm.DB
	logger      logger.Logger
	storage     storage.Storage
	redisClient xredis.Client
	router      *router.Router

	configs *config.Configs
	server  *http.Server
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func getEnvInt64(key string, fallback int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}

	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func (s *srv) loadConfig() {
	// A missing .env file is fine, the environment may carry everything.
	_ = godotenv.Load()

	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "reelify"),
			Password: getEnv("MYSQL_PASSWORD", "reelify"),
			Database: getEnv("MYSQL_DATABASE", "reelify"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("HOST", "localhost"),
				Port: getEnv("PORT", "8080"),
				Cert: getEnv("SERVER_CERT", ""),
				Key:  getEnv("SERVER_KEY", ""),
			},
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 10),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Minute*5),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvDuration("REFRESH_TOKEN_DURATION", time.Hour*24*7),
			},
			Google: config.OAuth2Config{
				Name:         "google",
				Issuer:       "https://accounts.google.com",
				ClientID:     getEnv("OAUTH2_GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("OAUTH2_GOOGLE_CLIENT_SECRET", ""),
				IDField:      "email",
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "secret"),
			Name:   "auth_session",
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
			Bucket:         getEnv("STORAGE_BUCKET", "reelify"),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLE", "true") == "true",
		},
		File: config.FileConfigs{
			MaxSize:   getEnvInt64("MAX_UPLOAD_FILE_SIZE", 2<<20),
			MaxMemory: getEnvInt64("MAX_UPLOAD_FILE_MEMORY", 2<<20),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		RateLimit: config.RateLimitConfigs{
			Limit:  getEnvInt("RATE_LIMIT", 100),
			Window: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger()
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient(ctx context.Context) {
	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadAuthenticators(ctx context.Context) {
	google, err := authenticator.NewOAuth2Service(ctx, *s.configs, s.configs.Auth.Google)
	if err != nil {
		panic(err)
	}

	s.oauth2Services = []authenticator.IOAuth2Service{google}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.oauth2Repo = repository.NewOAuth2Repository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.campaignRepo = repository.NewCampaignRepository(s.redisClient)
	s.campaignMemberRepo = repository.NewCampaignMemberRepository()
	s.postRepo = repository.NewPostRepository()
	s.postLikeRepo = repository.NewPostLikeRepository()
	s.postReactionRepo = repository.NewPostReactionRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.campaignUpdateRepo = repository.NewCampaignUpdateRepository()
	s.chatMessageRepo = repository.NewChatMessageRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(
		s.userRepo, s.refreshTokenRepo, s.oauth2Repo, s.oauth2Services)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.oauth2Repo, s.refreshTokenRepo,
		s.campaignRepo, s.campaignMemberRepo, s.transactionRepo)
	s.campaignDomain = domain.NewCampaignDomain(
		s.campaignRepo, s.campaignMemberRepo, s.userRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.postLikeRepo, s.postReactionRepo, s.commentRepo, s.userRepo)
	s.transactionDomain = domain.NewTransactionDomain(
		s.transactionRepo, s.userRepo, s.campaignRepo)
	s.campaignUpdateDomain = domain.NewCampaignUpdateDomain(
		s.campaignUpdateRepo, s.campaignRepo, s.userRepo, s.campaignMemberRepo)
	s.statisticDomain = domain.NewStatisticDomain(
		s.userRepo, s.campaignRepo, s.campaignMemberRepo, s.postRepo, s.transactionRepo)
	s.fileDomain = domain.NewFileDomain(s.storage)
	s.chatDomain = domain.NewChatDomain(
		s.chatMessageRepo, s.campaignRepo, s.userRepo, s.campaignMemberRepo, s.redisClient)
}

func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	return ctx
}
