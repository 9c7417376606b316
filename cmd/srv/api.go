package main

import (
	"log"
	"net/http"

	"github.com/reelify-app/backend/internal/middleware"
	"github.com/reelify-app/backend/pkg/prometheus"
	"github.com/reelify-app/backend/pkg/router"
	"github.com/rs/cors"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()

	ctx := s.newContext()
	s.loadDatabase()
	s.loadRedisClient(ctx)
	s.loadStorage()
	s.loadAuthenticators(ctx)
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	log.Printf("Starting server on address: %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := s.newContext()
	return migrate(ctx, s.db)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())

	rateLimiter := middleware.NewRateLimiter(s.redisClient)
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	optionalAuthVerifier := middleware.NewAuthVerifier().WithAccessToken().WithOptional()
	onlyAdmin := middleware.NewOnlyAdmin(s.userRepo)

	// Auth API
	authRouter := s.router.Branch()
	authRouter.Before(rateLimiter.Middleware())
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleRedirect())
	{
		router.POST(authRouter, "/auth/signup", s.authDomain.Signup)
		router.POST(authRouter, "/auth/signin", s.authDomain.Signin)
		router.GET(authRouter, "/auth/oauth2/login", s.authDomain.OAuth2Login)
		router.GET(authRouter, "/auth/oauth2/callback", s.authDomain.OAuth2Callback)
		router.POST(authRouter, "/auth/oauth2/verify", s.authDomain.OAuth2Verify)
		router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
	}

	// Public APIs. The user id is attached when a token is provided, so the
	// responses can carry per-user fields like membership status.
	publicRouter := s.router.Branch()
	publicRouter.Before(optionalAuthVerifier.Middleware())
	publicRouter.Before(rateLimiter.Middleware())
	{
		router.GET(publicRouter, "/getCampaigns", s.campaignDomain.GetCampaigns)
		router.GET(publicRouter, "/getCampaign", s.campaignDomain.GetCampaign)
		router.GET(publicRouter, "/getPosts", s.postDomain.GetPosts)
		router.GET(publicRouter, "/getPost", s.postDomain.GetPost)
	}

	// These following APIs need authentication with only Access Token.
	onlyTokenAuthRouter := s.router.Branch()
	onlyTokenAuthRouter.Before(authVerifier.Middleware())
	onlyTokenAuthRouter.Before(rateLimiter.Middleware())
	{
		// User API
		router.GET(onlyTokenAuthRouter, "/getMe", s.userDomain.GetMe)
		router.POST(onlyTokenAuthRouter, "/updateMe", s.userDomain.UpdateMe)
		router.GET(onlyTokenAuthRouter, "/getJoinedCampaigns", s.userDomain.GetJoinedCampaigns)
		router.GET(onlyTokenAuthRouter, "/getMyTransactions", s.userDomain.GetMyTransactions)

		// Campaign API
		router.POST(onlyTokenAuthRouter, "/joinCampaign", s.campaignDomain.JoinCampaign)
		router.GET(onlyTokenAuthRouter, "/getCampaignUpdates", s.campaignUpdateDomain.GetCampaignUpdates)

		// Post API
		router.POST(onlyTokenAuthRouter, "/likePost", s.postDomain.LikePost)
		router.POST(onlyTokenAuthRouter, "/reactPost", s.postDomain.ReactPost)
		router.POST(onlyTokenAuthRouter, "/commentPost", s.postDomain.CommentPost)
		router.POST(onlyTokenAuthRouter, "/updateComment", s.postDomain.UpdateComment)
		router.POST(onlyTokenAuthRouter, "/deleteComment", s.postDomain.DeleteComment)

		// File API
		router.POST(onlyTokenAuthRouter, "/uploadImage", s.fileDomain.UploadImage)

		// Chat API
		router.GET(onlyTokenAuthRouter, "/wsChannel", s.chatDomain.ServeChannel)
		router.GET(onlyTokenAuthRouter, "/getMessages", s.chatDomain.GetMessages)
	}

	// These following APIs need an admin permission.
	onlyAdminRouter := s.router.Branch()
	onlyAdminRouter.Before(authVerifier.Middleware())
	onlyAdminRouter.Before(onlyAdmin.Middleware())
	{
		// Campaign API
		router.POST(onlyAdminRouter, "/createCampaign", s.campaignDomain.CreateCampaign)
		router.POST(onlyAdminRouter, "/updateCampaign", s.campaignDomain.UpdateCampaign)
		router.POST(onlyAdminRouter, "/deleteCampaign", s.campaignDomain.DeleteCampaign)
		router.POST(onlyAdminRouter, "/approveCampaignMember", s.campaignDomain.ApproveCampaignMember)
		router.GET(onlyAdminRouter, "/getCampaignMembers", s.campaignDomain.GetCampaignMembers)
		router.POST(onlyAdminRouter, "/createCampaignUpdate", s.campaignUpdateDomain.CreateCampaignUpdate)

		// Post API
		router.POST(onlyAdminRouter, "/createPost", s.postDomain.CreatePost)
		router.POST(onlyAdminRouter, "/deletePost", s.postDomain.DeletePost)

		// Transaction API
		router.POST(onlyAdminRouter, "/createTransaction", s.transactionDomain.CreateTransaction)

		// User API
		router.GET(onlyAdminRouter, "/getUsers", s.userDomain.GetUsers)
		router.POST(onlyAdminRouter, "/updateUser", s.userDomain.UpdateUser)
		router.POST(onlyAdminRouter, "/deleteUser", s.userDomain.DeleteUser)

		// Statistic API
		router.GET(onlyAdminRouter, "/getAnalytics", s.statisticDomain.GetAnalytics)
	}
}
