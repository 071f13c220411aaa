package server

import (
	"log"
	"strings"
	"time"

	"questlab.io/studiosite/internal/cache"
	"questlab.io/studiosite/internal/config"
	"questlab.io/studiosite/internal/jobs"
	"questlab.io/studiosite/internal/middleware"
	"questlab.io/studiosite/pkg/mailer"
	"questlab.io/studiosite/pkg/storage"

	assetHttp "questlab.io/studiosite/internal/modules/asset/delivery/http"
	assetService "questlab.io/studiosite/internal/modules/asset/service"

	authHttp "questlab.io/studiosite/internal/modules/auth/delivery/http"
	authRepo "questlab.io/studiosite/internal/modules/auth/repository"
	authService "questlab.io/studiosite/internal/modules/auth/service"

	contactHttp "questlab.io/studiosite/internal/modules/contact/delivery/http"
	contactRepo "questlab.io/studiosite/internal/modules/contact/repository"
	contactService "questlab.io/studiosite/internal/modules/contact/service"

	courseHttp "questlab.io/studiosite/internal/modules/course/delivery/http"
	courseRepo "questlab.io/studiosite/internal/modules/course/repository"
	courseService "questlab.io/studiosite/internal/modules/course/service"

	gameHttp "questlab.io/studiosite/internal/modules/game/delivery/http"
	gameRepo "questlab.io/studiosite/internal/modules/game/repository"
	gameService "questlab.io/studiosite/internal/modules/game/service"

	inquiryHttp "questlab.io/studiosite/internal/modules/inquiry/delivery/http"
	inquiryRepo "questlab.io/studiosite/internal/modules/inquiry/repository"
	inquiryService "questlab.io/studiosite/internal/modules/inquiry/service"

	jobHttp "questlab.io/studiosite/internal/modules/job/delivery/http"
	jobRepo "questlab.io/studiosite/internal/modules/job/repository"
	jobService "questlab.io/studiosite/internal/modules/job/service"

	resumeHttp "questlab.io/studiosite/internal/modules/resume/delivery/http"
	resumeRepo "questlab.io/studiosite/internal/modules/resume/repository"
	resumeService "questlab.io/studiosite/internal/modules/resume/service"

	searchHttp "questlab.io/studiosite/internal/modules/search/delivery/http"
	searchService "questlab.io/studiosite/internal/modules/search/service"

	settingsHttp "questlab.io/studiosite/internal/modules/settings/delivery/http"
	settingsRepo "questlab.io/studiosite/internal/modules/settings/repository"
	settingsService "questlab.io/studiosite/internal/modules/settings/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	cron        *cron.Cron
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	store, err := storage.NewOSSStorage()
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	mail, err := mailer.NewSendGridMailer()
	if err != nil {
		// The site works without email; submissions are still stored.
		log.Printf("email notifications disabled: %v", err)
		mail = nil
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchSvc := searchService.NewSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	invalidator := cache.NewInvalidator(redisClient)

	adminRepo := authRepo.NewAdminRepository(db)
	authSvc := authService.NewAuthService(adminRepo)
	authHandler := authHttp.NewAuthHandler(authSvc)

	coursesRepo := courseRepo.NewCourseRepository(db)
	courseSvc := courseService.NewCourseService(coursesRepo, invalidator, searchSvc)
	courseHandler := courseHttp.NewCourseHandler(courseSvc)

	gamesRepo := gameRepo.NewGameRepository(db)
	gameSvc := gameService.NewGameService(gamesRepo, invalidator, searchSvc)
	gameHandler := gameHttp.NewGameHandler(gameSvc)

	jobsRepo := jobRepo.NewJobRepository(db)
	jobSvc := jobService.NewJobService(jobsRepo, invalidator, searchSvc)
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	contactsRepo := contactRepo.NewContactRepository(db)
	contactSvc := contactService.NewContactService(contactsRepo, mail, cfg.EmailNotifyTo)
	contactHandler := contactHttp.NewContactHandler(contactSvc)

	inquiriesRepo := inquiryRepo.NewInquiryRepository(db)
	inquirySvc := inquiryService.NewInquiryService(inquiriesRepo, coursesRepo, mail, cfg.EmailNotifyTo)
	inquiryHandler := inquiryHttp.NewInquiryHandler(inquirySvc)

	resumesRepo := resumeRepo.NewResumeRepository(db)
	resumeSvc := resumeService.NewResumeService(resumesRepo, store, mail, cfg.EmailNotifyTo)
	resumeHandler := resumeHttp.NewResumeHandler(resumeSvc)

	settingsRepository := settingsRepo.NewSettingsRepository(db)
	settingsSvc := settingsService.NewSettingsService(settingsRepository, invalidator)
	settingsHandler := settingsHttp.NewSettingsHandler(settingsSvc)

	assetSvc := assetService.NewAssetService(store)
	assetHandler := assetHttp.NewAssetHandler(assetSvc)

	scheduler := cron.New()
	reaper := jobs.NewResumeReaper(resumesRepo, store)
	if err := reaper.Schedule(scheduler); err != nil {
		log.Printf("failed to schedule resume reaper: %v", err)
	}

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(adminRepo)

	router.GET("/image/:folder/*file", assetHandler.ProxyImage)

	api := router.Group("/api")

	// Public content and form routes.
	api.GET("/courses", courseHandler.ListPublished)
	api.GET("/courses/:slug", courseHandler.GetBySlug)
	api.GET("/games", gameHandler.ListPublished)
	api.GET("/games/:slug", gameHandler.GetBySlug)
	api.GET("/jobs", jobHandler.ListPublished)
	api.GET("/jobs/:slug", jobHandler.GetBySlug)
	api.GET("/settings", settingsHandler.GetPublic)
	api.GET("/search", searchHandler.Search)
	api.POST("/contact", contactHandler.Submit)
	api.POST("/inquiries", inquiryHandler.Submit)
	api.POST("/resume", resumeHandler.Submit)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authMiddleware.RequireAdmin(), authHandler.Me)
	}

	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.GET("/courses", courseHandler.ListAdmin)
		admin.POST("/courses", courseHandler.Create)
		admin.GET("/courses/:id", courseHandler.GetByID)
		admin.PATCH("/courses/:id", courseHandler.Update)
		admin.DELETE("/courses/:id", courseHandler.Delete)

		admin.GET("/games", gameHandler.ListAdmin)
		admin.POST("/games", gameHandler.Create)
		admin.GET("/games/:id", gameHandler.GetByID)
		admin.PATCH("/games/:id", gameHandler.Update)
		admin.DELETE("/games/:id", gameHandler.Delete)

		admin.GET("/job-postings", jobHandler.ListAdmin)
		admin.POST("/job-postings", jobHandler.Create)
		admin.GET("/job-postings/:id", jobHandler.GetByID)
		admin.PATCH("/job-postings/:id", jobHandler.Update)
		admin.DELETE("/job-postings/:id", jobHandler.Delete)

		admin.GET("/inquiries", inquiryHandler.List)
		admin.GET("/inquiries/:id", inquiryHandler.GetByID)
		admin.PATCH("/inquiries/:id", inquiryHandler.UpdateStatus)

		admin.GET("/contact-messages", contactHandler.List)
		admin.DELETE("/contact-messages/:id", contactHandler.Delete)

		admin.GET("/resumes", resumeHandler.List)
		admin.GET("/resumes/:id", resumeHandler.GetByID)
		admin.GET("/resumes/:id/download", resumeHandler.Download)
		admin.PATCH("/resumes/:id", resumeHandler.UpdateStatus)
		admin.DELETE("/resumes/:id", resumeHandler.Delete)

		admin.GET("/settings", settingsHandler.Get)
		admin.PATCH("/settings", settingsHandler.Update)

		admin.POST("/upload", assetHandler.Upload)
		admin.POST("/delete-image", assetHandler.DeleteImage)
		admin.POST("/signed-url", assetHandler.SignedURL)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		cron:        scheduler,
	}
}

func (s *Server) Run(addr string) error {
	s.cron.Start()
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-api-key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
