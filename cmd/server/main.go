// Package main runs the shoot planning HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shootdeck/backend/config"
	"github.com/shootdeck/backend/internal/analytics"
	"github.com/shootdeck/backend/internal/auth"
	"github.com/shootdeck/backend/internal/costumes"
	"github.com/shootdeck/backend/internal/emaillog"
	"github.com/shootdeck/backend/internal/equipment"
	"github.com/shootdeck/backend/internal/integrations"
	"github.com/shootdeck/backend/internal/locations"
	"github.com/shootdeck/backend/internal/middleware"
	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/personnel"
	"github.com/shootdeck/backend/internal/props"
	"github.com/shootdeck/backend/internal/shoots"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/database"
	redispkg "github.com/shootdeck/backend/pkg/redis"
	"github.com/shootdeck/backend/pkg/response"
	"github.com/shootdeck/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis only backs the places autocomplete cache, so a missing Redis
	// degrades to uncached lookups instead of refusing to start.
	var cache *redispkg.Client
	if rdb, err := redispkg.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger); err != nil {
		logger.Warn("redis disabled", zap.Error(err))
	} else {
		cache = rdb
		defer rdb.Close()
	}

	var s3Client *storage.S3
	if cfg.AWS.UploadsBucket != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			UploadsBucket:        cfg.AWS.UploadsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Teams and identity resolution
	teamRepo := teams.NewRepository(pool)
	teamResolver := teams.NewResolver(teamRepo)
	teamHandler := teams.NewHandler(teamRepo, teamResolver, logger)

	// Catalog
	personnelHandler := personnel.NewHandler(personnel.NewRepository(pool))
	equipmentHandler := equipment.NewHandler(equipment.NewRepository(pool))
	locationHandler := locations.NewHandler(locations.NewRepository(pool))
	propHandler := props.NewHandler(props.NewRepository(pool))
	costumeHandler := costumes.NewHandler(costumes.NewRepository(pool))

	// Shoots
	shootRepo := shoots.NewRepository(pool)
	shootHandler := shoots.NewHandler(shootRepo, shoots.NewReconciler(pool), s3Client, logger)

	// Analytics
	analyticsHandler := analytics.NewHandler(pool)

	// Integrations
	emailLogRepo := emaillog.NewRepository(pool)
	integrationsHandler := integrations.NewHandler(
		integrations.NewCalendarClient(cfg.Google),
		integrations.NewDocsClient(cfg.Google),
		integrations.NewPlacesClient(cfg.Google),
		integrations.NewMailer(cfg.Email),
		s3Client,
		shootRepo,
		emailLogRepo,
		cache,
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.JWT(jwtService), authHandler.Me)
	}

	// Public shoot sharing (no auth, is_public gated)
	router.GET("/api/public/shoots/:id", shootHandler.GetPublic)

	// Protected API (JWT required)
	api := router.Group("/api")
	api.Use(middleware.JWT(jwtService))

	// Team management resolves its own team from the route or the invite,
	// so it sits outside the active-team context.
	team := api.Group("/team")
	{
		team.GET("", teamHandler.GetCurrent)
		team.POST("", teamHandler.Create)
		team.POST("/join", teamHandler.Join)
		team.DELETE("/leave", teamHandler.Leave)
		team.POST("/switch", teamHandler.Switch)
		team.PATCH("/:id", teamHandler.Update)
		team.DELETE("/:id", teamHandler.Delete)
		team.GET("/:id/members", teamHandler.ListMembers)
		team.PATCH("/:id/members/:userId", teamHandler.UpdateMemberRole)
		team.DELETE("/:id/members/:userId", teamHandler.RemoveMember)
		team.GET("/:id/invite", teamHandler.GetInvite)
		team.POST("/:id/invite", teamHandler.CreateInvite)
	}

	// Everything below runs inside the caller's active team.
	scoped := api.Group("")
	scoped.Use(teams.Context(teamResolver))
	manage := scoped.Group("")
	manage.Use(teams.RequireRole(models.TeamRoleAdmin))
	{
		scoped.GET("/team/stats", analyticsHandler.GetTeamStats)

		// Catalog CRUD
		scoped.GET("/personnel", personnelHandler.List)
		scoped.GET("/personnel/:id", personnelHandler.Get)
		manage.POST("/personnel", personnelHandler.Create)
		manage.PATCH("/personnel/:id", personnelHandler.Update)
		manage.DELETE("/personnel/:id", personnelHandler.Delete)

		scoped.GET("/equipment", equipmentHandler.List)
		scoped.GET("/equipment/:id", equipmentHandler.Get)
		manage.POST("/equipment", equipmentHandler.Create)
		manage.PATCH("/equipment/:id", equipmentHandler.Update)
		manage.DELETE("/equipment/:id", equipmentHandler.Delete)

		scoped.GET("/locations", locationHandler.List)
		scoped.GET("/locations/:id", locationHandler.Get)
		manage.POST("/locations", locationHandler.Create)
		manage.PATCH("/locations/:id", locationHandler.Update)
		manage.DELETE("/locations/:id", locationHandler.Delete)

		scoped.GET("/props", propHandler.List)
		scoped.GET("/props/:id", propHandler.Get)
		manage.POST("/props", propHandler.Create)
		manage.PATCH("/props/:id", propHandler.Update)
		manage.DELETE("/props/:id", propHandler.Delete)

		scoped.GET("/costumes", costumeHandler.List)
		scoped.GET("/costumes/:id", costumeHandler.Get)
		manage.POST("/costumes", costumeHandler.Create)
		manage.PATCH("/costumes/:id", costumeHandler.Update)
		manage.DELETE("/costumes/:id", costumeHandler.Delete)

		// Shoots
		scoped.GET("/shoots", shootHandler.List)
		scoped.GET("/shoots/:id", shootHandler.Get)
		manage.POST("/shoots", shootHandler.Create)
		manage.PATCH("/shoots/:id", shootHandler.Update)
		manage.DELETE("/shoots/:id", shootHandler.Delete)
		manage.PATCH("/shoots/:id/resources", shootHandler.Resources)

		// Shoot associations
		scoped.GET("/shoots/:id/equipment", shootHandler.ListEquipment)
		manage.POST("/shoots/:id/equipment", shootHandler.AddEquipment)
		scoped.GET("/shoots/:id/props", shootHandler.ListProps)
		manage.POST("/shoots/:id/props", shootHandler.AddProp)
		scoped.GET("/shoots/:id/costumes", shootHandler.ListCostumes)
		manage.POST("/shoots/:id/costumes", shootHandler.AddCostume)
		scoped.GET("/shoots/:id/participants", shootHandler.ListParticipants)
		manage.POST("/shoots/:id/participants", shootHandler.AddParticipant)
		scoped.GET("/shoots/:id/references", shootHandler.ListReferences)
		manage.POST("/shoots/:id/references", shootHandler.AddReference)
		manage.DELETE("/participants/:id", shootHandler.DeleteParticipant)
		manage.DELETE("/references/:id", shootHandler.DeleteReference)

		// Integrations
		manage.POST("/integrations/calendar/events", integrationsHandler.CreateCalendarEvent)
		manage.POST("/integrations/docs/export", integrationsHandler.ExportDocs)
		manage.POST("/integrations/email/reminder", integrationsHandler.SendReminder)
		scoped.GET("/shoots/:id/email-logs", integrationsHandler.ListEmailLogs)
		scoped.GET("/integrations/places/autocomplete", integrationsHandler.PlacesAutocomplete)
		manage.POST("/integrations/uploads/sign", integrationsHandler.SignUpload)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
