package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/glutenpeek/tracker-service/internal/application/catalog"
	"github.com/glutenpeek/tracker-service/internal/application/community"
	"github.com/glutenpeek/tracker-service/internal/application/directory"
	"github.com/glutenpeek/tracker-service/internal/application/timeline"
	"github.com/glutenpeek/tracker-service/internal/config"
	rediscache "github.com/glutenpeek/tracker-service/internal/infrastructure/caching/redis"
	"github.com/glutenpeek/tracker-service/internal/infrastructure/db/postgres"
	rabbitpub "github.com/glutenpeek/tracker-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/glutenpeek/tracker-service/internal/logger"
	"github.com/glutenpeek/tracker-service/internal/transport/http/handlers"
	authmw "github.com/glutenpeek/tracker-service/internal/transport/http/middleware"
	"github.com/glutenpeek/tracker-service/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock implements timeline.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Publisher *rabbitpub.Publisher
	Redis     *rediscache.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Redis != nil {
			_ = app.Redis.Close()
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	events := postgres.NewEventRepo(db)
	days := postgres.NewDayRepo(db)
	products := postgres.NewProductRepo(db)
	posts := postgres.NewPostRepo(db)
	claims := postgres.NewClaimRepo(db)
	users := postgres.NewUserRepo(db)

	var rabbit *rabbitpub.Publisher
	var pub timeline.EventPublisher = timeline.NoopPublisher{}

	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	var redisClient *rediscache.Client
	var cache timeline.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: streak and feed caching disabled")
		} else {
			redisClient = c
			cache = c
		}
	}

	// 2) Application
	tlSvc := timeline.New(events, days, products, sysClock{}, pub, cache, cfg.CacheTTLStreak, cfg.CacheTTLFeed)
	catSvc := catalog.New(products, claims)
	comSvc := community.New(posts)
	dirSvc := directory.New(users, tlSvc)

	// 3) Transport
	tl := handlers.NewTimelineHandler(tlSvc)
	cat := handlers.NewCatalogHandler(catSvc)
	com := handlers.NewCommunityHandler(comSvc)
	dir := handlers.NewDirectoryHandler(dirSvc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler()

	// 4) Router
	httpHandler := router.New(tl, cat, com, dir, z, auth, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Publisher: rabbit,
		Redis:     redisClient,
	}
}
