package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entreprenapp/infrastructure/cache"
	"entreprenapp/infrastructure/db"
	"entreprenapp/infrastructure/ws"
	"entreprenapp/internal/config"
	httpdelivery "entreprenapp/internal/delivery/http"
	wsdelivery "entreprenapp/internal/delivery/websocket"
	"entreprenapp/internal/repository"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/jwt"
	"entreprenapp/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	zlog, err := logger.New(cfg.App.Environment)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer zlog.Sync()
	log := zlog.Sugar()

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warnw("configuration warning", "detail", w)
	}
	if err != nil {
		log.Errorw("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, log)
	if err != nil {
		log.Errorw("database unreachable", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	userRepo := repository.NewUserRepository(store.DB)
	postRepo := repository.NewPostRepository(store.DB)
	commentRepo := repository.NewCommentRepository(store.DB)
	friendRepo := repository.NewFriendRequestRepository(store.DB)
	eventRepo := repository.NewEventRepository(store.DB)
	projectRepo := repository.NewProjectRepository(store.DB)
	challengeRepo := repository.NewChallengeRepository(store.DB)
	messageRepo := repository.NewMessageRepository(store.DB)
	notificationRepo := repository.NewNotificationRepository(store.DB)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         userRepo.EnsureIndexes,
		"messages":      messageRepo.EnsureIndexes,
		"notifications": notificationRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Errorw("ensure indexes", "collection", name, "error", err)
			os.Exit(1)
		}
	}

	// Redis is optional: without it the hub and rate limiter fall back to
	// single-server in-memory implementations.
	var (
		hub     ws.Hub
		counter httpdelivery.Counter
		rdb     *redis.Client
	)
	memCache := cache.NewMemCache(time.Minute)
	defer memCache.Close()

	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()

		hub = ws.NewRedisHub(rdb, cfg.Redis.ServerID, log)
		counter = httpdelivery.NewRedisCounter(rdb)
		log.Infow("redis enabled", "addr", cfg.Redis.Addr, "serverId", cfg.Redis.ServerID)
	} else {
		hub = ws.NewHub(log)
		counter = httpdelivery.NewMemCounter(memCache)
	}
	go hub.Run()

	notifier := usecase.NewNotifier(notificationRepo, hub, log)
	defer notifier.Close()

	tokens := jwt.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	cookies := httpdelivery.NewCookieManager(cfg.IsProduction(), cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	authUc := usecase.NewAuthUsecase(userRepo, tokens, log)
	userUc := usecase.NewUserUsecase(userRepo, friendRepo)
	postUc := usecase.NewPostUsecase(postRepo, commentRepo, notifier)
	commentUc := usecase.NewCommentUsecase(commentRepo, postRepo, notifier)
	friendUc := usecase.NewFriendUsecase(friendRepo, userRepo, notifier)
	eventUc := usecase.NewEventUsecase(eventRepo, notifier)
	projectUc := usecase.NewProjectUsecase(projectRepo, notifier)
	challengeUc := usecase.NewChallengeUsecase(challengeRepo, notifier)
	messageUc := usecase.NewMessageUsecase(messageRepo, userRepo, notifier)
	notificationUc := usecase.NewNotificationUsecase(notificationRepo)
	searchUc := usecase.NewSearchUsecase(userRepo, postRepo)

	wsHandler := wsdelivery.NewHandler(hub, userUc, cfg.App.AllowedOrigins, log)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Cfg:            cfg,
		Log:            log,
		Cookies:        cookies,
		Counter:        counter,
		WSHandler:      wsHandler.Serve,
		AuthUc:         authUc,
		UserUc:         userUc,
		PostUc:         postUc,
		CommentUc:      commentUc,
		FriendUc:       friendUc,
		EventUc:        eventUc,
		ProjectUc:      projectUc,
		ChallengeUc:    challengeUc,
		MessageUc:      messageUc,
		NotificationUc: notificationUc,
		SearchUc:       searchUc,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", server.Addr, "environment", cfg.App.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Infow("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("graceful shutdown failed", "error", err)
	}

	log.Infow("server stopped")
}
