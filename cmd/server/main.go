package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalconsult-backend/config"
	"legalconsult-backend/handlers"
	"legalconsult-backend/logger"
	"legalconsult-backend/observability"
	"legalconsult-backend/repository"
	"legalconsult-backend/service"
	"legalconsult-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, logger.NewZapAdapter(zl)); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewConsultationMetrics(reg)

	// Postgres is optional; without it there is no history or preferences
	db := initPostgres(ctx, cfg.Database.URL, log)
	if db != nil {
		defer db.Close()
	}

	// Reference set: knowledge pack, then database, then built-in seed
	var packStore storage.Storage
	if cfg.Knowledge.PackPath != "" {
		s, err := storage.NewStorage(ctx, cfg.Storage.StorageOptions())
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		packStore = s
	}
	var lister repository.EntryLister
	if db != nil {
		lister = repository.NewLegalReferenceRepository(db)
	}
	loaded, err := repository.LoadReferenceEntries(ctx, packStore, cfg.Knowledge.PackPath, lister)
	if err != nil {
		return fmt.Errorf("failed to load legal references: %w", err)
	}
	if loaded.DatabaseErr != nil {
		log.WithError(loaded.DatabaseErr).Warn("legal_references unavailable, using built-in seed", nil)
	}
	references := repository.NewReferenceStore(loaded.Entries)
	log.Info("legal references loaded", map[string]interface{}{
		"source":     string(loaded.Source),
		"entries":    references.Len(),
		"categories": references.Categories(),
	})

	generator, closeGenerator, err := initGenerator(ctx, cfg.Generation)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	defer closeGenerator()

	opts := []service.ConsultationServiceOption{
		service.ConsultWithReferenceStore(references),
		service.ConsultWithGenerator(generator),
		service.ConsultWithMetrics(metrics),
		service.ConsultWithLogger(log),
		service.ConsultWithGenerationTimeout(cfg.Generation.Timeout),
		service.ConsultWithEnhancementTimeout(cfg.Enhancer.Timeout),
	}

	if cfg.Enhancer.URL != "" {
		opts = append(opts, service.ConsultWithEnhancer(service.NewHTTPEnhancer(cfg.Enhancer.URL, cfg.Enhancer.Timeout)))
		log.Info("response enhancer enabled", map[string]interface{}{"url": cfg.Enhancer.URL})
	}

	var firmSource service.FirmKnowledgeSource = service.PlaceholderFirmKnowledge{}
	if db != nil {
		consultations := repository.NewConsultationRepository(db)
		firmSource = service.NewHistoryFirmKnowledge(consultations, service.SystemClock{})
		opts = append(opts,
			service.ConsultWithRecorder(consultations),
			service.ConsultWithPreferences(service.NewPreferenceResolver(repository.NewPreferenceRepository(db), log)),
		)
	}

	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, firm context will be derived per request until it recovers", nil)
		}
		opts = append(opts, service.ConsultWithFirmContext(
			service.NewRedisFirmContextCache(rdb, firmSource, cfg.Cache.TTL, metrics, log),
		))
	default:
		opts = append(opts, service.ConsultWithFirmContext(service.NewFirmContextCache(
			firmSource,
			service.FirmCacheWithTTL(cfg.Cache.TTL),
			service.FirmCacheWithMetrics(metrics),
		)))
	}

	consultationService := service.NewConsultationService(opts...)
	consultationHandler := handlers.NewConsultationHandler(consultationService, log)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"references": references.Len(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	consultationHandler.RegisterRoutes(r.Group("/api"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", map[string]interface{}{
			"port":     cfg.Server.Port,
			"provider": cfg.Generation.Provider,
			"model":    cfg.Generation.Model,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initPostgres(ctx context.Context, connString string, log logger.Logger) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.WithError(err).Warn("invalid database configuration, running without persistence", nil)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("postgres unreachable, running without persistence", nil)
		pool.Close()
		return nil
	}

	log.Info("postgres connection established", nil)
	return pool
}

func initGenerator(ctx context.Context, cfg config.GenerationConfig) (service.Generator, func(), error) {
	settings := service.GenerationSettings{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		return service.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, settings), func() {}, nil
	default:
		if cfg.GeminiAPIKey == "" {
			return nil, nil, errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, nil, err
		}
		return service.NewGeminiGenerator(client, settings), func() { client.Close() }, nil
	}
}
