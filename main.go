package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tire-advisor/app/config"
	"github.com/tire-advisor/app/controllers"
	"github.com/tire-advisor/app/services"
	"github.com/tire-advisor/internal/catalog"
	"github.com/tire-advisor/internal/extractor"
	"github.com/tire-advisor/internal/normalizer"
	"github.com/tire-advisor/internal/recommend"
	"github.com/tire-advisor/routes"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load configuration:", err)
	}

	// 2. Logger
	logger := initLogger(cfg.App.Env)
	defer logger.Sync()

	logger.Info("starting tire advisor service")

	// 3. Extraction pipeline
	dicts, err := normalizer.LoadDictionaries()
	if err != nil {
		logger.Fatal("failed to load dictionaries", zap.Error(err))
	}
	textNormalizer := normalizer.NewTextNormalizer()
	specExtractor := extractor.NewSpecExtractor(dicts)

	// 4. Catalog source and recommendation engine
	catalogClient := catalog.NewClient(catalog.ClientConfig{
		FeedURL:   cfg.Catalog.FeedURL,
		Timeout:   time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
		RateLimit: rate.Limit(cfg.Catalog.RatePerSecond),
		Burst:     cfg.Catalog.Burst,
	}, logger)
	catalogStore := catalog.NewStore(catalogClient, time.Duration(cfg.Catalog.TTLMinutes)*time.Minute, logger)
	engine := recommend.NewEngine(catalogStore, logger)

	// 5. Result cache (memory LRU, optionally layered over Redis)
	cacheService := initCache(cfg, logger)
	defer cacheService.Close()

	// 6. Services
	specService := services.NewSpecService(textNormalizer, specExtractor, logger)
	recommendService := services.NewRecommendService(engine, logger)

	// 7. Controllers
	specController := controllers.NewSpecController(specService, cacheService, catalogStore, logger)
	recommendController := controllers.NewRecommendController(recommendService, logger)

	// 8. Router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, specController, recommendController)

	logger.Info("tire advisor service listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// initLogger builds a production or development zap logger by environment.
func initLogger(env string) *zap.Logger {
	var zcfg zap.Config
	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal("cannot initialize logger:", err)
	}
	return logger
}

// initCache builds the configured extraction result cache.
func initCache(cfg *config.Config, logger *zap.Logger) services.ICacheService {
	memoryCache, err := services.NewMemoryCacheService(cfg.Cache.L1Size)
	if err != nil {
		logger.Fatal("failed to initialize memory cache", zap.Error(err))
	}

	if !cfg.Cache.UseRedis {
		return memoryCache
	}

	redisCache, err := services.NewRedisCacheService(cfg.Cache.RedisURL, logger)
	if err != nil {
		logger.Warn("redis unavailable, continuing with memory cache only", zap.Error(err))
		return memoryCache
	}

	return services.NewHybridCacheService(memoryCache, redisCache, logger)
}
