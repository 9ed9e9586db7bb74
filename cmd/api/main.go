package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/velourstudio/salon-scheduler/internal/config"
	dbpkg "github.com/velourstudio/salon-scheduler/internal/db"
	"github.com/velourstudio/salon-scheduler/internal/media"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/routes"
	"github.com/velourstudio/salon-scheduler/internal/sms"
)

func main() {

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
	}

	processor, err := payments.NewMercadoPago(cfg.MPAccessToken, cfg.MPPublicKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize payment processor")
	}

	gateway := sms.NewHTTPProvider(
		cfg.SMSProviderURL,
		cfg.SMSProviderToken,
		cfg.SMSFromNumber,
		logger,
	)

	uploader := media.NewUploader(
		cfg.AWSRegion,
		cfg.AWSAccessKey,
		cfg.AWSSecretKey,
		cfg.MediaBucket,
		logger,
	)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:        db,
		Redis:     rdb,
		Processor: processor,
		SMS:       gateway,
		Uploader:  uploader,
		Logger:    logger,
	})

	logger.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
