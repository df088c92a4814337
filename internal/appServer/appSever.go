// launching the server, storage, kafka, redis
package appServer

import (
	"context"
	"crypto/tls"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"imagechart/config"
	"imagechart/internal/database"
	"imagechart/internal/database/redis"
	"imagechart/internal/pkg/compressor"
	"imagechart/internal/pkg/events"
	"imagechart/internal/pkg/storage"
	"imagechart/internal/service"
	"imagechart/internal/transport"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	fileStorage, err := storage.New(&cfg.Storage)
	if err != nil {
		logrus.Fatalf("error occured while initializing storage: %s", err.Error())
	}

	imgRepo := database.NewImageRepository(fileStorage)
	catRepo := database.NewCategoryRepository(fileStorage)

	cache := newCategoryCache(&cfg.Redis)
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	comp := compressor.NewImageCompressor(
		int64(cfg.Upload.CompressThresholdKB)*1024,
		cfg.Upload.MaxWidth,
		cfg.Upload.Quality,
	)

	imgService := service.NewImageService(imgRepo, catRepo, cache, producer, comp)
	catService := service.NewCategoryService(catRepo, imgRepo, cache, producer)

	imgHandler := transport.NewImageHandler(imgService)
	catHandler := transport.NewCategoryHandler(catService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(imgHandler, catHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}

// newCategoryCache connects to redis; an unreachable or unconfigured
// redis degrades to no caching instead of failing startup.
func newCategoryCache(cfg *config.RedisConfig) *redis.CacheRepository {
	if cfg.Addr == "" {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis unavailable, category cache disabled: %s", err.Error())
		return nil
	}
	return redis.NewCacheRepository(client, cfg.CacheTTL)
}
