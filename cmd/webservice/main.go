package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/adiwijaya/storefront-service/config"
	"github.com/adiwijaya/storefront-service/internal/controller"
	s3infra "github.com/adiwijaya/storefront-service/internal/infrastructure/blob/s3"
	"github.com/adiwijaya/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/adiwijaya/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/adiwijaya/storefront-service/internal/infrastructure/tracing"
	custommiddleware "github.com/adiwijaya/storefront-service/internal/middleware"
	"github.com/adiwijaya/storefront-service/internal/repository"
	"github.com/adiwijaya/storefront-service/internal/service"
	pkgdto "github.com/adiwijaya/storefront-service/pkg/dto"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()
	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", config.MongoDBConfig.DBHost, config.MongoDBConfig.DBPort), config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	defer db.Client().Disconnect(context.Background())

	s3Client, err := s3infra.ConnectToS3(context.Background(), config.BlobConfig)
	if err != nil {
		panic(err)
	}

	kafkaProducer := kafka.CreateKafkaProducer(config)
	kafkaReader := kafka.CreateKafkaReader(config)

	e := echo.New()
	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("storefront-service")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	e.Use(custommiddleware.Logger)

	// Empty prefix so that metrics are easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")

	IsLoggedIn := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(config.JWTSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			errorResponse := map[string]interface{}{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"errors":  nil,
			}
			return c.JSON(http.StatusUnauthorized, errorResponse)
		},
	})

	mongoDBRepo := repository.CreateNewMongoDBRepository(db)
	blobRepo := repository.CreateNewS3Repository(s3Client, config.BlobConfig)
	svc := service.CreateProductService(mongoDBRepo, blobRepo, *config, kafkaProducer)
	catalog := service.CreateCatalogSync(mongoDBRepo, kafkaReader)
	controller.CreateProductController(g, svc, catalog, IsLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	if err := catalog.Refresh(context.Background()); err != nil {
		log.Error().Err(err).Msg("Initial catalog refresh failed")
	}

	go catalog.ConsumeEvent()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
