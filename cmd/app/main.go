package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"gasexpress/cmd"
	httpin "gasexpress/internal/adapters/in/http"
	"gasexpress/internal/adapters/out/postgres/driverrepo"
	"gasexpress/internal/adapters/out/postgres/orderrepo"
	"gasexpress/internal/adapters/out/postgres/productrepo"
	"gasexpress/internal/adapters/out/postgres/tenantrepo"
	"gasexpress/internal/jobs"
	"gasexpress/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	root := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	defer func() {
		if err := root.Close(); err != nil {
			logger.Error("Failed to close composition root", "error", err)
		}
	}()

	jobManager := jobs.NewJobManager(
		root.CreateMoveDriversCommandHandler(),
		root.TenantRepository(),
		root.StateSyncer(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		GeocoderBaseURL:    goDotEnvVariable("GEOCODER_BASE_URL"),
		DefaultCenterLat:   goDotEnvVariable("DEFAULT_CENTER_LAT"),
		DefaultCenterLng:   goDotEnvVariable("DEFAULT_CENTER_LNG"),
		KafkaBrokers:       goDotEnvVariable("KAFKA_BROKERS"),
		KafkaSnapshotTopic: goDotEnvVariable("KAFKA_SNAPSHOT_TOPIC"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		SyncDebounce:       goDotEnvVariable("SYNC_DEBOUNCE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&tenantrepo.TenantDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&driverrepo.DriverDTO{},
		&productrepo.ProductDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(metrics.HTTPMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateCreateDriverCommandHandler(),
		root.CreateSetDriverShiftCommandHandler(),
		root.CreateCreateProductCommandHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
		root.CreateGetDriversQueryHandler(),
		root.CreateGetLowStockProductsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
