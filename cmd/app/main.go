package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"pizzeria/cmd"
	httpadapter "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/in/ws"
	"pizzeria/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	go root.Hub().Run()
	defer root.Hub().Stop()
	defer root.Router().Stop()

	jobManager := jobs.NewJobManager(
		root.CreateExpirePendingOrdersCommandHandler(),
		pendingOrderTTL(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:              goDotEnvVariable("JWT_SECRET"),
		PendingOrderTTLMinutes: goDotEnvVariable("PENDING_ORDER_TTL_MINUTES"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func pendingOrderTTL(configs cmd.Config) time.Duration {
	minutes, err := strconv.Atoi(configs.PendingOrderTTLMinutes)
	if err != nil || minutes <= 0 {
		log.Fatalf("PENDING_ORDER_TTL_MINUTES must be a positive integer, got %q", configs.PendingOrderTTLMinutes)
	}
	return time.Duration(minutes) * time.Minute
}

func startWebServer(root cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	restServer := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateConfirmPaymentCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateAssignDriverCommandHandler(),
		root.CreateUpdateDeliveryStatusCommandHandler(),
		root.CreateUpdateDeliveryLocationCommandHandler(),
		root.CreateSubmitReviewCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
	)
	restServer.RegisterRoutes(e, configs.JWTSecret)

	wsServer := ws.NewServer(root.Hub(), root.Authorizer(), configs.JWTSecret, logger)
	wsServer.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
