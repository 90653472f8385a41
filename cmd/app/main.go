package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"checkout/cmd"
	checkouthttp "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/postgres/steprepo"
	"checkout/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStaleAfter = 30 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(
		app.CreateGetStaleSessionsQueryHandler(),
		staleAfter(configs),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		StaleAfterMinutes: goDotEnvVariable("STALE_AFTER_MINUTES"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(&steprepo.StepDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func staleAfter(configs cmd.Config) time.Duration {
	minutes, err := strconv.Atoi(configs.StaleAfterMinutes)
	if err != nil || minutes <= 0 {
		return defaultStaleAfter
	}
	return time.Duration(minutes) * time.Minute
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := checkouthttp.NewServer(
		app.CreateInitializeStepsCommandHandler(),
		app.CreateValidateStepCommandHandler(),
		app.CreateMoveToNextStepCommandHandler(),
		app.CreateMoveToPreviousStepCommandHandler(),
		app.CreateJumpToStepCommandHandler(),
		app.CreateTrackNavigationCommandHandler(),
		app.CreateGetStepProgressQueryHandler(),
		app.CreateGetStepAnalyticsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
