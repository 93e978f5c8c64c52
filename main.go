package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwellcms/inkwell-backend/api"
	"github.com/inkwellcms/inkwell-backend/config"
	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/models"
	"github.com/inkwellcms/inkwell-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	connStr := config.GetString(cfg, "DATABASE_DSN", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(cfg, "DB_HOST", "localhost"),
			config.GetString(cfg, "DB_USER", "postgres"),
			config.GetString(cfg, "DB_PASSWORD", ""),
			config.GetString(cfg, "DB_NAME", "inkwell"),
			config.GetString(cfg, "DB_PORT", "5432"),
			config.GetString(cfg, "DB_SSLMODE", "disable"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		fmt.Printf("Error enabling uuid-ossp extension: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Tag{}, &models.Post{}); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	if replicaDSN := config.GetString(cfg, "DATABASE_REPLICA_DSN", ""); replicaDSN != "" {
		if err := database.RegisterReplica(db, replicaDSN); err != nil {
			fmt.Printf("Error registering read replica: %v\n", err)
			os.Exit(1)
		}
	}

	if config.GetBool(cfg, "SEED_DB", false) {
		err := database.Seed(db,
			config.GetString(cfg, "ADMIN_EMAIL", "admin@example.com"),
			config.GetString(cfg, "ADMIN_PASSWORD", "change-me"),
		)
		if err != nil {
			fmt.Printf("Error seeding database: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := newStorage(cfg)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, store)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newStorage selects the blob-storage backend: S3 when STORAGE_DRIVER=s3,
// local disk otherwise.
func newStorage(cfg map[string]string) (storage.Storage, error) {
	if config.GetString(cfg, "STORAGE_DRIVER", "local") == "s3" {
		return storage.NewS3(context.Background(),
			config.GetString(cfg, "S3_BUCKET", ""),
			config.GetString(cfg, "S3_REGION", "us-east-1"),
			config.GetString(cfg, "S3_BASE_URL", ""),
		)
	}

	root := config.GetString(cfg, "UPLOADS_DIR", "public")
	baseURL := config.GetString(cfg, "BASE_URL", "http://localhost:8080") + "/uploads"
	return storage.NewLocal(root, baseURL), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
