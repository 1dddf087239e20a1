package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/jobs"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository/postgres"
	"wheelhub-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'activate-started-rentals', 'complete-finished-rentals', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting WheelHub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	var publisher events.Publisher = events.NoopPublisher{}
	var kafkaPublisher *events.KafkaPublisher
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Buffer)
		kafkaPublisher.Start(pubCtx)
		publisher = kafkaPublisher
	}
	flush := func() {
		stopPublisher()
		if kafkaPublisher != nil {
			kafkaPublisher.WaitClosed()
		}
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.RentalRepository, publisher, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		ok := runJobOnce(jobRunner, *runOnce)
		flush()
		if !ok {
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register cron jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	flush()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and reports whether the name was known
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "activate-started-rentals":
		jobRunner.ActivateStartedRentals()
	case "complete-finished-rentals":
		jobRunner.CompleteFinishedRentals()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - activate-started-rentals\n")
		fmt.Printf("  - complete-finished-rentals\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
