package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	grpcapi "wheelhub-backend/internal/api/grpc"
	httpapi "wheelhub-backend/internal/api/http"
	"wheelhub-backend/internal/config"
	"wheelhub-backend/internal/draft"
	"wheelhub-backend/internal/events"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/payment"
	"wheelhub-backend/internal/reconcile"
	"wheelhub-backend/internal/repository/postgres"
	"wheelhub-backend/internal/security"
	"wheelhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting WheelHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_port", cfg.Server.HealthPort)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	healthDeps := []grpcapi.Dependency{{Name: "postgres", Ping: store.Ping}}

	// Initialize draft store
	var drafts draft.Store
	switch cfg.Draft.Backend {
	case "memory":
		logger.Warn("Using in-memory draft store; staged bookings are lost on restart")
		drafts = draft.NewMemoryStore(cfg.Draft.TTL())
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to ping redis", "error", err, "addr", cfg.Redis.Addr)
			log.Fatalf("Failed to ping redis: %v", err)
		}
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
		drafts = draft.NewRedisStore(rdb, cfg.Draft.TTL())
		healthDeps = append(healthDeps, grpcapi.Dependency{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// Initialize event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	var kafkaPublisher *events.KafkaPublisher
	// Outlives ctx so events from requests still draining at shutdown are flushed
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Buffer)
		kafkaPublisher.Start(pubCtx)
		publisher = kafkaPublisher
		logger.Info("Publishing booking events to Kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		logger.Info("No Kafka brokers configured; booking events are only logged")
	}

	// Initialize notification senders
	var emailSender service.EmailSender
	switch {
	case cfg.Notify.SendGridAPIKey != "":
		emailSender = service.NewSendGridSender(cfg.Notify.SendGridAPIKey, cfg.Notify.FromEmail, cfg.Notify.FromName)
	case cfg.Notify.SMTP.Host != "":
		emailSender = service.NewSMTPSender(cfg.Notify.SMTP.Host, cfg.Notify.SMTP.Port, cfg.Notify.SMTP.User, cfg.Notify.SMTP.Password, cfg.Notify.FromEmail)
	default:
		logger.Warn("No email provider configured; vendor emails are disabled")
	}
	var pushSender service.PushSender
	if cfg.Notify.FirebaseCredentials != "" {
		pushSender, err = service.NewFCMSender(ctx, cfg.Notify.FirebaseCredentials)
		if err != nil {
			logger.Error("Failed to initialize Firebase messaging", "error", err)
			log.Fatalf("Failed to initialize Firebase messaging: %v", err)
		}
	}
	notifier := service.NewBookingNotifier(emailSender, pushSender)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	shopSvc := service.NewShopService(store.ShopRepository)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, store.ShopRepository)
	accessorySvc := service.NewAccessoryService(store.Accessories, store.ShopRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.VehicleRepository,
		store.ShopRepository,
		store.UserRepository,
		notifier,
		publisher,
	)

	// Initialize payment gateways and the reconciler
	gateways := payment.NewRegistry(
		payment.NewEsewaAdapter(payment.EsewaConfig{
			ProductCode: cfg.Payment.Esewa.ProductCode,
			SecretKey:   cfg.Payment.Esewa.SecretKey,
			FormURL:     cfg.Payment.Esewa.FormURL,
			SuccessURL:  cfg.Payment.Esewa.SuccessURL,
			FailureURL:  cfg.Payment.Esewa.FailureURL,
		}),
		payment.NewKhaltiAdapter(payment.KhaltiConfig{
			SecretKey:  cfg.Payment.Khalti.SecretKey,
			BaseURL:    cfg.Payment.Khalti.BaseURL,
			ReturnURL:  cfg.Payment.Khalti.ReturnURL,
			WebsiteURL: cfg.Payment.Khalti.WebsiteURL,
			Timeout:    time.Duration(cfg.Payment.Khalti.TimeoutSeconds) * time.Second,
		}, nil),
		payment.NewCashAdapter(),
	)
	reconciler := reconcile.NewReconciler(drafts, gateways, rentalSvc, publisher)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(authSvc),
		Vehicles:    httpapi.NewVehicleHandler(vehicleSvc, shopSvc),
		Bookings:    httpapi.NewBookingHandler(rentalSvc, reconciler),
		Rentals:     httpapi.NewRentalHandler(rentalSvc),
		Accessories: httpapi.NewAccessoryHandler(accessorySvc),
	}, tokenManager)
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Set up gRPC health server
	var health *grpcapi.HealthServer
	if cfg.Server.HealthPort != 0 {
		health = grpcapi.NewHealthServer(healthDeps...)
		lis, err := net.Listen("tcp", cfg.GetHealthAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetHealthAddress())
			log.Fatalf("Failed to listen: %v", err)
		}
		go health.Watch(ctx, 15*time.Second)
		go func() {
			logger.Info("gRPC health server listening", "address", cfg.GetHealthAddress())
			if err := health.Server().Serve(lis); err != nil {
				logger.Error("gRPC health server error", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if health != nil {
		health.Shutdown()
	}
	stopPublisher()
	if kafkaPublisher != nil {
		kafkaPublisher.WaitClosed()
	}
	logger.Info("WheelHub Backend stopped. Goodbye!")
}
