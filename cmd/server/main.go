package main

import (
	"context"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sapliy/contractplus/internal/auth"
	"github.com/sapliy/contractplus/internal/contract"
	"github.com/sapliy/contractplus/internal/notification"
	"github.com/sapliy/contractplus/pkg/database"
	"github.com/sapliy/contractplus/pkg/monitoring"
	"github.com/sapliy/contractplus/pkg/observability"
)

func main() {
	cfg := loadConfig()
	logger := observability.NewLogger("contractplus")
	ctx := context.Background()

	db, err := database.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.ApplySchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	userRepo := auth.NewRepository(db)
	if err := userRepo.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(userRepo, tokens)

	contractRepo := contract.NewRepository(db)
	ledger := notification.NewRepository(db)

	var sender notification.Sender
	if cfg.ResendAPIKey != "" {
		sender = notification.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
	} else {
		logger.Warn("RESEND_API_KEY not set, emails will only be logged")
		sender = notification.LogSender{}
	}
	notifier := notification.NewService(contractRepo, ledger, sender)

	shutdown, err := observability.InitTracer(ctx, observability.Config{
		ServiceName:    "contractplus",
		ServiceVersion: "1.0.0",
		Endpoint:       cfg.OTLPEndpoint,
		Environment:    cfg.Environment,
	})
	if err != nil {
		log.Printf("Failed to init tracer: %v", err)
	} else {
		defer shutdown(ctx)
	}

	monitoring.StartMetricsServer(cfg.MetricsAddr)

	handler := &APIHandler{
		auth:      authService,
		contracts: contractRepo,
		notifier:  notifier,
		resetCode: cfg.ResetCode,
		reset: func(ctx context.Context) error {
			if err := database.Reset(ctx, db); err != nil {
				return err
			}
			return userRepo.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		},
	}

	router := setupRoutes(handler, tokens)
	wrapped := requestLogger(logger)(otelhttp.NewHandler(router, "contractplus-request"))

	logger.Info("ContractPlus server starting", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, wrapped); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
