package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/CocoMart/config"
	"github.com/Govind-619/CocoMart/controllers"
	"github.com/Govind-619/CocoMart/realtime"
	"github.com/Govind-619/CocoMart/routes"
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database:", err)
	}
	utils.LogInfo("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// Real-time fan-out, bridged over redis when configured
	hub := realtime.NewHub(realtime.NewPresence(), realtime.Options{
		TrustClientJoin: cfg.Realtime.TrustClientJoin,
		SendBuffer:      cfg.Realtime.SendBuffer,
		AllowedOrigins:  cfg.AllowedOrigins,
	})
	var notifier services.Notifier = hub
	if cfg.Redis.Addr != "" {
		bridge := realtime.NewRedisBridge(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel, hub)
		defer bridge.Close()
		notifier = bridge
		g.Go(func() error {
			if err := bridge.Run(gctx); err != nil {
				// local delivery keeps working without redis
				utils.LogError("Redis bridge stopped: %v", err)
			}
			return nil
		})
	}
	if cfg.Realtime.TrustClientJoin {
		utils.LogInfo("Real-time joins are trusted without a token")
	}

	var mailer services.Mailer
	if m := services.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From); m != nil {
		mailer = m
	}

	var gateway services.PaymentGateway
	if cfg.Razorpay.KeyID != "" {
		gateway = services.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency)
	} else {
		utils.LogError("RAZORPAY_KEY_ID not set, gateway payments disabled")
	}

	svc := services.New(db, services.Options{
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  cfg.JWT.TTL,
		Gateway:   gateway,
		Notifier:  notifier,
		Mailer:    mailer,
	})

	// Create sample admin
	if cfg.Admin.Email != "" {
		if err := svc.Users.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			utils.LogError("Failed to create sample admin: %v", err)
			log.Fatal("Failed to create sample admin:", err)
		}
	}

	// Set up router
	ctl := controllers.New(svc, hub, db, cfg)
	rl := utils.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	router := routes.SetupRouter(ctl, cfg, rl)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.LogInfo("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.LogError("Error running server: %v", err)
		log.Fatal("Error running server:", err)
	}
	utils.LogInfo("Server stopped")
}
