package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight-booking/internal/config"
	appmw "freight-booking/internal/middleware"
	"freight-booking/internal/models"
	"freight-booking/internal/modules/booking"
	"freight-booking/internal/modules/fleet"
	"freight-booking/internal/modules/identity"
	"freight-booking/internal/modules/notification"
	"freight-booking/pkg/logger"
	"freight-booking/pkg/mailer"
	"freight-booking/pkg/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	lg := logger.New("freight-booking")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		lg.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		lg.Error("config_invalid", "error", "JWT_SECRET is required")
		os.Exit(1)
	}

	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	var mail mailer.Mailer = &mailer.LogMailer{Log: lg}
	if cfg.NotifySenderEmail != "" {
		ses, err := mailer.NewSES(ctx, cfg.AWSRegion, cfg.NotifySenderEmail)
		if err != nil {
			lg.Error("ses_init_failed", "error", err)
			os.Exit(1)
		}
		mail = ses
	}

	// Repositories own all state; services are the only mutator path.
	identityRepo := identity.NewRepository()
	fleetRepo := fleet.NewRepository()
	bookingRepo := booking.NewRepository()
	notificationRepo := notification.NewRepository()

	identitySvc := identity.NewService(identityRepo, tokens)
	fleetSvc := fleet.NewService(fleetRepo)
	notificationSvc := notification.NewService(notificationRepo, identityRepo, mail, lg)
	bookingSvc := booking.NewService(bookingRepo, fleetSvc, identityRepo, notificationSvc)

	identityHandler := identity.NewHandler(identitySvc)
	fleetHandler := fleet.NewHandler(fleetSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	notificationHandler := notification.NewHandler(notificationSvc)

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, identitySvc, fleetSvc); err != nil {
			lg.Error("seed_failed", "error", err)
			os.Exit(1)
		}
		lg.Info("demo_data_seeded")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	api := e.Group("/api")
	identityHandler.RegisterPublicRoutes(api.Group("/auth"))

	secured := api.Group("", appmw.Authenticated(tokens.Secret()))
	identityHandler.RegisterRoutes(secured.Group("/users"))
	bookingHandler.RegisterRoutes(secured.Group("/bookings"))
	bookingHandler.RegisterReportRoutes(secured.Group("/reports"))
	fleetHandler.RegisterRoutes(secured.Group("/fleet"))
	notificationHandler.RegisterRoutes(secured.Group("/notifications"))

	go func() {
		lg.Info("server_started", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server_failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown_failed", "error", err)
		os.Exit(1)
	}
}

// seedDemoData loads the demo accounts, fleet and roster so a fresh process
// is immediately usable from the app.
func seedDemoData(ctx context.Context, identitySvc identity.ServiceInterface, fleetSvc fleet.ServiceInterface) error {
	accounts := []models.RegisterRequest{
		{Name: "John Doe", Email: "consumer@demo.test", Password: "demo-password-1", Phone: "+911234567890", Role: models.RoleConsumer},
		{Name: "Agent Smith", Email: "agent@demo.test", Password: "demo-password-1", Phone: "+911234567891", Role: models.RoleAgent},
	}
	for _, a := range accounts {
		if _, err := identitySvc.Register(ctx, a); err != nil {
			return err
		}
	}

	trucks := []models.AddTruckRequest{
		{Number: "TN-01", Type: "Mini Truck", CapacityKg: 750, LicensePlate: "MH 12 AB 1234"},
		{Number: "TN-02", Type: "Pickup Truck", CapacityKg: 1500, LicensePlate: "MH 14 CD 5678"},
		{Number: "TN-03", Type: "Container Truck", CapacityKg: 5000, LicensePlate: "MH 04 EF 9012"},
	}
	for _, t := range trucks {
		if _, err := fleetSvc.AddTruck(ctx, t); err != nil {
			return err
		}
	}

	drivers := []models.AddDriverRequest{
		{Name: "Rajesh Kumar", Phone: "+919876543210", Rating: 4.8},
		{Name: "Amit Sharma", Phone: "+919876543211", Rating: 4.6},
		{Name: "Suresh Patil", Phone: "+919876543212", Rating: 4.9},
	}
	for _, d := range drivers {
		if _, err := fleetSvc.AddDriver(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
