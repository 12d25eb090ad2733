package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sohaibalidev/Zeevno/internal/auth"
	"github.com/sohaibalidev/Zeevno/internal/banner"
	"github.com/sohaibalidev/Zeevno/internal/cart"
	"github.com/sohaibalidev/Zeevno/internal/catalog"
	"github.com/sohaibalidev/Zeevno/internal/config"
	"github.com/sohaibalidev/Zeevno/internal/db"
	httpapi "github.com/sohaibalidev/Zeevno/internal/http"
	"github.com/sohaibalidev/Zeevno/internal/mail"
	"github.com/sohaibalidev/Zeevno/internal/newsletter"
	"github.com/sohaibalidev/Zeevno/internal/site"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	if cfg.JWTSecret == "" {
		logger.Fatalf("JWT_SECRET_KEY must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	database, closeDB, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		logger.Fatalf("connect to mongo: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeDB(closeCtx); err != nil {
			logger.Printf("mongo disconnect error: %v", err)
		}
	}()

	rabbitConn := mail.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	mailer, err := mail.NewRabbitMailer(rabbitConn, cfg.MailerFrom)
	if err != nil {
		logger.Fatalf("create mailer: %v", err)
	}
	defer mailer.Close()

	catalogRepo := catalog.NewMongoRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	cartStore := cart.NewMongoStore(database)
	cartEngine := cart.NewEngine(catalogRepo, catalogRepo, cartStore, logger)
	cartSvc := cart.NewService(cartStore, catalogRepo)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AppName, cfg.SessionTTL)
	authRepo := auth.NewMongoRepository(database)
	authSvc := auth.NewService(authRepo, mailer, tokens, logger, cfg.AppName, cfg.BaseURL())

	newsletterRepo := newsletter.NewMongoRepository(database)
	newsletterSvc := newsletter.NewService(newsletterRepo, mailer, logger, cfg.AppName, cfg.BaseURL())

	bannerRepo := banner.NewMongoRepository(database)
	siteRepo := site.NewMongoRepository(database)

	router := httpapi.NewRouter(httpapi.Handlers{
		Sessions:   httpapi.NewSessions(authSvc),
		Cart:       httpapi.NewCartHandler(cartEngine, cartSvc, logger),
		Catalog:    httpapi.NewCatalogHandler(catalogSvc, logger),
		Auth:       httpapi.NewAuthHandler(authSvc, logger, !cfg.IsDev()),
		Newsletter: httpapi.NewNewsletterHandler(newsletterSvc, logger, cfg.AppName),
		Banners:    httpapi.NewBannerHandler(bannerRepo, logger),
		Site:       httpapi.NewSiteHandler(siteRepo, logger),
		Pages:      httpapi.NewPages(cfg.PublicDir),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s (%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-runCtx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}
