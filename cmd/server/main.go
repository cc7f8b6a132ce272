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

	"minascan/config"
	"minascan/database"
	"minascan/pkg/crypto"
	"minascan/pkg/logger"
)

func main() {
	// 1) Config + logging
	cfg := config.Load()
	lg := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// 2) Column encryption must be registered before gorm parses the models
	cipher, err := crypto.NewCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("encryption key: %v", err)
	}
	crypto.Register(cipher)

	// 3) DB + automigrate
	db, err := database.Open(cfg.DatabaseURL, lg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// 4) Services, controllers, routes
	e, cleanup, err := newServer(cfg, db, lg)
	if err != nil {
		log.Fatalf("wire server: %v", err)
	}
	defer cleanup()

	// 5) Start, drain on SIGTERM
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		lg.WithField("addr", cfg.Addr()).Info("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.WithError(err).Fatal("server stopped")
		}
	}()
	<-sigCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		lg.WithError(err).Error("shutdown")
	}
}
