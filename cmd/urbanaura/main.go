// Package main запускает HTTP-сервер магазина urbanaura.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/urbanaura-shop/internal/config"
	"github.com/mmeshcher/urbanaura-shop/internal/handler"
	"github.com/mmeshcher/urbanaura-shop/internal/middleware"
	"github.com/mmeshcher/urbanaura-shop/internal/payment"
	"github.com/mmeshcher/urbanaura-shop/internal/repository"
	"github.com/mmeshcher/urbanaura-shop/internal/service"
	"github.com/mmeshcher/urbanaura-shop/internal/storage"
	"github.com/mmeshcher/urbanaura-shop/internal/whatsapp"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var store storage.Store
	switch {
	case cfg.DatabaseURI != "":
		store, err = storage.NewPostgresStore(cfg.DatabaseURI)
		if err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
	case cfg.StoreFile != "":
		store, err = storage.NewFileStore(cfg.StoreFile)
		if err != nil {
			sugar.Fatalw("file store initialization error", "error", err.Error())
		}
	default:
		store = storage.NewMemoryStore()
	}

	repo := repository.New(store)

	var gateway payment.Gateway
	if cfg.PaymentSystemAddress != "" {
		gateway = payment.NewClient(cfg.PaymentSystemAddress)
	} else {
		gateway = payment.NewSimulator()
	}

	svc := service.NewService(repo, gateway, cfg.AdminEmail, cfg.AdminPassword)
	defer svc.Close()

	// Восстановление сохранённой сессии с прошлого запуска
	if user, err := svc.CurrentUser(context.Background()); err == nil && user != nil {
		sugar.Infow("restored session", "email", user.Email, "admin", user.IsAdmin)
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	links := whatsapp.NewLinkBuilder(cfg.WhatsAppPhone)
	h := handler.NewHandler(svc, logger, authMiddleware, links)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting urbanaura server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
