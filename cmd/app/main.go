package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tasktracker/internal/config"
	"tasktracker/internal/handler"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repo"
	"tasktracker/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Хранилища живут в памяти процесса, состояние теряется при рестарте
	taskRepo := repo.NewTaskRepo()
	taskService := service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	var authHandler *handler.AuthHandler
	var gate func(http.Handler) http.Handler
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			logger.Fatal("JWT_SECRET must be set when auth is enabled")
		}
		userRepo := repo.NewUserRepo()
		authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret))
		authHandler = handler.NewAuthHandler(authService, logger)
		gate = handler.Authenticator(authService)
	}

	extra := []func(http.Handler) http.Handler{chimw.Logger}
	if cfg.RateLimitRPS > 0 {
		extra = append(extra, middleware.RateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	}

	r := handler.NewRouter(taskHandler, authHandler, gate, extra...)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
