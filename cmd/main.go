package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"sentry-bot/config"
	telegram "sentry-bot/internal/api"
	"sentry-bot/internal/api/web"
	"sentry-bot/internal/container"
	"sentry-bot/internal/domain/port"
	"sentry-bot/internal/infrastructure/imaging"
	"sentry-bot/internal/infrastructure/metrics"
	"sentry-bot/internal/infrastructure/notify"
	"sentry-bot/internal/infrastructure/storage"
	"sentry-bot/internal/infrastructure/vision"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Модель загружается один раз при старте
	var detector port.PersonDetector
	detectorReady := false
	yolo, err := vision.NewYOLODetector(cfg.ModelPath)
	if err != nil {
		log.Printf("Person detector is unavailable: %v", err)
		detector = vision.UnavailableDetector{Err: err}
	} else {
		defer yolo.Close()
		detector = yolo
		detectorReady = yolo.Ready()
	}

	background := vision.NewMOG2Model()
	defer background.Close()

	promMetrics := metrics.New()
	encoder := imaging.NewJPEGEncoder(cfg.JPEGQuality, cfg.PreviewMaxWidth)

	// Telegram подключается к получателям тревог после создания бота
	notifiers, err := notify.Build(cfg.Notifiers, os.Stdout, map[string]port.Notifier{"telegram": nil})
	if err != nil {
		log.Fatalf("Failed to build notifiers: %v", err)
	}

	appContainer := container.New(
		vision.NewCamera(cfg.CameraDevice),
		background,
		detector,
		storage.NewMemorySubscriberRepository(),
		promMetrics,
		notifiers,
	)
	watchConfig := cfg.Controller()

	botDone := make(chan struct{})
	if cfg.TelegramToken == "" {
		log.Println("TELEGRAM_TOKEN is not set, Telegram bot is disabled")
		close(botDone)
	} else {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, encoder, watchConfig, detectorReady)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		if wantsNotifier(cfg.Notifiers, "telegram") {
			appContainer.Notifiers.Add(bot)
		}

		go func() {
			defer close(botDone)
			log.Println("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewServer(appContainer, encoder, watchConfig, promMetrics.Handler()).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	if cfg.AutoStart {
		if err := appContainer.Controller.Start(ctx, watchConfig); err != nil {
			log.Printf("Failed to start watch: %v", err)
		}
	}

	log.Printf("Alert notifiers: %d configured", appContainer.Notifiers.Len())

	<-ctx.Done()
	log.Println("Shutting down...")

	if err := appContainer.Controller.Stop(); err != nil {
		log.Printf("Failed to stop watch: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	<-botDone
}

func wantsNotifier(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return true
		}
	}
	return false
}
