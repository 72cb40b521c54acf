package main

import (
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/crypto"
	"VoiceKeeper/internal/handlers"
	"VoiceKeeper/internal/middleware"
	"VoiceKeeper/internal/repo"
	"VoiceKeeper/internal/service"
	"VoiceKeeper/internal/voice"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	cipher, err := newCipher(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize template cipher", "error", err)
	}
	engine := voice.NewEngine(cfg.VoiceSettings(), cipher)

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	voiceService := service.NewVoiceService(engine, repo.NewVoiceprintRepository(gormDB), sugar, cfg.AudioMaxMB*1024*1024)

	h := handlers.NewHandler(userService, voiceService, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}

	sugar.Infow("Starting server", "addr", addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"AudioMaxMB", cfg.AudioMaxMB,
		"Voice", engine.Settings(),
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// newCipher: ключ из парольной фразы, если она задана, иначе из файла ключа (создаётся при первом запуске).
func newCipher(cfg *config.Config) (*crypto.AESCipher, error) {
	if cfg.KeyPassphrase != "" {
		if cfg.KeySalt == "" {
			return nil, errors.New("VOICE_KEY_SALT is required with VOICE_KEY_PASSPHRASE")
		}
		return crypto.NewAESCipher(crypto.DeriveKey(cfg.KeyPassphrase, []byte(cfg.KeySalt)))
	}
	key, err := crypto.LoadOrCreateKey(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	return crypto.NewAESCipher(key)
}
