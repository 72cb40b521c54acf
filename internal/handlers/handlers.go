package handlers

import (
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/middleware"
	"VoiceKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	voiceService *service.VoiceService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	voiceHandler := NewVoiceHandler(voiceService, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)

	// Voice routes
	r.Post("/api/voice/detect", voiceHandler.Detect)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/voice/enroll", voiceHandler.Enroll)
		r.Post("/api/voice/verify", voiceHandler.Verify)
		r.Get("/api/voice/status", voiceHandler.Status)
		r.Delete("/api/voice", voiceHandler.Forget)
	})

	return &Handler{Router: r}
}
