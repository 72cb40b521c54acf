package handlers_test

import (
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/crypto"
	"VoiceKeeper/internal/handlers"
	"VoiceKeeper/internal/middleware"
	"VoiceKeeper/internal/model"
	"VoiceKeeper/internal/repo"
	"VoiceKeeper/internal/service"
	"VoiceKeeper/internal/voice"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockVoiceprintRepo struct{ mock.Mock }

func (m *mockVoiceprintRepo) Upsert(ctx context.Context, vp *model.Voiceprint) error {
	return m.Called(ctx, vp).Error(0)
}

func (m *mockVoiceprintRepo) GetByUserID(ctx context.Context, userID int64) (*model.Voiceprint, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).(*model.Voiceprint); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVoiceprintRepo) DeleteByUserID(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

var _ repo.VoiceprintRepository = (*mockVoiceprintRepo)(nil)

// --- Helpers ---
func newTestEngine(t *testing.T) *voice.Engine {
	t.Helper()
	return newTestEngineWith(t, voice.DefaultSettings())
}

func newTestEngineWith(t *testing.T, settings voice.Settings) *voice.Engine {
	t.Helper()
	c, err := crypto.NewAESCipher(crypto.DeriveKey("test", []byte("salt")))
	require.NoError(t, err)
	return voice.NewEngine(settings, c)
}

func newTestRouter(t *testing.T, ur repo.UserRepository, vr repo.VoiceprintRepository) http.Handler {
	t.Helper()
	return newTestRouterWithEngine(t, ur, vr, newTestEngine(t))
}

func newTestRouterWithEngine(t *testing.T, ur repo.UserRepository, vr repo.VoiceprintRepository, engine *voice.Engine) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, AudioMaxMB: 1}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(ur)
	voiceSvc := service.NewVoiceService(engine, vr, logger, cfg.AudioMaxMB*1024*1024)

	h := handlers.NewHandler(userSvc, voiceSvc, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// loudAudio — образец, который проходит VAD.
func loudAudio(n int) string {
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = byte(100 + i%150)
	}
	return voice.EncodeAudio(raw)
}
