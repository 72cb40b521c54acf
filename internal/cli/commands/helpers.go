package commands

import (
	"VoiceKeeper/internal/cli/model"
	fsrepo "VoiceKeeper/internal/cli/repo/fs"
	"VoiceKeeper/internal/cli/repo/sqlite"
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/voice"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotLoggedIn — нет токена или сервер его не принял.
var ErrNotLoggedIn = errors.New("not logged in: run login or register first")

// ErrStaleVoiceprint — сервер сменил параметры признаков, шаблон нужно записать заново.
var ErrStaleVoiceprint = errors.New("voiceprint was enrolled with other engine settings")

func endpoint(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + path
}

func tokenStore(cfg *config.Config) fsrepo.TokenFSStore {
	return fsrepo.TokenFSStore{Path: cfg.TokenFile}
}

func loadToken(cfg *config.Config) (string, error) {
	tok, err := tokenStore(cfg).Load()
	if err != nil {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}

// serverError — общая ошибка для неожиданного статуса.
func serverError(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrNotLoggedIn
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// readAudio читает файл с аудио. Файлы .b64/.txt уже содержат base64 (или data URL)
// и отправляются как есть, остальные кодируются.
func readAudio(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".b64", ".txt":
		s := strings.TrimSpace(string(b))
		if s == "" {
			return "", fmt.Errorf("empty audio file: %s", path)
		}
		return s, nil
	}
	if len(b) == 0 {
		return "", fmt.Errorf("empty audio file: %s", path)
	}
	return voice.EncodeAudio(b), nil
}

// recordAttempt пишет попытку в локальный журнал. Сбой журнала не ломает команду.
func recordAttempt(ctx context.Context, cfg *config.Config, a model.Attempt) {
	if cfg.HistoryDB == "" {
		return
	}
	r, err := sqlite.OpenAndMigrate(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(Out, "warning: history not saved: %v\n", err)
		return
	}
	defer r.Close()
	if _, err := r.Add(ctx, &a); err != nil {
		fmt.Fprintf(Out, "warning: history not saved: %v\n", err)
	}
}
