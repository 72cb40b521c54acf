package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"VoiceKeeper/internal/cli/repo"
)

// TokenFSStore — файловое хранилище auth-токена для CLI.
type TokenFSStore struct {
	Path string
}

var _ repo.TokenStore = TokenFSStore{}

var errNoPath = errors.New("token file path is not set")

// Save сохраняет auth‑токен в файл с правами 0600.
func (s TokenFSStore) Save(token string) error {
	if s.Path == "" {
		return errNoPath
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load читает auth‑токен из файла.
func (s TokenFSStore) Load() (string, error) {
	if s.Path == "" {
		return "", errNoPath
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Clear удаляет файл токена. Отсутствие файла ошибкой не считается.
func (s TokenFSStore) Clear() error {
	if s.Path == "" {
		return errNoPath
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
