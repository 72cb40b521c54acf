package commands

import (
	"VoiceKeeper/internal/config"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// withTempConfig направляет токен и журнал клиента во временный каталог.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(dir, "token"),
		HistoryDB: filepath.Join(dir, "db", "history.sqlite"),
	}
}

// captureOut перенаправляет вывод CLI в буфер на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// loudRaw — образец, который проходит VAD.
func loudRaw(n int) []byte {
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = byte(100 + i%150)
	}
	return raw
}

func saveToken(t *testing.T, cfg *config.Config, tok string) {
	t.Helper()
	if err := tokenStore(cfg).Save(tok); err != nil {
		t.Fatalf("save token: %v", err)
	}
}
