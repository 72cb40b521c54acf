package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"VoiceKeeper/internal/config"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

func TestRegistry_HasVoiceCommands(t *testing.T) {
	for _, name := range []string{"register", "login", "logout", "whoami", "enroll", "verify", "detect", "status", "forget", "features", "history"} {
		if _, ok := Get(name); !ok {
			t.Fatalf("command %q is not registered", name)
		}
	}
	usage := FormatGlobalUsage()
	for _, want := range []string{"VoiceKeeper CLI", "verify <file> [tolerance]", "Audio files:", "*.b64, *.txt", "CLIENT_DB_PATH"} {
		if !strings.Contains(usage, want) {
			t.Fatalf("global usage misses %q:\n%s", want, usage)
		}
	}
}

func TestFormatGlobalUsage_Sections(t *testing.T) {
	RegisterCmd(fakeCmd{name: "zz", usage: "zz", desc: "extra"})
	t.Cleanup(func() { delete(registry, "zz") })

	usage := FormatGlobalUsage()
	account := strings.Index(usage, "Account:")
	voice := strings.Index(usage, "Voice:")
	other := strings.Index(usage, "Other:")
	if account < 0 || voice < account || other < voice {
		t.Fatalf("sections out of order:\n%s", usage)
	}
	// команда из раздела не дублируется в Other
	if strings.Count(usage, "verify <file> [tolerance]") != 1 {
		t.Fatalf("verify listed twice:\n%s", usage)
	}
	if !strings.Contains(usage[other:], "zz") {
		t.Fatalf("unsectioned command expected under Other:\n%s", usage)
	}
}

func TestDispatcher_RecoveryHints(t *testing.T) {
	out := captureOut(t)
	RegisterCmd(fakeCmd{name: "nl", usage: "nl", run: func(_ context.Context, _ *config.Config, _ []string) error {
		return ErrNotLoggedIn
	}})
	RegisterCmd(fakeCmd{name: "st", usage: "st", run: func(_ context.Context, _ *config.Config, _ []string) error {
		return ErrStaleVoiceprint
	}})
	t.Cleanup(func() {
		delete(registry, "nl")
		delete(registry, "st")
	})

	if code := Dispatch(context.Background(), &config.Config{TokenFile: "/tmp/vk.token"}, []string{"nl"}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Hint: vkcli login <login> <password> (token is kept in /tmp/vk.token)") {
		t.Fatalf("login hint expected, got: %s", out.String())
	}
	out.Reset()
	if code := Dispatch(context.Background(), &config.Config{}, []string{"st"}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Hint: vkcli enroll <file>") {
		t.Fatalf("enroll hint expected, got: %s", out.String())
	}
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	out := captureOut(t)
	if code := Dispatch(context.Background(), &config.Config{}, nil); code != 2 {
		t.Fatalf("expected 2 without args, got %d", code)
	}
	if code := Dispatch(context.Background(), &config.Config{}, []string{"help"}); code != 0 {
		t.Fatalf("expected 0 for help, got %d", code)
	}
	out.Reset()
	if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "enroll"}); code != 0 {
		t.Fatalf("expected 0 for help enroll, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage: enroll <file>") {
		t.Fatalf("command usage expected, got %q", out.String())
	}
	if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}); code != 2 {
		t.Fatalf("expected 2 for help of unknown command, got %d", code)
	}
	if code := Dispatch(context.Background(), &config.Config{}, []string{"no-such"}); code != 2 {
		t.Fatalf("expected 2 for unknown command, got %d", code)
	}
}

func TestDispatcher_RunPaths(t *testing.T) {
	out := captureOut(t)

	// зарегистрируем временные команды
	RegisterCmd(fakeCmd{name: "x", usage: "x", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }})
	RegisterCmd(fakeCmd{name: "u", usage: "u <arg>", run: func(_ context.Context, _ *config.Config, _ []string) error {
		return fmt.Errorf("wrapped: %w", ErrUsage)
	}})
	RegisterCmd(fakeCmd{name: "e", usage: "e", run: func(_ context.Context, _ *config.Config, _ []string) error { return fmt.Errorf("boom") }})
	t.Cleanup(func() {
		delete(registry, "x")
		delete(registry, "u")
		delete(registry, "e")
	})

	if code := Dispatch(context.Background(), &config.Config{}, []string{"X"}); code != 0 {
		t.Fatalf("expected exit 0 (names are case-insensitive), got %d", code)
	}
	if code := Dispatch(context.Background(), &config.Config{}, []string{"u"}); code != 2 {
		t.Fatalf("expected exit 2 for usage error, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage: u <arg>") {
		t.Fatalf("usage text expected, got: %s", out.String())
	}
	if code := Dispatch(context.Background(), &config.Config{}, []string{"e"}); code != 1 {
		t.Fatalf("expected exit 1 for error, got %d", code)
	}
	if !strings.Contains(out.String(), "e error: boom") {
		t.Fatalf("error line expected, got: %s", out.String())
	}
	if strings.Contains(out.String(), "Hint:") {
		t.Fatalf("no hint expected for a plain error, got: %s", out.String())
	}
}
