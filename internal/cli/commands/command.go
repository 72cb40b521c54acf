package commands

import (
	"VoiceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "verify <file> [tolerance]".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// helpSections задаёт порядок разделов справки. Команды вне списка идут в "Other".
var helpSections = []struct {
	title string
	names []string
}{
	{"Account", []string{"register", "login", "logout", "whoami"}},
	{"Voice", []string{"enroll", "verify", "detect", "status", "forget"}},
	{"Local", []string{"features", "history"}},
}

// FormatGlobalUsage builds a help text for all commands grouped by section,
// followed by notes on audio files and environment.
func FormatGlobalUsage() string {
	lines := []string{
		"VoiceKeeper CLI: enroll a voiceprint and verify audio samples against it",
		"",
		"Usage:",
		"  vkcli [--base-url <host:port>] [--token-file <path>] [--history-db <path>] <command> [args]",
	}
	seen := make(map[string]bool, len(registry))
	section := func(title string, cmds []Command) {
		if len(cmds) == 0 {
			return
		}
		lines = append(lines, "", title+":")
		for _, c := range cmds {
			seen[c.Name()] = true
			lines = append(lines, fmt.Sprintf("  %-28s %s", c.Usage(), c.Description()))
		}
	}
	for _, s := range helpSections {
		var cmds []Command
		for _, name := range s.names {
			if c, ok := Get(name); ok {
				cmds = append(cmds, c)
			}
		}
		section(s.title, cmds)
	}
	var rest []Command
	for _, c := range List() {
		if !seen[c.Name()] {
			rest = append(rest, c)
		}
	}
	section("Other", rest)

	lines = append(lines,
		"",
		"Audio files:",
		"  *.b64, *.txt                 base64 or data URL, sent as is",
		"  any other file               raw bytes, each byte is one amplitude sample",
		"  tolerance                    number in [0, 1]; omitted means the server default",
		"",
		"Environment:",
		"  BASE_URL, TOKEN_FILE, CLIENT_DB_PATH override the flags above",
	)
	return strings.Join(lines, "\n") + "\n"
}
