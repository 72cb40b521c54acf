package commands

import (
	"VoiceKeeper/internal/config"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help, usage and recovery hints and returns a process exit code:
// 0 on success, 1 when the command failed, 2 on bad usage.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // vkcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	}
	fmt.Fprintf(Out, "%s error: %v\n", name, err)
	if hint := recoveryHint(cfg, err); hint != "" {
		fmt.Fprintf(Out, "Hint: %s\n", hint)
	}
	return 1
}

// recoveryHint подсказывает следующую команду для типовых ошибок.
func recoveryHint(cfg *config.Config, err error) string {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		if cfg != nil && cfg.TokenFile != "" {
			return "vkcli login <login> <password> (token is kept in " + cfg.TokenFile + ")"
		}
		return "vkcli login <login> <password>"
	case errors.Is(err, ErrStaleVoiceprint):
		return "vkcli enroll <file> records a new voiceprint"
	}
	return ""
}
