package commands

import (
	"VoiceKeeper/internal/cli/model"
	"VoiceKeeper/internal/cli/repo/sqlite"
	"VoiceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const defaultHistoryLimit = 20

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show recent local verify/detect results" }
func (historyCmd) Usage() string       { return "history [limit]" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	limit := defaultHistoryLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return ErrUsage
		}
		limit = n
	}
	if cfg.HistoryDB == "" {
		return errors.New("history db path is not configured")
	}
	r, err := sqlite.OpenAndMigrate(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer r.Close()

	list, err := r.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No history yet")
		return nil
	}
	for _, a := range list {
		ts := time.UnixMilli(a.CreatedAt).Local().Format(time.RFC3339)
		ok := "no"
		if a.Success {
			ok = "yes"
		}
		if a.Kind == model.KindVerify {
			fmt.Fprintf(Out, "%s  %-6s  ok=%-3s  similarity=%.4f\n", ts, a.Kind, ok, a.Similarity)
		} else {
			fmt.Fprintf(Out, "%s  %-6s  ok=%-3s  %s\n", ts, a.Kind, ok, a.Message)
		}
	}
	return nil
}

func init() { RegisterCmd(historyCmd{}) }
