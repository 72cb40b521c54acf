package commands

import (
	"VoiceKeeper/internal/cli/api"
	"VoiceKeeper/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type statusResponse struct {
	Enrolled   bool       `json:"enrolled"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show whether your voice is enrolled" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := loadToken(cfg)
	if err != nil {
		return err
	}
	resp, body, err := api.DoJSON(ctx, http.MethodGet, endpoint(cfg, "/api/voice/status"), nil, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp, body)
	}
	var sr statusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if !sr.Enrolled {
		fmt.Fprintln(Out, "Voice: not enrolled")
		return nil
	}
	if sr.EnrolledAt != nil {
		fmt.Fprintf(Out, "Voice: enrolled at %s\n", sr.EnrolledAt.Local().Format(time.RFC3339))
	} else {
		fmt.Fprintln(Out, "Voice: enrolled")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
