package commands

import (
	"VoiceKeeper/internal/cli/api"
	"VoiceKeeper/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type audioRequest struct {
	Audio     string   `json:"audio"`
	Tolerance *float64 `json:"tolerance,omitempty"`
}

type enrollResponse struct {
	ID         string    `json:"id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type enrollCmd struct{}

func (enrollCmd) Name() string        { return "enroll" }
func (enrollCmd) Description() string { return "Enroll (or replace) your voiceprint from an audio file" }
func (enrollCmd) Usage() string       { return "enroll <file>" }

func (enrollCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := loadToken(cfg)
	if err != nil {
		return err
	}
	audio, err := readAudio(args[0])
	if err != nil {
		return err
	}
	resp, body, err := api.PostJSON(ctx, endpoint(cfg, "/api/voice/enroll"), audioRequest{Audio: audio}, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		var er enrollResponse
		if err := json.Unmarshal(body, &er); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "Voice enrolled (id %s, at %s)\n", er.ID, er.EnrolledAt.Local().Format(time.RFC3339))
		return nil
	case http.StatusUnprocessableEntity:
		return errors.New("no voice detected in the sample, record a louder or longer one")
	case http.StatusBadRequest:
		return fmt.Errorf("bad audio: %s", strings.TrimSpace(string(body)))
	case http.StatusRequestEntityTooLarge:
		return errors.New("audio file is too large")
	}
	return serverError(resp, body)
}

func init() { RegisterCmd(enrollCmd{}) }
