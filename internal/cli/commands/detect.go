package commands

import (
	"VoiceKeeper/internal/cli/api"
	"VoiceKeeper/internal/cli/model"
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/voice"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type detectCmd struct{}

func (detectCmd) Name() string        { return "detect" }
func (detectCmd) Description() string { return "Check whether an audio file contains voice" }
func (detectCmd) Usage() string       { return "detect <file> [--local]" }

func (detectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var file string
	local := false
	for _, a := range args {
		switch {
		case a == "--local" || a == "-local":
			local = true
		case file == "":
			file = a
		default:
			return ErrUsage
		}
	}
	if file == "" {
		return ErrUsage
	}
	audio, err := readAudio(file)
	if err != nil {
		return err
	}

	var det voice.Detection
	if local {
		// шифратор для VAD не нужен
		det = voice.NewEngine(cfg.VoiceSettings(), nil).DetectVoice(audio)
	} else {
		resp, body, err := api.PostJSON(ctx, endpoint(cfg, "/api/voice/detect"), audioRequest{Audio: audio}, "")
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return serverError(resp, body)
		}
		if err := json.Unmarshal(body, &det); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	if det.Energy != nil {
		fmt.Fprintf(Out, "%s (energy %.0f)\n", det.Message, *det.Energy)
	} else {
		fmt.Fprintln(Out, det.Message)
	}
	recordAttempt(ctx, cfg, model.Attempt{
		Kind:    model.KindDetect,
		Success: det.VoiceDetected,
		Message: det.Message,
	})
	return nil
}

func init() { RegisterCmd(detectCmd{}) }
