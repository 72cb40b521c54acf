package commands

import (
	"VoiceKeeper/internal/cli/api"
	"VoiceKeeper/internal/cli/model"
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/voice"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type verifyCmd struct{}

func (verifyCmd) Name() string        { return "verify" }
func (verifyCmd) Description() string { return "Check an audio file against your voiceprint" }
func (verifyCmd) Usage() string       { return "verify <file> [tolerance]" }

func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	req := audioRequest{}
	if len(args) == 2 {
		tol, err := strconv.ParseFloat(args[1], 64)
		if err != nil || tol < 0 || tol > 1 {
			return fmt.Errorf("tolerance must be a number within [0, 1]: %q", args[1])
		}
		req.Tolerance = &tol
	}
	token, err := loadToken(cfg)
	if err != nil {
		return err
	}
	if req.Audio, err = readAudio(args[0]); err != nil {
		return err
	}
	resp, body, err := api.PostJSON(ctx, endpoint(cfg, "/api/voice/verify"), req, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return errors.New("voice is not enrolled, run enroll first")
	case http.StatusConflict:
		return ErrStaleVoiceprint
	case http.StatusBadRequest:
		return fmt.Errorf("bad audio: %s", strings.TrimSpace(string(body)))
	default:
		return serverError(resp, body)
	}

	var res voice.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	verdict := "REJECTED"
	if res.Success {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(Out, "%s: similarity %.4f (threshold %.4f), confidence %.1f%%\n",
		verdict, res.Similarity, res.Threshold, res.Confidence)

	recordAttempt(ctx, cfg, model.Attempt{
		Kind:       model.KindVerify,
		Success:    res.Success,
		Similarity: res.Similarity,
		Message:    verdict,
	})
	return nil
}

func init() { RegisterCmd(verifyCmd{}) }
