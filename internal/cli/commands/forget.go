package commands

import (
	"VoiceKeeper/internal/cli/api"
	"VoiceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type forgetCmd struct{}

func (forgetCmd) Name() string        { return "forget" }
func (forgetCmd) Description() string { return "Delete your voiceprint from the server" }
func (forgetCmd) Usage() string       { return "forget" }

func (forgetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := loadToken(cfg)
	if err != nil {
		return err
	}
	resp, body, err := api.DoJSON(ctx, http.MethodDelete, endpoint(cfg, "/api/voice"), nil, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		fmt.Fprintln(Out, "Voiceprint deleted")
		return nil
	case http.StatusNotFound:
		return errors.New("voice is not enrolled")
	}
	return serverError(resp, body)
}

func init() { RegisterCmd(forgetCmd{}) }
