package commands

import (
	"VoiceKeeper/internal/config"
	"VoiceKeeper/internal/voice"
	"context"
	"fmt"
)

type featuresCmd struct{}

func (featuresCmd) Name() string        { return "features" }
func (featuresCmd) Description() string { return "Print the feature vector summary of an audio file (offline)" }
func (featuresCmd) Usage() string       { return "features <file>" }

func (featuresCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	audio, err := readAudio(args[0])
	if err != nil {
		return err
	}
	vec, err := voice.NewEngine(cfg.VoiceSettings(), nil).Extract(audio)
	if err != nil {
		return err
	}
	nonzero := 0
	for _, v := range vec {
		if v != 0 {
			nonzero++
		}
	}
	fmt.Fprintf(Out, "Vector length: %d (non-zero: %d)\n", len(vec), nonzero)
	// первые пять компонент — статистики, если вектор не обрезан сильнее
	if len(vec) >= 5 {
		fmt.Fprintf(Out, "mean=%.3f std=%.3f max=%.0f min=%.0f median=%.1f\n",
			vec[0], vec[1], vec[2], vec[3], vec[4])
	}
	return nil
}

func init() { RegisterCmd(featuresCmd{}) }
