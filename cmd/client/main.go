package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"VoiceKeeper/internal/cli/commands"
	"VoiceKeeper/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

// printVersion печатает версию и параметры, с которыми клиент считает признаки локально
// (features, detect --local). Они должны совпадать с серверными.
func printVersion(w io.Writer, cfg *config.Config) {
	s := cfg.VoiceSettings()
	fmt.Fprintf(w, "VoiceKeeper CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
	fmt.Fprintf(w, "Server: %s\nToken file: %s\nHistory: %s\n", cfg.ServerURL, cfg.TokenFile, cfg.HistoryDB)
	fmt.Fprintf(w, "Features: vector %d, histogram %d bins, FFT %d/%d\nVAD: min %d bytes, energy threshold %.0f\n",
		s.VectorSize, s.HistogramBins, s.FFTWindow, s.FFTFeatures, s.MinVADBytes, s.EnergyThreshold)
}
