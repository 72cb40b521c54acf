package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"VoiceKeeper/internal/voice"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN   string `env:"DATABASE_URI"`
	AuthSecret    string `env:"AUTH_SECRET"`
	AudioMaxMB    int    `env:"AUDIO_MAX_MB"`
	KeyFile       string `env:"VOICE_KEY_FILE"`
	KeyPassphrase string `env:"VOICE_KEY_PASSPHRASE"`
	KeySalt       string `env:"VOICE_KEY_SALT"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Voice engine tuning
	VectorSize       int     `env:"VOICE_VECTOR_SIZE" envDefault:"200"`
	HistogramBins    int     `env:"VOICE_HISTOGRAM_BINS" envDefault:"50"`
	FFTWindow        int     `env:"VOICE_FFT_WINDOW" envDefault:"512"`
	FFTFeatures      int     `env:"VOICE_FFT_FEATURES" envDefault:"50"`
	MinVADBytes      int     `env:"VOICE_MIN_VAD_BYTES" envDefault:"1000"`
	EnergyThreshold  float64 `env:"VOICE_ENERGY_THRESHOLD" envDefault:"1000000"`
	DefaultTolerance float64 `env:"VOICE_TOLERANCE" envDefault:"0.65"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	HistoryDB string `env:"CLIENT_DB_PATH"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют значения из env
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь к SQLite или postgres://...)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.IntVar(&cfg.AudioMaxMB, "audio-max-mb", cfg.AudioMaxMB, "максимальный размер аудио в запросе, МБ")
	flag.StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "файл ключа шифрования голосовых шаблонов")
	flag.StringVar(&cfg.KeyPassphrase, "key-passphrase", cfg.KeyPassphrase, "парольная фраза для вывода ключа (вместо файла ключа)")
	flag.StringVar(&cfg.KeySalt, "key-salt", cfg.KeySalt, "соль для вывода ключа из парольной фразы")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the VoiceKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Voice engine flags
	flag.IntVar(&cfg.VectorSize, "vector-size", cfg.VectorSize, "длина вектора признаков")
	flag.IntVar(&cfg.HistogramBins, "histogram-bins", cfg.HistogramBins, "число корзин гистограммы")
	flag.IntVar(&cfg.FFTWindow, "fft-window", cfg.FFTWindow, "окно FFT, байт")
	flag.IntVar(&cfg.FFTFeatures, "fft-features", cfg.FFTFeatures, "число модулей FFT в векторе")
	flag.IntVar(&cfg.MinVADBytes, "min-vad-bytes", cfg.MinVADBytes, "минимальная длина аудио для VAD, байт")
	flag.Float64Var(&cfg.EnergyThreshold, "energy-threshold", cfg.EnergyThreshold, "порог энергии VAD")
	flag.Float64Var(&cfg.DefaultTolerance, "tolerance", cfg.DefaultTolerance, "допуск верификации по умолчанию")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.StringVar(&cfg.HistoryDB, "history-db", cfg.HistoryDB, "path to local SQLite history of checks (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.AudioMaxMB <= 0 {
		cfg.AudioMaxMB = 10
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "voicekeeper.db"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill file defaults if empty
	home, _ := os.UserHomeDir()
	if cfg.KeyFile == "" {
		cfg.KeyFile = filepath.Join(home, ".voicekeeper", "voice.key")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(home, ".vk_token")
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = filepath.Join(home, ".voicekeeper", "history.sqlite")
	}

	return cfg
}

// VoiceSettings переносит параметры движка в voice.Settings.
func (c *Config) VoiceSettings() voice.Settings {
	return voice.Settings{
		VectorSize:       c.VectorSize,
		HistogramBins:    c.HistogramBins,
		FFTWindow:        c.FFTWindow,
		FFTFeatures:      c.FFTFeatures,
		MinVADBytes:      c.MinVADBytes,
		EnergyThreshold:  c.EnergyThreshold,
		DefaultTolerance: c.DefaultTolerance,
	}
}
