package voice

// Значения по умолчанию. Подобраны без калибровки, поэтому все они
// переопределяются через Settings.
const (
	DefaultVectorSize      = 200
	DefaultHistogramBins   = 50
	DefaultFFTWindow       = 512
	DefaultFFTFeatures     = 50
	DefaultMinVADBytes     = 1000
	DefaultEnergyThreshold = 1_000_000
	DefaultTolerance       = 0.65
	statFeatureCount       = 5
)

// Settings — параметры извлечения признаков и принятия решений.
type Settings struct {
	VectorSize       int     // итоговая длина вектора признаков
	HistogramBins    int     // число корзин гистограммы
	FFTWindow        int     // сколько первых байт идёт в FFT
	FFTFeatures      int     // сколько модулей коэффициентов FFT оставить
	MinVADBytes      int     // минимальная длина аудио для VAD
	EnergyThreshold  float64 // порог энергии VAD
	DefaultTolerance float64 // допуск верификации, если вызывающий его не передал
}

// DefaultSettings возвращает набор параметров по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		VectorSize:       DefaultVectorSize,
		HistogramBins:    DefaultHistogramBins,
		FFTWindow:        DefaultFFTWindow,
		FFTFeatures:      DefaultFFTFeatures,
		MinVADBytes:      DefaultMinVADBytes,
		EnergyThreshold:  DefaultEnergyThreshold,
		DefaultTolerance: DefaultTolerance,
	}
}

// withDefaults подставляет значения по умолчанию вместо неположительных размеров.
// Порог энергии и допуск не трогаем: ноль для них — допустимое значение.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.VectorSize <= 0 {
		s.VectorSize = d.VectorSize
	}
	if s.HistogramBins <= 0 {
		s.HistogramBins = d.HistogramBins
	}
	if s.FFTWindow <= 0 {
		s.FFTWindow = d.FFTWindow
	}
	if s.FFTFeatures < 0 {
		s.FFTFeatures = d.FFTFeatures
	}
	if s.MinVADBytes < 0 {
		s.MinVADBytes = d.MinVADBytes
	}
	if s.EnergyThreshold < 0 {
		s.EnergyThreshold = d.EnergyThreshold
	}
	return s
}
