package voice

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var errEmptyAudio = errors.New("empty audio buffer")

// Extract строит вектор признаков из base64-аудио.
// Ошибка декодирования возвращается как *DecodeError, ошибка вычислений как *ExtractionError.
func (e *Engine) Extract(audioBase64 string) ([]float64, error) {
	raw, err := DecodeAudio(audioBase64)
	if err != nil {
		return nil, err
	}
	return e.ExtractBytes(raw)
}

// ExtractBytes строит вектор признаков фиксированной длины из сырых байт:
// статистики, гистограмма, модули FFT (только для буферов длиннее окна FFT),
// затем дополнение нулями или обрезка до VectorSize.
func (e *Engine) ExtractBytes(raw []byte) ([]float64, error) {
	if len(raw) == 0 {
		return nil, &ExtractionError{Err: errEmptyAudio}
	}
	s := e.settings
	x := amplitudes(raw)

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	features := make([]float64, 0, statFeatureCount+s.HistogramBins+s.FFTFeatures)

	mean, std := stat.PopMeanStdDev(x, nil)
	features = append(features, mean, std, floats.Max(x), floats.Min(x), median(sorted))

	hist := histogram(sorted, s.HistogramBins)
	if len(hist) > s.HistogramBins {
		hist = hist[:s.HistogramBins]
	}
	features = append(features, hist...)

	if len(x) > s.FFTWindow {
		features = append(features, spectrum(x[:s.FFTWindow], s.FFTFeatures)...)
	}

	return fitLength(features, s.VectorSize), nil
}

// median ожидает отсортированный непустой срез.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// histogram считает bins корзин равной ширины на отрезке [min, max] данных.
// Последняя корзина замкнута справа. Для вырожденного отрезка берётся [v-0.5, v+0.5].
func histogram(sorted []float64, bins int) []float64 {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	return stat.Histogram(nil, dividers, sorted, nil)
}

// spectrum возвращает модули первых n коэффициентов ДПФ окна.
func spectrum(window []float64, n int) []float64 {
	coeffs := fft.FFTReal(window)
	if n > len(coeffs) {
		n = len(coeffs)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = cmplx.Abs(coeffs[i])
	}
	return out
}

func fitLength(features []float64, size int) []float64 {
	if len(features) >= size {
		return features[:size]
	}
	out := make([]float64, size)
	copy(out, features)
	return out
}
