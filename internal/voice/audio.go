package voice

import (
	"encoding/base64"
	"strings"
)

// DecodeAudio снимает заголовок data URL (всё до первой запятой) и декодирует base64.
// Каждый байт результата далее трактуется как беззнаковая амплитуда.
func DecodeAudio(audioBase64 string) ([]byte, error) {
	payload := audioBase64
	if _, rest, found := strings.Cut(audioBase64, ","); found {
		payload = rest
	}
	// пробелы и переводы строк внутри base64 пропускаются
	payload = strings.Join(strings.Fields(payload), "")
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return b, nil
}

// EncodeAudio кодирует сырые байты аудио в base64 для передачи в API.
func EncodeAudio(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func amplitudes(raw []byte) []float64 {
	out := make([]float64, len(raw))
	for i, b := range raw {
		out[i] = float64(b)
	}
	return out
}
