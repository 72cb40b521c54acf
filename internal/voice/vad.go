package voice

import "gonum.org/v1/gonum/floats"

// Сообщения детектора.
const (
	MsgTooShort = "Audio sample too short"
	MsgDetected = "Voice detected"
	MsgQuiet    = "No voice detected or audio too quiet"
)

// Detection — результат эвристики наличия голоса.
type Detection struct {
	VoiceDetected bool     `json:"voice_detected"`
	Energy        *float64 `json:"energy,omitempty"`
	Message       string   `json:"message"`
}

// DetectVoice оценивает наличие голоса по сумме квадратов амплитуд.
// Ошибок не возвращает: любой сбой превращается в VoiceDetected=false с текстом ошибки.
func (e *Engine) DetectVoice(audioBase64 string) Detection {
	raw, err := DecodeAudio(audioBase64)
	if err != nil {
		return Detection{Message: "Error: " + err.Error()}
	}
	return e.DetectVoiceBytes(raw)
}

// DetectVoiceBytes — то же, что DetectVoice, для уже декодированных байт.
func (e *Engine) DetectVoiceBytes(raw []byte) Detection {
	if len(raw) < e.settings.MinVADBytes {
		return Detection{Message: MsgTooShort}
	}
	x := amplitudes(raw)
	energy := floats.Dot(x, x)
	if energy > e.settings.EnergyThreshold {
		return Detection{VoiceDetected: true, Energy: &energy, Message: MsgDetected}
	}
	return Detection{Energy: &energy, Message: MsgQuiet}
}
