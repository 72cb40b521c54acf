package voice

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Cipher — внешний симметричный шифратор шаблонов.
// Ключами управляет реализация, движок их не видит.
type Cipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(token string) (string, error)
}

// Engine реализует извлечение признаков, регистрацию и проверку голоса.
// Состояния между вызовами нет, методы безопасны для параллельного использования.
type Engine struct {
	settings Settings
	cipher   Cipher
}

// NewEngine создаёт движок с заданными параметрами и шифратором.
func NewEngine(settings Settings, cipher Cipher) *Engine {
	return &Engine{settings: settings.withDefaults(), cipher: cipher}
}

// Settings возвращает действующие параметры движка.
func (e *Engine) Settings() Settings { return e.settings }

// Result — итог проверки голоса.
type Result struct {
	Success    bool    `json:"success"`
	Confidence float64 `json:"confidence"`
	Similarity float64 `json:"similarity"`
	Threshold  float64 `json:"threshold"`
}

// Enroll извлекает признаки, сериализует их в JSON и шифрует.
// Сохранение шаблона — забота вызывающего.
func (e *Engine) Enroll(audioBase64 string) (string, error) {
	features, err := e.Extract(audioBase64)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnrollment, err)
	}
	token, err := e.seal(features)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnrollment, err)
	}
	return token, nil
}

// Verify сравнивает новый образец с зашифрованным шаблоном.
// tolerance == nil означает допуск по умолчанию. Совпадение: similarity >= 1 - tolerance.
func (e *Engine) Verify(audioBase64, template string, tolerance *float64) (Result, error) {
	tol := e.settings.DefaultTolerance
	if tolerance != nil {
		tol = *tolerance
	}

	vec, err := e.Extract(audioBase64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}
	stored, err := e.open(template)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}
	similarity, err := CosineSimilarity(vec, stored)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}

	threshold := 1 - tol
	return Result{
		Success:    similarity >= threshold,
		Confidence: math.Max(0, math.Min(100, similarity*100)),
		Similarity: similarity,
		Threshold:  threshold,
	}, nil
}

// CosineSimilarity возвращает косинус угла между векторами.
// Если длина одного из векторов нулевая, результат 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ExtractionError{Err: fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))}
	}
	normA, normB := floats.Norm(a, 2), floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return floats.Dot(a, b) / (normA * normB), nil
}

func (e *Engine) seal(features []float64) (string, error) {
	if e.cipher == nil {
		return "", &CryptoError{Op: "encrypt template", Err: errNoCipher}
	}
	plain, err := json.Marshal(features)
	if err != nil {
		return "", &CryptoError{Op: "encode template", Err: err}
	}
	token, err := e.cipher.Encrypt(string(plain))
	if err != nil {
		return "", &CryptoError{Op: "encrypt template", Err: err}
	}
	return token, nil
}

func (e *Engine) open(template string) ([]float64, error) {
	if e.cipher == nil {
		return nil, &CryptoError{Op: "decrypt template", Err: errNoCipher}
	}
	plain, err := e.cipher.Decrypt(template)
	if err != nil {
		return nil, &CryptoError{Op: "decrypt template", Err: err}
	}
	var features []float64
	if err := json.Unmarshal([]byte(plain), &features); err != nil {
		return nil, &CryptoError{Op: "decode template", Err: err}
	}
	return features, nil
}

var errNoCipher = errors.New("cipher is not configured")
