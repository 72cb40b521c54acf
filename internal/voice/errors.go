package voice

import "errors"

// Обобщённые ошибки операций. Конкретная причина доступна через errors.As
// (DecodeError, ExtractionError, CryptoError).
var (
	ErrEnrollment   = errors.New("voice enrollment failed")
	ErrVerification = errors.New("voice verification failed")
)

// DecodeError — входная строка не является корректным base64 (или data URL).
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode audio: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// ExtractionError — не удалось посчитать признаки или сравнить векторы.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "audio feature extraction failed: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// CryptoError — сбой шифрования/расшифровки шаблона или разбора расшифрованного шаблона.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *CryptoError) Unwrap() error { return e.Err }
