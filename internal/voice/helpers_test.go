package voice

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
)

// stubCipher — обратимый «шифр» для тестов движка.
type stubCipher struct {
	encErr error
	decErr error
}

func (c stubCipher) Encrypt(plain string) (string, error) {
	if c.encErr != nil {
		return "", c.encErr
	}
	return "sealed:" + plain, nil
}

func (c stubCipher) Decrypt(token string) (string, error) {
	if c.decErr != nil {
		return "", c.decErr
	}
	plain, ok := strings.CutPrefix(token, "sealed:")
	if !ok {
		return "", errors.New("not a sealed token")
	}
	return plain, nil
}

func newTestEngine() *Engine {
	return NewEngine(DefaultSettings(), stubCipher{})
}

func b64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// ramp возвращает n байт пилообразного сигнала.
func ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i * 7 % 256)
	}
	return out
}

func constant(n int, v byte) []byte {
	return bytes.Repeat([]byte{v}, n)
}
