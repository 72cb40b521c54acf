package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

// keyLen — длина ключа для AES‑256 (в байтах).
const keyLen = 32

// pbkdf2Rounds — число итераций при выводе ключа из парольной фразы.
const pbkdf2Rounds = 4096

var (
	ErrInvalidKeyLength = errors.New("invalid key length")
	ErrShortToken       = errors.New("cipher token too short")
)

// LoadOrCreateKey загружает ключ из файла path или создаёт новый случайный.
// Каталог создаётся с правами 0700, файл ключа — 0600.
func LoadOrCreateKey(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty key file path")
	}
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != keyLen {
			return nil, ErrInvalidKeyLength
		}
		return b, nil
	}
	// ключ создаётся только при отсутствии файла
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	// создаём новый ключ
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveKey выводит 32-байтный ключ из парольной фразы и соли (PBKDF2-SHA256).
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Rounds, keyLen, sha256.New)
}

// Encrypt шифрует данные plain с помощью AES‑GCM и заданного ключа.
// Возвращает шифртекст и nonce.
func Encrypt(plain []byte, key []byte) ([]byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	out := gcm.Seal(nil, nonce, plain, nil)
	return out, nonce, nil
}

// Decrypt расшифровывает шифртекст с использованием AES‑GCM, ключа и nonce.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, errors.New("invalid nonce size")
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// AESCipher шифрует строки в непрозрачный токен base64(nonce || ciphertext).
// Подходит как voice.Cipher.
type AESCipher struct {
	key []byte
}

// NewAESCipher создаёт шифратор; ключ должен быть длиной 32 байта.
func NewAESCipher(key []byte) (*AESCipher, error) {
	if len(key) != keyLen {
		return nil, ErrInvalidKeyLength
	}
	k := make([]byte, keyLen)
	copy(k, key)
	return &AESCipher{key: k}, nil
}

// Encrypt возвращает токен для строки plain. Каждый вызов использует новый nonce.
func (c *AESCipher) Encrypt(plain string) (string, error) {
	ct, nonce, err := Encrypt([]byte(plain), c.key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}

// Decrypt восстанавливает строку из токена.
func (c *AESCipher) Decrypt(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	gcm, err := newGCM(c.key)
	if err != nil {
		return "", err
	}
	ns := gcm.NonceSize()
	if len(data) < ns {
		return "", ErrShortToken
	}
	plain, err := Decrypt(data[ns:], data[:ns], c.key)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
