package crypto

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateKey_CreateAndReuse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "voice.key")
	// создаст новый ключ
	k1, err := LoadOrCreateKey(path)
	if err != nil {
		t.Fatalf("LoadOrCreateKey create: %v", err)
	}
	if len(k1) != 32 {
		t.Fatalf("key len want 32, got %d", len(k1))
	}
	// повторное получение — тот же ключ
	k2, err := LoadOrCreateKey(path)
	if err != nil {
		t.Fatalf("LoadOrCreateKey reuse: %v", err)
	}
	if string(k1) != string(k2) {
		t.Fatalf("expected same key contents on reuse")
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm()&0o077 != 0 {
		t.Fatalf("key file must not be group/world accessible, got %v", st.Mode().Perm())
	}
}

func TestLoadOrCreateKey_Errors(t *testing.T) {
	if _, err := LoadOrCreateKey(""); err == nil {
		t.Fatalf("empty path must fail")
	}
	// подменим файл ключа на неправильной длины
	p := filepath.Join(t.TempDir(), "bad.key")
	if err := os.WriteFile(p, []byte("short"), 0o600); err != nil {
		t.Fatalf("write bad key: %v", err)
	}
	if _, err := LoadOrCreateKey(p); err != ErrInvalidKeyLength {
		t.Fatalf("invalid key length should error, got %v", err)
	}
}

func TestEncryptDecrypt_RoundTrip_AndErrors(t *testing.T) {
	key, err := LoadOrCreateKey(filepath.Join(t.TempDir(), "alice.key"))
	if err != nil {
		t.Fatal(err)
	}

	cipher, nonce, err := Encrypt([]byte("hello"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	plain, err := Decrypt(cipher, nonce, key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if string(plain) != "hello" {
		t.Fatalf("round-trip failed: %q", string(plain))
	}

	// неправильный ключ
	other, _ := LoadOrCreateKey(filepath.Join(t.TempDir(), "bob.key"))
	if _, err := Decrypt(cipher, nonce, other); err == nil {
		t.Fatalf("decrypt with wrong key should fail")
	}
	// неверный размер nonce
	if _, err := Decrypt(cipher, []byte{1, 2, 3}, key); err == nil {
		t.Fatalf("decrypt with bad nonce size should fail")
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey("correct horse", []byte("salt"))
	b := DeriveKey("correct horse", []byte("salt"))
	c := DeriveKey("correct horse", []byte("pepper"))
	if len(a) != 32 {
		t.Fatalf("derived key len want 32, got %d", len(a))
	}
	if string(a) != string(b) {
		t.Fatalf("same passphrase and salt must give the same key")
	}
	if string(a) == string(c) {
		t.Fatalf("different salt must give a different key")
	}
}
