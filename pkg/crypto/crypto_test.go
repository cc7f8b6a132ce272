package crypto

import (
	"strings"
	"testing"
)

func TestEncryptDecrypt(t *testing.T) {
	c, err := NewCipher("field-secret")
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	enc, err := c.Encrypt("-12.0464,-77.0428")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if strings.Contains(enc, "-77.0428") {
		t.Errorf("ciphertext leaks plaintext: %s", enc)
	}
	dec, err := c.Decrypt(enc)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if dec != "-12.0464,-77.0428" {
		t.Errorf("Expected round trip value, got %q", dec)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	c, _ := NewCipher("k")
	a, _ := c.Encrypt("same")
	b, _ := c.Encrypt("same")
	if a == b {
		t.Errorf("Expected different ciphertexts for repeated plaintext")
	}
}

func TestDecryptWithOtherKeyFails(t *testing.T) {
	c1, _ := NewCipher("one")
	c2, _ := NewCipher("two")
	enc, _ := c1.Encrypt("secret")
	if _, err := c2.Decrypt(enc); err == nil {
		t.Errorf("Expected error decrypting with a different key")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	c, _ := NewCipher("k")
	if _, err := c.Decrypt("not base64!"); err == nil {
		t.Errorf("Expected base64 error")
	}
	if _, err := c.Decrypt("AAAA"); err != ErrShortCiphertext {
		t.Errorf("Expected ErrShortCiphertext, got %v", err)
	}
}

func TestDeriveKeyEmpty(t *testing.T) {
	if _, err := DeriveKey(""); err == nil {
		t.Errorf("Expected error for empty key material")
	}
}

func TestSerializerOpenFallsBackToStored(t *testing.T) {
	c, _ := NewCipher("k")
	s := Serializer{Cipher: c}
	if got := s.open("plain legacy text"); got != "plain legacy text" {
		t.Errorf("Expected legacy value unchanged, got %q", got)
	}
	enc, _ := c.Encrypt("hello")
	if got := s.open(enc); got != "hello" {
		t.Errorf("Expected decrypted value, got %q", got)
	}
}
