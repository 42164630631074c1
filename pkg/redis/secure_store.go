package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// SecureStore keeps JSON values in Redis encrypted with AES-GCM. Wizard
// sessions carry deposit addresses and amounts, so they are never stored in
// the clear.
type SecureStore struct {
	prefix        string
	encryptionKey []byte
}

var (
	setStoreValue = Set
	getStoreValue = Get
	delStoreValue = Del
)

// NewSecureStore creates an encrypted store. The key must be 32 bytes of hex.
func NewSecureStore(prefix, encryptionKeyHex string) (*SecureStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &SecureStore{prefix: prefix, encryptionKey: key}, nil
}

// Put stores a value under the key with an expiration
func (s *SecureStore) Put(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	encryptedData, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	return setStoreValue(ctx, s.prefix+":"+key, encryptedData, expiration)
}

// Fetch retrieves and decrypts a value into out
func (s *SecureStore) Fetch(ctx context.Context, key string, out interface{}) error {
	encryptedDataStr, err := getStoreValue(ctx, s.prefix+":"+key)
	if err != nil {
		return err
	}

	decryptedData, err := s.decrypt(encryptedDataStr)
	if err != nil {
		return err
	}

	return json.Unmarshal(decryptedData, out)
}

// Remove deletes a value
func (s *SecureStore) Remove(ctx context.Context, key string) error {
	return delStoreValue(ctx, s.prefix+":"+key)
}

func (s *SecureStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *SecureStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
