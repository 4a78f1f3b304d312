package wechat

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encryptFixture produces a base64 payload the way the mini-program runtime
// does: PKCS#7 pad, AES-128-CBC encrypt.
func encryptFixture(t *testing.T, key, iv, plaintext []byte) string {
	t.Helper()

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+padLen)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return base64.StdEncoding.EncodeToString(ciphertext)
}

func TestDecryptUserDataRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	payload := []byte(`{"stepInfoList":[{"timestamp":1710000000,"step":5000},{"timestamp":1710086400,"step":8200}]}`)

	encrypted := encryptFixture(t, key, iv, payload)

	plaintext, err := DecryptUserData(
		base64.StdEncoding.EncodeToString(key),
		encrypted,
		base64.StdEncoding.EncodeToString(iv),
	)
	require.NoError(t, err)
	assert.Equal(t, payload, plaintext)

	data, err := ParseWeRunData(plaintext)
	require.NoError(t, err)
	require.Len(t, data.StepInfoList, 2)

	latest, ok := data.Latest()
	require.True(t, ok)
	assert.Equal(t, 8200, latest.Step)
	assert.Equal(t, int64(1710086400), latest.Timestamp)
}

func TestDecryptUserDataRejectsBadInput(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	keyB64 := base64.StdEncoding.EncodeToString(key)
	ivB64 := base64.StdEncoding.EncodeToString(iv)
	valid := encryptFixture(t, key, iv, []byte(`{"stepInfoList":[]}`))

	tests := []struct {
		name       string
		sessionKey string
		data       string
		iv         string
		wantErr    error
	}{
		{
			name:       "session key not base64",
			sessionKey: "not-base64!!!",
			data:       valid,
			iv:         ivB64,
			wantErr:    ErrInvalidKey,
		},
		{
			name:       "short session key",
			sessionKey: base64.StdEncoding.EncodeToString([]byte("short")),
			data:       valid,
			iv:         ivB64,
			wantErr:    ErrInvalidKey,
		},
		{
			name:       "short iv",
			sessionKey: keyB64,
			data:       valid,
			iv:         base64.StdEncoding.EncodeToString([]byte("short")),
			wantErr:    ErrInvalidKey,
		},
		{
			name:       "empty ciphertext",
			sessionKey: keyB64,
			data:       "",
			iv:         ivB64,
			wantErr:    ErrInvalidCiphertext,
		},
		{
			name:       "ciphertext not block aligned",
			sessionKey: keyB64,
			data:       base64.StdEncoding.EncodeToString([]byte("tooshort")),
			iv:         ivB64,
			wantErr:    ErrInvalidCiphertext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptUserData(tt.sessionKey, tt.data, tt.iv)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestDecryptUserDataWrongKeyFailsPadding(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	encrypted := encryptFixture(t, key, iv, []byte(`{"stepInfoList":[{"step":100}]}`))

	wrongKey := base64.StdEncoding.EncodeToString([]byte("ffffffffffffffff"))
	plaintext, err := DecryptUserData(wrongKey, encrypted, base64.StdEncoding.EncodeToString(iv))
	if err == nil {
		// A wrong key can, rarely, decrypt to bytes with valid-looking padding.
		// It must never yield the original payload.
		_, parseErr := ParseWeRunData(plaintext)
		assert.Error(t, parseErr)
		return
	}
	assert.True(t, errors.Is(err, ErrInvalidCiphertext))
}

func TestStripPKCS7RejectsCorruptPadding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "zero pad byte", data: []byte{1, 2, 3, 0}},
		{name: "pad longer than block", data: []byte{1, 2, 3, 17}},
		{name: "inconsistent padding", data: []byte{1, 2, 3, 2, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stripPKCS7(tt.data)
			assert.Error(t, err)
		})
	}
}
