package wechat

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when the session key or IV does not decode to
	// the cipher's block size.
	ErrInvalidKey = errors.New("invalid session key or iv")
	// ErrInvalidCiphertext is returned for ciphertext that is empty, not
	// block-aligned, or carries broken padding.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// DecryptUserData decrypts a vendor-encrypted payload with AES-128-CBC and
// strips the PKCS#7 padding. All inputs are base64 encoded, as delivered by
// the mini-program runtime. Failures never panic; they surface as errors so
// a corrupt payload stays a request-level problem.
func DecryptUserData(sessionKey, encryptedData, iv string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: session key is not valid base64", ErrInvalidKey)
	}
	rawIV, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return nil, fmt.Errorf("%w: iv is not valid base64", ErrInvalidKey)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid base64", ErrInvalidCiphertext)
	}

	if len(key) != aes.BlockSize || len(rawIV) != aes.BlockSize {
		return nil, ErrInvalidKey
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, rawIV).CryptBlocks(plaintext, ciphertext)

	return stripPKCS7(plaintext)
}

// stripPKCS7 removes PKCS#7 padding, validating every padding byte.
func stripPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidCiphertext
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
		}
	}
	return data[:len(data)-padLen], nil
}
