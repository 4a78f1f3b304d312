package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"stride/internal/models"
	"stride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaloriesForSteps(t *testing.T) {
	tests := []struct {
		steps int
		want  float64
	}{
		{steps: 0, want: 0},
		{steps: 1, want: 0.04},
		{steps: 5000, want: 200.00},
		{steps: 8200, want: 328.00},
		{steps: 12345, want: 493.80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CaloriesForSteps(tt.steps), "steps=%d", tt.steps)
	}
}

func TestDistanceForSteps(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{steps: 0, want: 0},
		{steps: 1, want: 1},
		{steps: 5000, want: 3500},
		{steps: 8200, want: 5740},
		{steps: 12345, want: 8642},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DistanceForSteps(tt.steps), "steps=%d", tt.steps)
	}
}

var (
	testKey = []byte("0123456789abcdef")
	testIV  = []byte("fedcba9876543210")
)

// encryptStepPayload builds a vendor-style encrypted payload for tests.
func encryptStepPayload(t *testing.T, plaintext []byte) SyncStepsInput {
	t.Helper()

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+padLen)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	block, err := aes.NewCipher(testKey)
	require.NoError(t, err)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, testIV).CryptBlocks(ciphertext, padded)

	return SyncStepsInput{
		SessionKey:    base64.StdEncoding.EncodeToString(testKey),
		EncryptedData: base64.StdEncoding.EncodeToString(ciphertext),
		IV:            base64.StdEncoding.EncodeToString(testIV),
	}
}

func fixedClock(date string) func() time.Time {
	ts, _ := time.Parse(models.DateLayout, date)
	return func() time.Time { return ts }
}

func TestSyncStepsStoresLatestEntry(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db))
	svc.now = fixedClock("2026-03-10")

	in := encryptStepPayload(t, []byte(`{"stepInfoList":[{"timestamp":1710000000,"step":5000},{"timestamp":1710086400,"step":8200}]}`))
	in.UserID = 7

	result, err := svc.SyncSteps(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 8200, result.Steps)
	assert.Equal(t, 328.00, result.Calories)
	assert.Equal(t, 5740, result.Distance)
	assert.Equal(t, "2026-03-10", result.Date)

	var rows []models.Activity
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(7), rows[0].UserID)
	assert.Equal(t, 8200, rows[0].StepCount)
	assert.Equal(t, "2026-03-10", rows[0].Date)
}

func TestSyncStepsSameDayOverwrites(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db))
	svc.now = fixedClock("2026-03-10")

	first := encryptStepPayload(t, []byte(`{"stepInfoList":[{"step":1000}]}`))
	first.UserID = 7
	_, err := svc.SyncSteps(context.Background(), first)
	require.NoError(t, err)

	second := encryptStepPayload(t, []byte(`{"stepInfoList":[{"step":9000}]}`))
	second.UserID = 7
	_, err = svc.SyncSteps(context.Background(), second)
	require.NoError(t, err)

	var rows []models.Activity
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 9000, rows[0].StepCount)
	assert.Equal(t, CaloriesForSteps(9000), rows[0].CaloriesBurned)
}

func TestSyncStepsEmptyListWritesNothing(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db))
	svc.now = fixedClock("2026-03-10")

	in := encryptStepPayload(t, []byte(`{"stepInfoList":[]}`))
	in.UserID = 7

	result, err := svc.SyncSteps(context.Background(), in)
	require.NoError(t, err)
	assert.Zero(t, result.Steps)
	assert.Zero(t, result.Calories)
	assert.Zero(t, result.Distance)
	assert.Equal(t, "2026-03-10", result.Date)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSyncStepsValidation(t *testing.T) {
	svc := NewActivityService(repository.NewActivityRepository(setupServiceDB(t)))

	_, err := svc.SyncSteps(context.Background(), SyncStepsInput{UserID: 1})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestSyncStepsDecryptFailureIsRequestError(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db))

	in := encryptStepPayload(t, []byte(`{"stepInfoList":[{"step":100}]}`))
	in.SessionKey = base64.StdEncoding.EncodeToString([]byte("ffffffffffffffff"))

	_, err := svc.SyncSteps(context.Background(), in)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, []string{models.CodeDecryption}, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&count).Error)
	assert.Zero(t, count)
}
